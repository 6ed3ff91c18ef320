package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/juliaafonsoo/scrape-data/internal/collection"
	"github.com/juliaafonsoo/scrape-data/internal/testsupport"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	anexoDir   string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	anexoDir := filepath.Join(base, "anexos-email")
	logDir := filepath.Join(base, "logs")
	for _, dir := range []string{anexoDir, logDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	configPath := filepath.Join(base, "scrapedata.toml")
	writeTestConfig(t, configPath, anexoDir, logDir)

	return &cliTestEnv{baseDir: base, configPath: configPath, anexoDir: anexoDir}
}

func writeTestConfig(t *testing.T, path, basePath, logDir string) {
	t.Helper()

	content := fmt.Sprintf(`[paths]
base_path = %q
log_dir = %q

[vision]
offline_mode = true

[workflow]
pacing_delay_ms = 0
workers = 1

[logging]
format = "console"
level = "error"
`, basePath, logDir)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
}

func (env *cliTestEnv) writeCollection(t *testing.T, col *collection.Collection) string {
	t.Helper()

	path := testsupport.WriteCollection(t, env.baseDir, col)
	for i := range col.Emails {
		for j := range col.Emails[i].Attachments {
			att := &col.Emails[i].Attachments[j]
			if att.AnexoPath != "" {
				testsupport.WriteFile(t, filepath.Join(env.anexoDir, att.AnexoPath), 64)
			}
		}
	}
	return path
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("output %q does not contain %q", haystack, needle)
	}
}
