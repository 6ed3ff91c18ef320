package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/juliaafonsoo/scrape-data/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected missing config file")
	}
	if cfg.Vision.MaxLabels != 10 || cfg.Vision.MaxFaces != 5 {
		t.Fatalf("unexpected vision defaults: %+v", cfg.Vision)
	}
	if cfg.Workflow.PacingDelayMS != 100 || cfg.Workflow.Workers != 1 {
		t.Fatalf("unexpected workflow defaults: %+v", cfg.Workflow)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[paths]",
		`base_path = "` + dir + `"`,
		"[vision]",
		`base_url = "https://example.test/v1/"`,
		"offline_mode = true",
		"[classifier]",
		`extra_utility_companies = ["  Companhia Nova  ", ""]`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved = %q exists = %v", resolved, exists)
	}
	if cfg.Vision.BaseURL != "https://example.test/v1" {
		t.Fatalf("base_url not normalized: %q", cfg.Vision.BaseURL)
	}
	if len(cfg.Classifier.ExtraUtilityCompanies) != 1 || cfg.Classifier.ExtraUtilityCompanies[0] != "Companhia Nova" {
		t.Fatalf("extra companies: %v", cfg.Classifier.ExtraUtilityCompanies)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"missing base url", func(c *config.Config) { c.Vision.BaseURL = "" }},
		{"zero timeout", func(c *config.Config) { c.Vision.TimeoutSeconds = 0 }},
		{"zero workers", func(c *config.Config) { c.Workflow.Workers = 0 }},
		{"negative pacing", func(c *config.Config) { c.Workflow.PacingDelayMS = -1 }},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "xml" }},
		{"no credentials online", func(c *config.Config) {
			c.Vision.CredentialsPath = ""
			c.Vision.OfflineMode = false
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestResolveAttachmentPath(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.BasePath = "/data/anexos"

	if got := cfg.ResolveAttachmentPath("user/rg.png"); got != filepath.Join("/data/anexos", "user/rg.png") {
		t.Fatalf("relative join = %q", got)
	}
	if got := cfg.ResolveAttachmentPath("/abs/rg.png"); got != "/abs/rg.png" {
		t.Fatalf("absolute path = %q", got)
	}
	if got := cfg.ResolveAttachmentPath("  "); got != "" {
		t.Fatalf("blank path = %q", got)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[vision]") {
		t.Fatal("sample missing vision section")
	}
}
