package testsupport

import (
	"path/filepath"
	"testing"

	"github.com/juliaafonsoo/scrape-data/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per
// test. Offline mode is enabled and pacing disabled so tests never
// touch the network or sleep.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.BasePath = filepath.Join(base, "attachments")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Vision.OfflineMode = true
	cfg.Workflow.PacingDelayMS = 0

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithWorkers sets the worker pool size on the test config.
func WithWorkers(n int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Workflow.Workers = n
	}
}

// WithBasePath overrides the attachment base path on the test config.
func WithBasePath(path string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Paths.BasePath = path
	}
}

// WithExtraUtilities extends the utility company list on the test config.
func WithExtraUtilities(names ...string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Classifier.ExtraUtilityCompanies = append(cfg.Classifier.ExtraUtilityCompanies, names...)
	}
}
