package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/juliaafonsoo/scrape-data/internal/config"
	"github.com/juliaafonsoo/scrape-data/internal/logging"
	"github.com/juliaafonsoo/scrape-data/internal/vision"
)

type commandContext struct {
	configFlag  *string
	offlineFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string, offlineFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		offlineFlag: offlineFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) offline(cfg *config.Config) bool {
	if c.offlineFlag != nil && *c.offlineFlag {
		return true
	}
	return cfg.Vision.OfflineMode
}

// newLogger builds the command logger from the loaded configuration.
func (c *commandContext) newLogger(cfg *config.Config) (*slog.Logger, error) {
	logger, err := logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}
	return logger, nil
}

// newExtractor builds the signal extractor: the offline stand-in when
// requested, the HTTP client against the analysis service otherwise.
func (c *commandContext) newExtractor(cfg *config.Config) (vision.Extractor, error) {
	if c.offline(cfg) {
		return vision.NewOfflineExtractor(), nil
	}

	apiKey, err := vision.LoadAPIKey(cfg.Vision.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("load analysis credentials: %w", err)
	}

	timeout := time.Duration(cfg.Vision.TimeoutSeconds) * time.Second
	client := vision.NewClient(apiKey,
		vision.WithBaseURL(cfg.Vision.BaseURL),
		vision.WithLimits(cfg.Vision.MaxLabels, cfg.Vision.MaxFaces),
		vision.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
	return client, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
