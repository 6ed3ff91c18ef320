// Package config loads, validates, and defaults the TOML configuration
// for the document classification pipeline.
//
// Configuration is resolved from an explicit --config flag, then
// ~/.config/scrapedata/config.toml, then ./scrapedata.toml. Missing
// files fall back to defaults so offline-mode runs work without any
// setup.
package config
