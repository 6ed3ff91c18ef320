// Package main hosts the scrapedata CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into
// classification runs over a collection file, manual-review passes,
// summary reports, attachment folder organization, and configuration
// scaffolding. It centralizes configuration resolution, extractor
// construction, and structured logging setup so subcommands can focus
// on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the
// internal packages first, then surface it through dedicated commands
// or flags here.
package main
