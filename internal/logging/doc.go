// Package logging assembles the structured slog loggers used across
// the classification pipeline.
//
// It centralizes level and output plumbing for the console and JSON
// handlers, exposes attribute helpers so components emit data with a
// consistent shape, and provides a no-op logger for tests and wiring
// code that cannot fail.
package logging
