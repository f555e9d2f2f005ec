// Package logging assembles structured slog loggers and formatting helpers used
// across tssk.
//
// It owns the console/JSON handlers, an optional rotating JSON log file, and
// context helpers that tag log lines with the run correlation ID and the
// category being classified. A no-op logger is provided for tests and wiring
// code that cannot fail.
package logging
