// Package logging assembles structured slog loggers used across navicull.
//
// It owns the console and JSON handlers, level parsing, and output routing
// (stderr plus an optional log file), and exposes a no-op logger for tests and
// wiring code that cannot fail. Operator-facing progress output is printed by
// the CLI reporter; this package carries the structured trail behind it.
package logging
