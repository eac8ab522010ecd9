// Package logging assembles the structured slog loggers used across curator.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing (stdout plus an append-only file under the configured log
// directory), and exposes attr helpers and a no-op logger for tests. The
// console handler promotes the component attribute into the message prefix so
// every subsystem reads uniformly.
//
// Prefer these constructors over hand-rolled slog setup so new components
// emit data with the same shape as the rest of the system.
package logging
