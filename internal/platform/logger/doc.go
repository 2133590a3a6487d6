// Package logger configures the application's structured JSON logging on
// top of log/slog and provides helpers for carrying a request-scoped
// logger through a context.Context.
package logger
