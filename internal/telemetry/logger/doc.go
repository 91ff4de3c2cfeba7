// Package logger provides structured logging for Texter.
//
// This package wraps the standard library log/slog:
//
//   - logger.go: logger configuration and initialization
//   - context.go: context-aware logging with document ID propagation
//   - redact.go: buffer content truncation
//
// Features:
//
//   - JSON and text output formats
//   - Log level filtering with dynamic adjustment
//   - Automatic truncation of document buffer attributes, so a log
//     line never carries a user's full text
//   - Context propagation for per-document log enrichment
package logger
