// Package logger provides structured logging for netconf-cli.
//
// It wraps log/slog:
//
//   - logger.go: Logger interface, handler configuration, level control
//   - context.go: context propagation of the logger and the run ID
//   - redact.go: sensitive data redaction
//
// Every invocation of the client gets a ULID run ID so that the lines
// written by load and store can be correlated.
package logger
