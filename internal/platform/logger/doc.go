// Package logger provides structured logging functionality for the application.
//
// It builds JSON loggers on top of log/slog with a configurable level and
// carries request-scoped loggers through context.Context so handlers, services
// and stores can log with the trace id of the request they serve.
package logger
