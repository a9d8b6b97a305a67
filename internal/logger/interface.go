package logger

import "context"

// Logger is the printf-style logger used across the pipeline.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})
	// With returns a child logger that attaches the key/value pairs to
	// every record.
	With(keysAndValues ...interface{}) Logger
	Sync() error
}
