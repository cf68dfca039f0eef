package ports

import "context"

// Logger is the logging interface used across the analyzer. Implementations
// receive optional structured fields alongside the message, which keeps the
// core decoupled from any concrete logging backend.
type Logger interface {
	// Debug logs fine-grained diagnostic detail.
	Debug(ctx context.Context, msg string, fields ...map[string]interface{})
	// Info logs normal operational events.
	Info(ctx context.Context, msg string, fields ...map[string]interface{})
	// Warn logs recoverable anomalies.
	Warn(ctx context.Context, msg string, fields ...map[string]interface{})
	// Error logs failures together with their cause.
	Error(ctx context.Context, err error, msg string, fields ...map[string]interface{})
}
