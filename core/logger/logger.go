package logger

// Logger exposes logging methods for common severity levels. Core packages
// depend on this interface only, never on a logging library.
type Logger interface {
	Debugf(format string, args ...any)
	// Debugw logs a debug message with structured fields.
	Debugw(msg string, fields map[string]any)
	Infof(format string, args ...any)
	// Infow logs an info message with structured fields.
	Infow(msg string, fields map[string]any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// StructuredLogger can log structured information. It is implemented by
// ZerologLogger and other adapters.
type StructuredLogger interface {
	Debugw(msg string, fields map[string]any)
	Infow(msg string, fields map[string]any)
}
