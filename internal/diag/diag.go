// Package diag provides the process diagnostics sink: a slog.Logger carried
// through context.Context, plus helpers for reporting programming-error
// conditions with their call site. Programming errors are logged and never
// escalated; callers are expected to degrade gracefully.
package diag

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
)

// key is an unexported type to prevent collisions with context keys from other packages.
type key struct{}

// loggerKey is the key for the slog.Logger in a context.Context.
var loggerKey = key{}

// WithLogger returns a new context with the provided logger embedded.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the slog.Logger from a context. If no logger is
// found, it returns the default global logger so callers always get a
// usable sink.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// ProgrammingError reports a misuse of the framework API (duplicate bootstrap,
// unknown spec field, bad argument). The record carries the caller's
// file:line so the offending call site can be located without a stack trace.
func ProgrammingError(ctx context.Context, msg string, args ...any) {
	args = append(args, "caller", callSite(2))
	FromContext(ctx).Error("programming error: "+msg, args...)
}

// callSite returns "file:line" for the given number of frames above callSite
// itself, or "unknown" when the runtime cannot resolve it.
func callSite(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}
