package logging

import (
	"context"
	"log/slog"
)

type contextKey int

const (
	attachmentIDKey contextKey = iota
	runIDKey
)

// WithAttachmentID stores the attachment identifier currently being
// processed on the context.
func WithAttachmentID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, attachmentIDKey, id)
}

// AttachmentIDFromContext extracts the attachment identifier, if present.
func AttachmentIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(attachmentIDKey).(int)
	return id, ok
}

// WithRunID stores the classification run identifier on the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFromContext extracts the run identifier, if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	runID, ok := ctx.Value(runIDKey).(string)
	return runID, ok
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := AttachmentIDFromContext(ctx); ok {
		fields = append(fields, slog.Int(FieldAttachmentID, id))
	}
	if runID, ok := RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, runID))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived
// from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
