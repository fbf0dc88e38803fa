package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type contextKey int

const (
	loggerKey contextKey = iota
	requestIDKey
)

// WithLogger stores logger in ctx. A nil logger stores the default.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in ctx, or the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}

func with(ctx context.Context, fields func(zerolog.Context) zerolog.Context) context.Context {
	logger := fields(FromContext(ctx).With()).Logger()
	return WithLogger(ctx, &logger)
}

// WithRequestID tags ctx and its logger with the ID of an HTTP request.
func WithRequestID(ctx context.Context, id string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, id)
	return with(ctx, func(c zerolog.Context) zerolog.Context { return c.Str("request_id", id) })
}

// RequestID returns the ID stored by WithRequestID.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithConnector names the connector instance doing the work.
func WithConnector(ctx context.Context, name string) context.Context {
	return with(ctx, func(c zerolog.Context) zerolog.Context { return c.Str("connector", name) })
}

// WithOperation names the connector operation: refresh, event or push.
func WithOperation(ctx context.Context, op string) context.Context {
	return with(ctx, func(c zerolog.Context) zerolog.Context { return c.Str("operation", op) })
}

// WithGlossary records the Egeria glossary being reconciled.
func WithGlossary(ctx context.Context, guid string) context.Context {
	return with(ctx, func(c zerolog.Context) zerolog.Context { return c.Str("glossary_guid", guid) })
}

// WithElement records the kind and Egeria GUID of a glossary element.
func WithElement(ctx context.Context, kind, guid string) context.Context {
	return with(ctx, func(c zerolog.Context) zerolog.Context {
		return c.Str("element_kind", kind).Str("element_guid", guid)
	})
}

// WithAtlasGUID records the Atlas counterpart of the element in ctx.
func WithAtlasGUID(ctx context.Context, guid string) context.Context {
	return with(ctx, func(c zerolog.Context) zerolog.Context { return c.Str("atlas_guid", guid) })
}

// WithEvent records the type of the Egeria event being handled.
func WithEvent(ctx context.Context, eventType string) context.Context {
	return with(ctx, func(c zerolog.Context) zerolog.Context { return c.Str("event_type", eventType) })
}
