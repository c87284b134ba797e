/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package httpclient

import (
	"context"

	"github.com/acronis/go-countries/log"
)

type ctxKey int

const (
	ctxKeyLogger ctxKey = iota
	ctxKeyRequestID
)

// NewContextWithLogger creates a new context with a logger
// that will be used by the logging round tripper for requests made with this context.
func NewContextWithLogger(ctx context.Context, logger log.FieldLogger) context.Context {
	return context.WithValue(ctx, ctxKeyLogger, logger)
}

// GetLoggerFromContext extracts a logger from the context.
// Returns nil when the context carries none.
func GetLoggerFromContext(ctx context.Context) log.FieldLogger {
	value := ctx.Value(ctxKeyLogger)
	if value == nil {
		return nil
	}
	if logger, ok := value.(log.FieldLogger); ok {
		return logger
	}
	return nil
}

// NewContextWithRequestID creates a new context with an externally issued request ID.
// The request ID round tripper propagates it in the X-Request-ID header instead of generating a new one.
func NewContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, requestID)
}

// GetRequestIDFromContext extracts a request ID from the context.
func GetRequestIDFromContext(ctx context.Context) string {
	value := ctx.Value(ctxKeyRequestID)
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}
