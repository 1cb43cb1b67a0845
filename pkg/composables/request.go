package composables

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/flowgate/flowgate/pkg/constants"
)

var (
	ErrNoLogger = errors.New("logger not found")
)

// UseLogger returns the request-scoped logger from the context.
// Panics when the middleware did not install one.
func UseLogger(ctx context.Context) *logrus.Entry {
	logger := ctx.Value(constants.LoggerKey)
	if logger == nil {
		panic(ErrNoLogger)
	}
	return logger.(*logrus.Entry)
}

// WithLogger returns a new context with the given logger attached.
func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, logger)
}

// UseRequestID returns the request id installed by the logging middleware.
func UseRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(constants.RequestIDKey).(string)
	return id, ok
}

// WithRequestID returns a new context carrying the request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, constants.RequestIDKey, id)
}
