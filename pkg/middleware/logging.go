// Package middleware provides service middlewares for hypertopo: execution time
// logging, OpenTelemetry tracing and OpenTelemetry metrics.
package middleware

import (
	"context"
	"time"

	"github.com/hyp3rd/hypertopo"
	"github.com/hyp3rd/hypertopo/pkg/settings"
	"github.com/hyp3rd/hypertopo/pkg/topology"
)

// Logger describes a logging interface allowing to implement different external, or custom logger.
// *log.Logger satisfies it, including the one returned by slog.NewLogLogger.
type Logger interface {
	Printf(format string, v ...any)
}

// LoggingMiddleware is a middleware that logs the time it takes to execute the next middleware.
// Must implement the hypertopo.Service interface.
type LoggingMiddleware struct {
	next   hypertopo.Service
	logger Logger
}

// NewLoggingMiddleware returns a new LoggingMiddleware.
func NewLoggingMiddleware(next hypertopo.Service, logger Logger) hypertopo.Service {
	return &LoggingMiddleware{next: next, logger: logger}
}

// NodeSettings logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) NodeSettings(ctx context.Context, ordinal int) (settings.Settings, error) {
	defer func(begin time.Time) {
		mw.logger.Printf("method NodeSettings took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("NodeSettings method called with ordinal: %d", ordinal)

	s, err := mw.next.NodeSettings(ctx, ordinal)
	if err != nil {
		mw.logger.Printf("NodeSettings failed for ordinal %d: %v", ordinal, err)
	}

	return s, err
}

// ClientSettings logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) ClientSettings(ctx context.Context) (settings.Settings, error) {
	defer func(begin time.Time) {
		mw.logger.Printf("method ClientSettings took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("ClientSettings method invoked")

	return mw.next.ClientSettings(ctx)
}

// Identity logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) Identity(ctx context.Context, ordinal int) (topology.Identity, error) {
	defer func(begin time.Time) {
		mw.logger.Printf("method Identity took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("Identity method invoked with ordinal: %d", ordinal)

	return mw.next.Identity(ctx, ordinal)
}

// Nodes logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) Nodes(ctx context.Context) ([]topology.Identity, error) {
	defer func(begin time.Time) {
		mw.logger.Printf("method Nodes took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("Nodes method invoked")

	return mw.next.Nodes(ctx)
}

// SeedAddresses logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) SeedAddresses(ctx context.Context) ([]string, error) {
	defer func(begin time.Time) {
		mw.logger.Printf("method SeedAddresses took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("SeedAddresses method invoked")

	return mw.next.SeedAddresses(ctx)
}

// Topology returns the underlying topology.
func (mw LoggingMiddleware) Topology() *topology.Topology {
	return mw.next.Topology()
}
