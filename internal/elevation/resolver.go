package elevation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"medi-elevation/internal/metrics"
	"medi-elevation/internal/types"
)

// Provider builds and sends the request for one coordinate and returns the
// raw response body. Each provider owns its query contract.
type Provider interface {
	Name() string
	FetchElevation(ctx context.Context, coords types.Coords) ([]byte, error)
}

// Resolver looks up the elevation of a single coordinate, in meters.
// A non-nil error is always a *LookupError.
type Resolver interface {
	Resolve(ctx context.Context, coords types.Coords) (float64, error)
}

type resolver struct {
	provider Provider
	parsers  []ResponseParser
	metrics  *metrics.Metrics
	tracer   trace.Tracer
	logger   *slog.Logger
}

type Option func(*resolver)

// WithParsers replaces the default response parsers. Order is priority.
func WithParsers(parsers ...ResponseParser) Option {
	return func(r *resolver) {
		r.parsers = parsers
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *resolver) {
		r.metrics = m
	}
}

// NewResolver creates a resolver over provider. Without options it uses
// DefaultParsers and unregistered metrics.
func NewResolver(provider Provider, logger *slog.Logger, opts ...Option) Resolver {
	r := &resolver{
		provider: provider,
		parsers:  DefaultParsers(),
		tracer:   otel.Tracer("medi-elevation/internal/elevation"),
		logger:   logger.With("component", "elevation-resolver", "provider", provider.Name()),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.metrics == nil {
		r.metrics = metrics.NewUnregistered()
	}
	return r
}

func (r *resolver) Resolve(ctx context.Context, coords types.Coords) (float64, error) {
	providerName := r.provider.Name()

	ctx, span := r.tracer.Start(ctx, "elevation.resolve", trace.WithAttributes(
		attribute.String("provider", providerName),
		attribute.Float64("latitude", coords.Latitude),
		attribute.Float64("longitude", coords.Longitude),
	))
	defer span.End()

	start := time.Now()
	value, lookupErr := r.resolve(ctx, coords)
	r.metrics.LookupDuration.WithLabelValues(providerName).Observe(time.Since(start).Seconds())

	if lookupErr != nil {
		r.metrics.LookupsTotal.WithLabelValues(providerName, lookupErr.Kind.String()).Inc()
		span.RecordError(lookupErr)
		span.SetStatus(codes.Error, lookupErr.Kind.String())

		attrs := []any{
			"latitude", coords.Latitude,
			"longitude", coords.Longitude,
			"kind", lookupErr.Kind.String(),
			"error", lookupErr,
		}
		if lookupErr.Payload != "" {
			attrs = append(attrs, "payload", lookupErr.Payload)
		}
		r.logger.Warn("elevation lookup failed", attrs...)
		return 0, lookupErr
	}

	r.metrics.LookupsTotal.WithLabelValues(providerName, "success").Inc()
	span.SetAttributes(attribute.Float64("elevation_meters", value))
	r.logger.Debug("elevation lookup successful",
		"latitude", coords.Latitude,
		"longitude", coords.Longitude,
		"elevation_meters", value,
	)
	return value, nil
}

func (r *resolver) resolve(ctx context.Context, coords types.Coords) (float64, *LookupError) {
	body, err := r.provider.FetchElevation(ctx, coords)
	if err != nil {
		return 0, &LookupError{Kind: KindTransport, Detail: err.Error(), Err: err}
	}

	value, parserName, err := Normalize(body, r.parsers)
	switch {
	case err == nil:
		r.logger.Debug("normalized elevation response", "parser", parserName)
		return value, nil
	case errors.Is(err, ErrNoData):
		return 0, &LookupError{
			Kind:   KindNoData,
			Detail: "elevation service has no value for " + coords.String(),
			Err:    err,
		}
	default:
		return 0, &LookupError{
			Kind:    KindSchemaMismatch,
			Detail:  err.Error(),
			Payload: string(body),
			Err:     err,
		}
	}
}
