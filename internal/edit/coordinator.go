package edit

import (
	"context"
	"log/slog"

	"github.com/sourcegraph/conc/iter"

	"medi-elevation/internal/elevation"
	"medi-elevation/internal/metrics"
	"medi-elevation/internal/types"
)

const DefaultMaxConcurrency = 8

// Coordinator fans lookups out over a point set and folds the successes into
// one EditBatch. It keeps no state between calls.
type Coordinator struct {
	resolver       elevation.Resolver
	maxConcurrency int
	onResult       func(Result)
	metrics        *metrics.Metrics
	logger         *slog.Logger
}

type Option func(*Coordinator)

// WithMaxConcurrency bounds the number of lookups in flight. 1 runs them
// sequentially.
func WithMaxConcurrency(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.maxConcurrency = n
		}
	}
}

// WithResultHook registers fn to be called once per point as its lookup
// finishes. fn may be called from several goroutines at once.
func WithResultHook(fn func(Result)) Option {
	return func(c *Coordinator) {
		c.onResult = fn
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Coordinator) {
		c.metrics = m
	}
}

func NewCoordinator(resolver elevation.Resolver, logger *slog.Logger, opts ...Option) *Coordinator {
	c := &Coordinator{
		resolver:       resolver,
		maxConcurrency: DefaultMaxConcurrency,
		logger:         logger.With("component", "edit-coordinator"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = metrics.NewUnregistered()
	}
	return c
}

// BuildEditBatch resolves every point and returns a batch with one "ele" edit
// per success, in input order, plus one diagnostic per failure.
//
// The batch is nil when points is empty or no lookup succeeded. The error is
// non-nil only when ctx was cancelled, in which case nothing is returned.
func (c *Coordinator) BuildEditBatch(ctx context.Context, points []types.Point) (*EditBatch, []Diagnostic, error) {
	if len(points) == 0 {
		return nil, nil, nil
	}

	c.logger.Info("resolving elevations", "points", len(points), "max_concurrency", c.maxConcurrency)

	mapper := iter.Mapper[types.Point, Result]{MaxGoroutines: c.maxConcurrency}
	results := mapper.Map(points, func(p *types.Point) Result {
		r := c.resolve(ctx, *p)
		if c.onResult != nil {
			c.onResult(r)
		}
		return r
	})

	if err := ctx.Err(); err != nil {
		c.logger.Warn("elevation lookup cancelled, discarding results", "error", err)
		return nil, nil, err
	}

	var (
		edits       []PropertyEdit
		diagnostics []Diagnostic
	)
	for _, r := range results {
		if !r.OK() {
			d := newDiagnostic(r)
			c.logger.Warn("point excluded from batch",
				"point_id", d.PointID,
				"latitude", d.Coordinates.Latitude,
				"longitude", d.Coordinates.Longitude,
				"kind", d.Kind.String(),
				"detail", d.Detail,
			)
			diagnostics = append(diagnostics, d)
			continue
		}
		edits = append(edits, PropertyEdit{
			PointID: r.Point.ID,
			Key:     ElevationKey,
			Value:   types.FormatMeters(r.Elevation),
		})
	}

	if len(edits) == 0 {
		c.metrics.BatchesTotal.WithLabelValues("empty").Inc()
		c.logger.Info("no elevations resolved", "failed", len(diagnostics))
		return nil, diagnostics, nil
	}

	c.metrics.BatchesTotal.WithLabelValues("built").Inc()
	c.metrics.BatchEdits.Observe(float64(len(edits)))
	c.logger.Info("built elevation batch", "edits", len(edits), "failed", len(diagnostics))

	return &EditBatch{
		Description: BatchDescription,
		Edits:       edits,
	}, diagnostics, nil
}

func (c *Coordinator) resolve(ctx context.Context, p types.Point) Result {
	value, err := c.resolver.Resolve(ctx, p.Coordinates)
	if err != nil {
		return Result{Point: p, Err: elevation.AsLookupError(err)}
	}
	return Result{Point: p, Elevation: value}
}
