package main

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"medi-elevation/internal/config"
	"medi-elevation/internal/edit"
	"medi-elevation/internal/elevation"
	"medi-elevation/internal/events"
	"medi-elevation/internal/metrics"
)

// App encapsulates application dependencies
type App struct {
	router      *gin.Engine
	logger      *slog.Logger
	provider    string
	resolver    elevation.Resolver
	coordinator *edit.Coordinator
	publisher   events.Publisher
	registry    *prometheus.Registry
	cfg         *config.Config
}

// NewApp creates a new application with injected dependencies
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Initialize elevation provider
	provider, err := elevation.NewProvider(cfg.Elevation, logger)
	if err != nil {
		return nil, err
	}

	return NewAppWithProvider(cfg, logger, provider, events.New(cfg.Events.NATSURL, logger)), nil
}

// NewAppWithProvider creates an application around the given provider and
// publisher (useful for testing with mocks)
func NewAppWithProvider(cfg *config.Config, logger *slog.Logger, provider elevation.Provider, publisher events.Publisher) *App {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	m := metrics.New(registry)

	resolver := elevation.NewResolver(provider, logger, elevation.WithMetrics(m))

	app := &App{
		router:   router,
		logger:   logger,
		provider: provider.Name(),
		resolver: resolver,
		coordinator: edit.NewCoordinator(resolver, logger,
			edit.WithMaxConcurrency(cfg.Elevation.MaxConcurrency),
			edit.WithMetrics(m),
		),
		publisher: publisher,
		registry:  registry,
		cfg:       cfg,
	}

	// Register routes
	app.registerRoutes()

	return app
}

// Run starts the HTTP server
func (app *App) Run(addr string) error {
	return app.router.Run(addr)
}

// Close releases the event publisher
func (app *App) Close() {
	app.publisher.Close()
}
