package app

import (
	"context"

	"github.com/upb/external-knowledge-api/config"
	"github.com/upb/external-knowledge-api/internal/observability"
	"github.com/upb/external-knowledge-api/middleware"
	"github.com/upb/external-knowledge-api/services/bedrock"
	"github.com/upb/external-knowledge-api/services/knowledge"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *observability.Metrics

	// Retrieval
	Backend   knowledge.Backend
	Retrieval *knowledge.Service

	// Auth
	AuthMiddleware *middleware.AuthMiddleware
}

// Option customizes dependency construction
type Option func(*Dependencies)

// WithBackend replaces the Bedrock backend, e.g. with a stub in tests
func WithBackend(backend knowledge.Backend) Option {
	return func(d *Dependencies) {
		d.Backend = backend
	}
}

// WithMetrics uses the given collectors instead of a fresh registry
func WithMetrics(metrics *observability.Metrics) Option {
	return func(d *Dependencies) {
		d.Metrics = metrics
	}
}

// NewDependencies creates and wires up all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts ...Option) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}
	for _, opt := range opts {
		opt(deps)
	}

	if deps.Metrics == nil {
		deps.Metrics = observability.NewMetrics(nil)
	}

	deps.initBackend(cfg)
	deps.initAuth(cfg)

	deps.Retrieval = knowledge.NewService(deps.Backend, cfg.Bedrock.Region, logger, deps.Metrics)

	logger.Info("all dependencies initialized successfully",
		zap.String("default_region", knowledge.Target{Region: cfg.Bedrock.Region}.RegionLabel()),
		zap.Bool("metrics_enabled", cfg.Observability.MetricsEnabled))
	return deps, nil
}

// initBackend wires the Bedrock knowledge base client unless one was injected
func (d *Dependencies) initBackend(cfg *config.Config) {
	if d.Backend != nil {
		return
	}

	d.Backend = bedrock.NewClient(bedrock.NewClientFactory(cfg.Bedrock), d.Logger)

	if cfg.Bedrock.HasStaticCredentials() {
		d.Logger.Info("bedrock client using static credentials")
	} else {
		d.Logger.Info("bedrock client using default credential chain")
	}
	if cfg.Bedrock.Endpoint != "" {
		d.Logger.Info("bedrock endpoint override", zap.String("endpoint", cfg.Bedrock.Endpoint))
	}
}

func (d *Dependencies) initAuth(cfg *config.Config) {
	if cfg.Auth.BearerToken == "" {
		d.Logger.Warn("BEARER_TOKEN not configured, every retrieval request will be rejected")
	}
	d.AuthMiddleware = middleware.NewAuthMiddleware(
		middleware.NewStaticTokenValidator(cfg.Auth.BearerToken), d.Logger, d.Metrics)
}

// AuthConfigured reports whether a bearer token is set
func (d *Dependencies) AuthConfigured() bool {
	return d.Config.Auth.BearerToken != ""
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	// Sync logger
	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	return nil
}
