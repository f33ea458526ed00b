// Package app contains the application setup for the ProductService.
package app

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/productcatalog/internal/config"
	"github.com/abgdnv/productcatalog/internal/product/service"
	"github.com/abgdnv/productcatalog/internal/product/store"
	"github.com/abgdnv/productcatalog/internal/product/transport/rest"
	"github.com/abgdnv/productcatalog/pkg/messaging"
	"github.com/abgdnv/productcatalog/pkg/server"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

type Dependencies struct {
	ProductService service.ProductService
	Logger         *slog.Logger
	// MetricsHandler serves the Prometheus registry; nil when metrics are disabled.
	MetricsHandler http.Handler
	Health         *health.Server
}

// SetupDependencies builds the product store and service. The store is seeded when cfg.Catalog.Seed is set.
func SetupDependencies(cfg *config.Config, publisher messaging.Publisher, meter metric.Meter, logger *slog.Logger) *Dependencies {
	var seed []store.Product
	if cfg.Catalog.Seed {
		seed = store.SeedProducts()
	}
	pService := service.NewService(
		store.NewInMemoryStore(seed...),
		publisher,
		meter,
		logger,
		service.WithPublishTimeout(cfg.Events.PublishTimeout),
	)

	return &Dependencies{
		ProductService: pService,
		Logger:         logger,
		Health:         health.NewServer(),
	}
}

// SetupHttpHandler initializes the HTTP server and routes for the ProductService application.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps, cfg)
	return server.Instrument(mux, "product-http")
}

// wireRoutes sets up the HTTP routes for the ProductService application.
func wireRoutes(mux *chi.Mux, deps *Dependencies, cfg *config.Config) {
	productHandler := rest.NewHandler(deps.ProductService, deps.Logger)
	productHandler.RegisterRoutes(mux)

	if cfg.Metrics.Enabled && deps.MetricsHandler != nil {
		mux.Method(http.MethodGet, cfg.Metrics.Path, deps.MetricsHandler)
	}
}

// SetupHttpServer creates and configures an HTTP server for the ProductService application.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	handler := SetupHttpHandler(deps, cfg)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, handler)
}

// SetupGrpcServer initializes the operational gRPC server exposing grpc.health.v1.
func SetupGrpcServer(deps *Dependencies, reflectionEnabled bool) *grpc.Server {
	return server.NewGRPCServer(deps.Logger, reflectionEnabled, server.HealthRegistration(deps.Health))
}
