// Package bootstrap builds the outbound infrastructure a service needs at startup.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abgdnv/productcatalog/pkg/config"
	"github.com/abgdnv/productcatalog/pkg/messaging"
	"github.com/abgdnv/productcatalog/pkg/nats"
)

// NewEventPublisher returns the publisher for product lifecycle events and a cleanup func
// that drains the broker connection. When events are disabled a NoopPublisher is returned.
func NewEventPublisher(ctx context.Context, cfg config.EventsConfig, logger *slog.Logger) (messaging.Publisher, func(), error) {
	if !cfg.Enabled {
		logger.Info("Event publishing disabled")
		return messaging.NoopPublisher{}, func() {}, nil
	}

	nc, err := nats.NewClient(cfg.NATS.Url, cfg.NATS.Timeout)
	if err != nil {
		return nil, nil, err
	}
	js, err := nats.NewJetStreamContext(nc)
	if err != nil {
		return nil, nil, err
	}

	streamCtx, cancel := context.WithTimeout(ctx, cfg.NATS.Timeout)
	defer cancel()
	if err := nats.EnsureStream(streamCtx, js, cfg.NATS.Stream, messaging.ProductsStreamSubjects); err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("failed to prepare event stream: %w", err)
	}

	cleanup := func() {
		if err := nc.Drain(); err != nil {
			logger.Error("Failed to drain NATS connection", "error", err)
		}
	}
	publisher := messaging.NewBreakerPublisher("nats-publisher", nats.NewNatsPublisher(js), cfg.CircuitBreaker, logger)
	logger.Info("Event publishing enabled", "url", cfg.NATS.Url, "stream", cfg.NATS.Stream)
	return publisher, cleanup, nil
}
