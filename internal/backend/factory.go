// Package backend wires the configured store and optional event publisher.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"neonspend/internal/config"
	"neonspend/internal/events"
	"neonspend/internal/store"
	"neonspend/internal/store/memory"
	"neonspend/internal/store/postgres"
	"neonspend/internal/store/sqlite"
)

// New builds the store selected by the configuration plus an AMQP event
// client when a broker URL is configured. A nil events client means events
// are disabled.
func New(ctx context.Context, cfg *config.Config) (store.Store, *events.Client, error) {
	st, err := newStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	var eventsClient *events.Client
	if cfg.AMQPURL != "" {
		eventsClient, err = events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			st.Close()
			return nil, nil, fmt.Errorf("initialize AMQP client: %w", err)
		}
		slog.InfoContext(ctx, "AMQP events enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		slog.InfoContext(ctx, "AMQP events disabled - no AMQP_URL provided")
	}

	return st, eventsClient, nil
}

func newStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case "sqlite":
		repo, err := sqlite.New(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		slog.InfoContext(ctx, "Initialized sqlite store", "path", cfg.DatabaseURL)
		return repo, nil
	case "postgres":
		repo, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("initialize postgres store: %w", err)
		}
		slog.InfoContext(ctx, "Initialized postgres store")
		return repo, nil
	case "memory":
		slog.InfoContext(ctx, "Initialized memory store")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.StoreBackend)
	}
}
