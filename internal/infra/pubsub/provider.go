// Package pubsub provides auth-event publishing over NATS, with a no-op
// fallback when messaging is not configured.
package pubsub

import (
	"context"
	"log/slog"

	"habitat/config"
	"habitat/internal/domain/entity"
	"habitat/internal/domain/service"

	"go.uber.org/fx"
)

// noopPublisher is a no-op implementation when NATS is disabled.
type noopPublisher struct {
	logger *slog.Logger
}

func (p *noopPublisher) Publish(_ context.Context, event *entity.AuthEvent) error {
	p.logger.Debug("[NoopPubSub] Event publishing disabled, skipping",
		slog.String("event_id", event.EventID),
		slog.String("event_type", string(event.EventType)),
	)

	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}

// PublisherParams holds dependencies for AuthEventPublisher, injected by Fx.
type PublisherParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewAuthEventPublisher creates an AuthEventPublisher based on configuration.
func NewAuthEventPublisher(params PublisherParams) (service.AuthEventPublisher, error) {
	cfg := params.Config.NATS
	logger := params.Logger

	// If NATS is not configured, return a no-op publisher.
	if cfg == nil || cfg.URL == "" {
		logger.Info("NATS not configured, using no-op auth event publisher")

		return &noopPublisher{logger: logger}, nil
	}

	publisher, err := newNATSPublisher(cfg, params.Config.Env.ServiceName, logger)
	if err != nil {
		return nil, err
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})

	return publisher, nil
}
