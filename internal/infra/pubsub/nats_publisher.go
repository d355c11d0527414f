package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"habitat/config"
	"habitat/internal/domain/entity"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
)

const defaultSubject = "auth.events"

// natsPublisher publishes auth events to a NATS subject as JSON.
type natsPublisher struct {
	nc      *nats.Conn
	subject string
	logger  *slog.Logger
}

// newNATSPublisher establishes the NATS connection.
func newNATSPublisher(cfg *config.NATSConfig, serviceName string, logger *slog.Logger) (*natsPublisher, error) {
	subject := cfg.Subject
	if subject == "" {
		subject = defaultSubject
	}

	nc, err := nats.Connect(cfg.URL,
		nats.Name(serviceName+"-auth-events"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
		nats.Timeout(5*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("NATS disconnected", slog.Any("error", err))
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("NATS reconnected", slog.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to NATS at %s", cfg.URL)
	}

	logger.Info("Connected to NATS server", slog.String("url", nc.ConnectedUrl()))

	return &natsPublisher{
		nc:      nc,
		subject: subject,
		logger:  logger,
	}, nil
}

// Publish sends a single auth event. Callers dispatch this asynchronously;
// a failure here is logged by the caller and never fails the request that
// triggered it.
func (p *natsPublisher) Publish(ctx context.Context, event *entity.AuthEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "failed to marshal auth event")
	}

	if err := p.nc.Publish(p.subject, payload); err != nil {
		return errors.Wrapf(err, "failed to publish auth event %s", event.EventID)
	}

	// Respect the caller's deadline while making a best effort to flush.
	if deadline, ok := ctx.Deadline(); ok {
		if err := p.nc.FlushTimeout(time.Until(deadline)); err != nil {
			return errors.Wrap(err, "failed to flush auth event")
		}
	}

	return nil
}

// Close drains the connection.
func (p *natsPublisher) Close() error {
	if p.nc == nil || p.nc.IsClosed() {
		return nil
	}

	return p.nc.Drain()
}
