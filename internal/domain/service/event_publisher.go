package service

import (
	"context"

	"habitat/internal/domain/entity"
)

// AuthEventPublisher defines the interface for publishing account-lifecycle
// events. Delivery is at-most-attempted: callers dispatch asynchronously and
// never block on, or fail because of, the publish.
type AuthEventPublisher interface {
	// Publish sends a single auth event.
	Publish(ctx context.Context, event *entity.AuthEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
