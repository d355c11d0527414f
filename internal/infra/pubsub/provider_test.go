package pubsub

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"habitat/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestNoopPublisher(t *testing.T) {
	publisher := &noopPublisher{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	event := &entity.AuthEvent{
		EventID:    "evt-1",
		EventType:  entity.AuthEventUserRegistered,
		UserID:     1,
		Username:   "alice",
		OccurredAt: time.Now(),
	}

	assert.NoError(t, publisher.Publish(context.Background(), event))
	assert.NoError(t, publisher.Close())
}
