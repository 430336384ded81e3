package commands

import (
	"context"
	"time"

	"agency-notify/internal/domain/notification"
	"agency-notify/internal/events"

	"github.com/google/uuid"
)

// NotificationRepository is the durable, authoritative store.
type NotificationRepository interface {
	Create(ctx context.Context, n *notification.Notification) error
	MarkAllRead(ctx context.Context, tenantID, userID uuid.UUID) (int64, error)
	DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error)
}

// EventPublisher accelerates delivery through the broker. Implementations log
// their own failures; callers never fail a committed write on the returned
// error.
type EventPublisher interface {
	Publish(ctx context.Context, env events.Envelope) error
}

// AuthorReadStore resolves the display name carried in the envelope.
type AuthorReadStore interface {
	DisplayName(ctx context.Context, authorID uuid.UUID) (string, error)
}
