package commands

import (
	"context"
	"log/slog"

	"agency-notify/internal/domain/notification"
	"agency-notify/internal/events"
	"agency-notify/internal/pkg/clock"

	"github.com/google/uuid"
)

type CreateNotificationResult struct {
	NotificationID uuid.UUID
}

type CreateNotificationRequest struct {
	Category string
	Content  string
}

type NotificationCommands interface {
	Create(ctx context.Context, req CreateNotificationRequest, tenantID, authorID uuid.UUID) (*CreateNotificationResult, error)
	MarkAllRead(ctx context.Context, tenantID, userID uuid.UUID) (int64, error)
}

type notificationUseCaseImpl struct {
	repo      NotificationRepository
	authors   AuthorReadStore
	publisher EventPublisher
	clock     clock.Clock
	logger    *slog.Logger
}

func NewNotificationUseCase(repo NotificationRepository, authors AuthorReadStore, publisher EventPublisher, clk clock.Clock, logger *slog.Logger) NotificationCommands {
	return &notificationUseCaseImpl{
		repo:      repo,
		authors:   authors,
		publisher: publisher,
		clock:     clk,
		logger:    logger,
	}
}

// Create persists the notification, then publishes it best-effort. The store
// write is the source of truth: once it commits, a publish failure degrades
// live push only and must never surface to the caller.
func (uc *notificationUseCaseImpl) Create(ctx context.Context, req CreateNotificationRequest, tenantID, authorID uuid.UUID) (*CreateNotificationResult, error) {
	n, err := notification.NewNotification(uuid.Nil, tenantID, authorID, req.Category, req.Content, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	uc.publish(ctx, n)

	return &CreateNotificationResult{NotificationID: n.ID()}, nil
}

func (uc *notificationUseCaseImpl) MarkAllRead(ctx context.Context, tenantID, userID uuid.UUID) (int64, error) {
	return uc.repo.MarkAllRead(ctx, tenantID, userID)
}

func (uc *notificationUseCaseImpl) publish(ctx context.Context, n *notification.Notification) {
	displayName, err := uc.authors.DisplayName(ctx, n.AuthorID())
	if err != nil {
		// The envelope is display data; a missing name is not worth losing
		// the live event over.
		uc.logger.Warn("failed to resolve author display name",
			slog.String("author_id", n.AuthorID().String()),
			slog.String("error", err.Error()),
		)
	}

	if err := uc.publisher.Publish(ctx, events.NewEnvelope(n, displayName)); err != nil {
		uc.logger.Warn("notification publish failed; store write remains authoritative",
			slog.String("notification_id", n.ID().String()),
			slog.String("tenant_id", n.TenantID().String()),
			slog.String("error", err.Error()),
		)
	}
}
