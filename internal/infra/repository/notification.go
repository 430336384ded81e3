package repository

import (
	"context"
	"time"

	"agency-notify/internal/domain/notification"
	"agency-notify/internal/infra"
	"agency-notify/internal/infra/db"

	"github.com/google/uuid"
)

const (
	insertNotificationSQL = `
		INSERT INTO notifications (id, tenant_id, author_id, category, content, created_at, read_by)
		VALUES ($1, $2, $3, $4, $5, $6, '{}')`

	// The "not yet containing user" predicate scopes the update per record,
	// which keeps the set-add atomic and makes repeated calls idempotent.
	markAllReadSQL = `
		UPDATE notifications
		SET read_by = array_append(read_by, $2::uuid)
		WHERE tenant_id = $1 AND NOT (read_by @> ARRAY[$2::uuid])`

	deleteExpiredSQL = `
		DELETE FROM notifications
		WHERE created_at < $1`
)

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(pool db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: pool}
}

// Create persists a notification. A storage fault surfaces to the caller as
// KindDBFailure with no partial state; there is no implicit retry.
func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	_, err := r.db.Exec(ctx, insertNotificationSQL,
		n.ID(), n.TenantID(), n.AuthorID(),
		n.Category().String(), n.Content().String(), n.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification", err)
	}
	return nil
}

// MarkAllRead adds userID to the readBy set of every tenant record that does
// not contain it yet and reports how many records were newly marked.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, tenantID, userID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, markAllReadSQL, tenantID, userID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to mark notifications read", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteExpired removes records created before the cutoff and returns the
// removed count. Invoked by the background reaper.
func (r *NotificationRepository) DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteExpiredSQL, olderThan)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired notifications", err)
	}
	return tag.RowsAffected(), nil
}
