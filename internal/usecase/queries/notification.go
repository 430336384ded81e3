package queries

import (
	"context"
	"time"

	"agency-notify/internal/domain/notification"
	"agency-notify/internal/pkg/clock"

	"github.com/google/uuid"
)

const (
	DefaultLimit = 50
	MaxLimit     = 50
)

// NotificationRecord is the raw read model as stored, before any per-viewer
// derivation.
type NotificationRecord struct {
	ID                uuid.UUID
	TenantID          uuid.UUID
	AuthorID          uuid.UUID
	AuthorDisplayName string
	Category          string
	Content           string
	CreatedAt         time.Time
	ReadBy            []uuid.UUID
}

// NotificationView is what the UI consumes: read status is computed for the
// requesting viewer at query time, which is the authoritative answer.
type NotificationView struct {
	ID                uuid.UUID `json:"id"`
	TenantID          uuid.UUID `json:"tenant_id"`
	AuthorID          uuid.UUID `json:"author_id"`
	AuthorDisplayName string    `json:"author_display_name"`
	Category          string    `json:"category"`
	CategoryLabel     string    `json:"category_label"`
	Content           string    `json:"content"`
	CreatedAt         time.Time `json:"created_at"`
	IsRead            bool      `json:"is_read"`
}

type NotificationReadStore interface {
	FindRecentByTenant(ctx context.Context, tenantID uuid.UUID, cutoff time.Time, limit int32) ([]*NotificationRecord, error)
}

type NotificationQueries interface {
	ListByTenant(ctx context.Context, tenantID, viewerID uuid.UUID, limit int) ([]*NotificationView, error)
}

type notificationQueriesImpl struct {
	store NotificationReadStore
	clock clock.Clock
}

func NewNotificationQueries(store NotificationReadStore, clk clock.Clock) NotificationQueries {
	return &notificationQueriesImpl{store: store, clock: clk}
}

// ListByTenant returns the tenant's live notifications newest first, each with
// the viewer's read status. Expired records are filtered regardless of whether
// the reaper got to them yet.
func (q *notificationQueriesImpl) ListByTenant(ctx context.Context, tenantID, viewerID uuid.UUID, limit int) ([]*NotificationView, error) {
	cutoff := q.clock.Now().Add(-notification.TTL)

	records, err := q.store.FindRecentByTenant(ctx, tenantID, cutoff, int32(ValidateLimit(limit)))
	if err != nil {
		return nil, err
	}

	views := make([]*NotificationView, len(records))
	for i, rec := range records {
		views[i] = toNotificationView(rec, viewerID)
	}
	return views, nil
}

func toNotificationView(rec *NotificationRecord, viewerID uuid.UUID) *NotificationView {
	category := notification.Category(rec.Category)

	isRead := false
	for _, id := range rec.ReadBy {
		if id == viewerID {
			isRead = true
			break
		}
	}

	return &NotificationView{
		ID:                rec.ID,
		TenantID:          rec.TenantID,
		AuthorID:          rec.AuthorID,
		AuthorDisplayName: rec.AuthorDisplayName,
		Category:          category.String(),
		CategoryLabel:     category.Label(),
		Content:           rec.Content,
		CreatedAt:         rec.CreatedAt,
		IsRead:            isRead,
	}
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
