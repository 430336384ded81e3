package readstore

import (
	"context"
	"time"

	"agency-notify/internal/infra"
	"agency-notify/internal/infra/db"
	"agency-notify/internal/usecase/queries"

	"github.com/google/uuid"
)

// Only the author's display name crosses this boundary; no other author
// fields are exposed to the notification surface.
const recentByTenantSQL = `
	SELECT n.id, n.tenant_id, n.author_id, u.display_name, n.category, n.content, n.created_at, n.read_by
	FROM notifications n
	JOIN users u ON u.id = n.author_id
	WHERE n.tenant_id = $1 AND n.created_at >= $2
	ORDER BY n.created_at DESC, n.id DESC
	LIMIT $3`

type NotificationReadStore struct {
	db db.DBTX
}

func NewNotificationReadStore(pool db.DBTX) *NotificationReadStore {
	return &NotificationReadStore{db: pool}
}

// FindRecentByTenant returns the tenant's notifications newest first. Records
// created before the cutoff are filtered here even if the reaper has not
// removed them yet.
func (s *NotificationReadStore) FindRecentByTenant(ctx context.Context, tenantID uuid.UUID, cutoff time.Time, limit int32) ([]*queries.NotificationRecord, error) {
	rows, err := s.db.Query(ctx, recentByTenantSQL, tenantID, cutoff, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query notifications by tenant", err)
	}
	defer rows.Close()

	var result []*queries.NotificationRecord
	for rows.Next() {
		var rec queries.NotificationRecord
		if err := rows.Scan(
			&rec.ID, &rec.TenantID, &rec.AuthorID, &rec.AuthorDisplayName,
			&rec.Category, &rec.Content, &rec.CreatedAt, &rec.ReadBy,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification row", err)
		}
		result = append(result, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read notification rows", err)
	}

	return result, nil
}
