package notification

import (
	"time"

	"agency-notify/internal/pkg/errs"

	"github.com/google/uuid"
)

// TTL is how long a notification stays queryable before the reaper removes it.
const TTL = 30 * 24 * time.Hour

type Notification struct {
	id        uuid.UUID
	tenantID  uuid.UUID
	authorID  uuid.UUID
	category  Category
	content   Content
	createdAt time.Time
	readBy    []uuid.UUID
}

// NewNotification validates and builds a notification. Unknown categories are
// coerced to CategorySystem rather than rejected; only the readBy set is
// mutable after creation.
func NewNotification(id, tenantID, authorID uuid.UUID, rawCategory, rawContent string, now time.Time) (*Notification, error) {
	if tenantID == uuid.Nil {
		return nil, errs.ErrTenantRequired
	}
	if authorID == uuid.Nil {
		return nil, errs.ErrAuthorRequired
	}

	content, err := NewContent(rawContent)
	if err != nil {
		return nil, err
	}

	if id == uuid.Nil {
		id = uuid.New()
	}

	return &Notification{
		id:        id,
		tenantID:  tenantID,
		authorID:  authorID,
		category:  CoerceCategory(rawCategory),
		content:   content,
		createdAt: now,
		readBy:    nil,
	}, nil
}

// ReconstructNotification rebuilds an entity from persisted state without
// re-running creation validation.
func ReconstructNotification(id, tenantID, authorID uuid.UUID, category Category, content Content, createdAt time.Time, readBy []uuid.UUID) *Notification {
	return &Notification{
		id:        id,
		tenantID:  tenantID,
		authorID:  authorID,
		category:  category,
		content:   content,
		createdAt: createdAt,
		readBy:    readBy,
	}
}

func (n *Notification) ID() uuid.UUID        { return n.id }
func (n *Notification) TenantID() uuid.UUID  { return n.tenantID }
func (n *Notification) AuthorID() uuid.UUID  { return n.authorID }
func (n *Notification) Category() Category   { return n.category }
func (n *Notification) Content() Content     { return n.content }
func (n *Notification) CreatedAt() time.Time { return n.createdAt }

func (n *Notification) ExpiresAt() time.Time {
	return n.createdAt.Add(TTL)
}

func (n *Notification) IsExpired(now time.Time) bool {
	return now.After(n.ExpiresAt())
}

// IsReadBy is a pure membership test on the readBy set.
func (n *Notification) IsReadBy(userID uuid.UUID) bool {
	for _, id := range n.readBy {
		if id == userID {
			return true
		}
	}
	return false
}

func (n *Notification) ReadBy() []uuid.UUID {
	out := make([]uuid.UUID, len(n.readBy))
	copy(out, n.readBy)
	return out
}
