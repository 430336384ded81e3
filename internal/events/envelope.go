package events

import (
	"encoding/json"
	"time"

	"agency-notify/internal/domain/notification"

	"github.com/google/uuid"
)

// Envelope is the broker wire shape. It is ephemeral display data: IsRead is
// always false at broadcast time because delivery is tenant-wide, and
// per-viewer read status only exists at query time.
type Envelope struct {
	ID                uuid.UUID `json:"id"`
	TenantID          uuid.UUID `json:"tenantId"`
	AuthorID          uuid.UUID `json:"authorId"`
	AuthorDisplayName string    `json:"authorDisplayName"`
	Category          string    `json:"category"`
	UICategoryLabel   string    `json:"uiCategoryLabel"`
	Content           string    `json:"content"`
	CreatedAt         time.Time `json:"createdAt"`
	IsRead            bool      `json:"isRead"`
}

func NewEnvelope(n *notification.Notification, authorDisplayName string) Envelope {
	return Envelope{
		ID:                n.ID(),
		TenantID:          n.TenantID(),
		AuthorID:          n.AuthorID(),
		AuthorDisplayName: authorDisplayName,
		Category:          n.Category().String(),
		UICategoryLabel:   n.Category().Label(),
		Content:           n.Content().String(),
		CreatedAt:         n.CreatedAt(),
		IsRead:            false,
	}
}

func (e Envelope) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

func UnmarshalEnvelope(data []byte) (Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return Envelope{}, err
	}
	return e, nil
}

// PartitionKey is the broker message key; all events of one tenant share it so
// any single consumer observes them in publish order.
func (e Envelope) PartitionKey() []byte {
	return []byte(e.TenantID.String())
}
