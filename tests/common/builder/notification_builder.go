//go:build unit || e2e

package builder

import (
	"time"

	domnotification "agency-notify/internal/domain/notification"
	"agency-notify/internal/events"
	reqdto "agency-notify/internal/handler/dto/request"
	"agency-notify/internal/usecase/queries"

	"github.com/google/uuid"
)

type NotificationBuilder struct {
	ID                uuid.UUID
	TenantID          uuid.UUID
	AuthorID          uuid.UUID
	AuthorDisplayName string
	Category          string
	Content           string
	CreatedAt         time.Time
	ReadBy            []uuid.UUID
}

func NewNotificationBuilder() *NotificationBuilder {
	return &NotificationBuilder{
		ID:                uuid.New(),
		TenantID:          uuid.New(),
		AuthorID:          uuid.New(),
		AuthorDisplayName: "Agent Smith",
		Category:          "worker",
		Content:           "Worker X added",
		CreatedAt:         time.Now().UTC(),
	}
}

func (n *NotificationBuilder) With(mutate func(*NotificationBuilder)) *NotificationBuilder {
	mutate(n)
	return n
}

// Build methods
func (n *NotificationBuilder) BuildDomain() (*domnotification.Notification, error) {
	return domnotification.NewNotification(n.ID, n.TenantID, n.AuthorID, n.Category, n.Content, n.CreatedAt)
}

func (n *NotificationBuilder) BuildReconstructed() *domnotification.Notification {
	return domnotification.ReconstructNotification(
		n.ID, n.TenantID, n.AuthorID,
		domnotification.CoerceCategory(n.Category),
		domnotification.ReconstructContent(n.Content),
		n.CreatedAt,
		n.ReadBy,
	)
}

func (n *NotificationBuilder) BuildCreateRequestDTO() reqdto.CreateNotificationRequest {
	return reqdto.CreateNotificationRequest{
		Category: n.Category,
		Content:  n.Content,
	}
}

func (n *NotificationBuilder) BuildRecord() *queries.NotificationRecord {
	return &queries.NotificationRecord{
		ID:                n.ID,
		TenantID:          n.TenantID,
		AuthorID:          n.AuthorID,
		AuthorDisplayName: n.AuthorDisplayName,
		Category:          n.Category,
		Content:           n.Content,
		CreatedAt:         n.CreatedAt,
		ReadBy:            n.ReadBy,
	}
}

func (n *NotificationBuilder) BuildView() *queries.NotificationView {
	category := domnotification.CoerceCategory(n.Category)
	return &queries.NotificationView{
		ID:                n.ID,
		TenantID:          n.TenantID,
		AuthorID:          n.AuthorID,
		AuthorDisplayName: n.AuthorDisplayName,
		Category:          category.String(),
		CategoryLabel:     category.Label(),
		Content:           n.Content,
		CreatedAt:         n.CreatedAt,
		IsRead:            false,
	}
}

func (n *NotificationBuilder) BuildEnvelope() events.Envelope {
	return events.NewEnvelope(n.BuildReconstructed(), n.AuthorDisplayName)
}

// Fluent builder methods
func (n *NotificationBuilder) WithID(id uuid.UUID) *NotificationBuilder {
	n.ID = id
	return n
}

func (n *NotificationBuilder) WithTenantID(tenantID uuid.UUID) *NotificationBuilder {
	n.TenantID = tenantID
	return n
}

func (n *NotificationBuilder) WithAuthorID(authorID uuid.UUID) *NotificationBuilder {
	n.AuthorID = authorID
	return n
}

func (n *NotificationBuilder) WithAuthorDisplayName(name string) *NotificationBuilder {
	n.AuthorDisplayName = name
	return n
}

func (n *NotificationBuilder) WithCategory(category string) *NotificationBuilder {
	n.Category = category
	return n
}

func (n *NotificationBuilder) WithContent(content string) *NotificationBuilder {
	n.Content = content
	return n
}

func (n *NotificationBuilder) WithCreatedAt(createdAt time.Time) *NotificationBuilder {
	n.CreatedAt = createdAt
	return n
}

func (n *NotificationBuilder) WithReadBy(readers ...uuid.UUID) *NotificationBuilder {
	n.ReadBy = readers
	return n
}
