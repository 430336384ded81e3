package response

import (
	"agency-notify/internal/usecase/queries"
)

type NotificationResponse struct {
	ID                string `json:"id"`
	TenantID          string `json:"tenant_id"`
	AuthorID          string `json:"author_id"`
	AuthorDisplayName string `json:"author_display_name"`
	Category          string `json:"category"`
	CategoryLabel     string `json:"category_label"`
	Content           string `json:"content"`
	CreatedAt         int64  `json:"created_at"`
	IsRead            bool   `json:"is_read"`
}

func FromNotificationView(v *queries.NotificationView) *NotificationResponse {
	return &NotificationResponse{
		ID:                v.ID.String(),
		TenantID:          v.TenantID.String(),
		AuthorID:          v.AuthorID.String(),
		AuthorDisplayName: v.AuthorDisplayName,
		Category:          v.Category,
		CategoryLabel:     v.CategoryLabel,
		Content:           v.Content,
		CreatedAt:         v.CreatedAt.Unix(),
		IsRead:            v.IsRead,
	}
}

func FromNotificationList(items []*queries.NotificationView) []*NotificationResponse {
	res := make([]*NotificationResponse, len(items))
	for i, it := range items {
		res[i] = FromNotificationView(it)
	}
	return res
}

type MarkAllReadResponse struct {
	MarkedCount int64 `json:"marked_count"`
}

type CreateNotificationResponse struct {
	ID string `json:"id"`
}
