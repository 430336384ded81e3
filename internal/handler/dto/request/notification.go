package request

// Category is optional on purpose: unknown or missing values are coerced to
// "system" downstream rather than rejected.
type CreateNotificationRequest struct {
	Category string `json:"category"`
	Content  string `json:"content" binding:"required,max=2000"`
}
