package errs

import "errors"

// Domain-specific sentinel errors for the notification pipeline
var (
	// Validation errors (rejected before any persistence)
	ErrTenantRequired  = errors.New("tenant id is required")
	ErrAuthorRequired  = errors.New("author id is required")
	ErrContentRequired = errors.New("content cannot be empty")
	ErrContentTooLong  = errors.New("content exceeds maximum length")

	// Query errors
	ErrNotificationNotFound = errors.New("notification not found")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
