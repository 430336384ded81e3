//go:build e2e

package notification_test

import (
	"net/http"
	"testing"
	"time"

	"agency-notify/internal/handler/dto/response"
	"agency-notify/tests/common/authtest"
	"agency-notify/tests/common/builder"
	"agency-notify/tests/common/dbtest"
	"agency-notify/tests/common/httptest"
	"agency-notify/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	notificationsURL = "/api/notifications"
	readAllURL       = "/api/notifications/read-all"
)

type NotificationSuite struct {
	e2e.SharedSuite
}

func (s *NotificationSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestNotificationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(NotificationSuite))
}

type listBody struct {
	Notifications []*response.NotificationResponse `json:"notifications"`
}

func (s *NotificationSuite) token(t *testing.T, userID, tenantID uuid.UUID) string {
	t.Helper()
	return authtest.NewJWTHelper(s.Config.JWT).GenerateToken(t, userID, tenantID)
}

// =============================================================================
// TestCreateNotification
// =============================================================================

func (s *NotificationSuite) TestCreateNotification() {
	s.Run("Normal case: created notification appears in the tenant feed", func() {
		t := s.T()

		tenantID := uuid.New()
		authorID := dbtest.CreateTestUser(t, s.DB, tenantID, "Agent Smith", "agent@example.com")
		token := s.token(t, authorID, tenantID)

		reqBody := builder.NewNotificationBuilder().
			WithCategory("demand").
			WithContent("Demand filled").
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, notificationsURL, reqBody, token)
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.CreateNotificationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.NotEmpty(t, created.ID)

		lw := httptest.PerformRequest(t, s.Router, http.MethodGet, notificationsURL, nil, token)
		require.Equal(t, http.StatusOK, lw.Code)

		var body listBody
		require.NoError(t, httptest.DecodeResponseBody(t, lw.Body, &body))
		require.Len(t, body.Notifications, 1)

		expected := &response.NotificationResponse{
			ID:                created.ID,
			TenantID:          tenantID.String(),
			AuthorID:          authorID.String(),
			AuthorDisplayName: "Agent Smith",
			Category:          "demand",
			CategoryLabel:     "Demand",
			Content:           "Demand filled",
			IsRead:            false,
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.NotificationResponse{}, "CreatedAt"),
		}
		if diff := cmp.Diff(expected, body.Notifications[0], opts...); diff != "" {
			t.Errorf("notification mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Normal case: envelope is handed to the publisher keyed by tenant", func() {
		t := s.T()

		tenantID := uuid.New()
		authorID := dbtest.CreateTestUser(t, s.DB, tenantID, "Agent Smith", "agent@example.com")
		token := s.token(t, authorID, tenantID)

		reqBody := builder.NewNotificationBuilder().WithContent("Worker X added").BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, notificationsURL, reqBody, token)
		require.Equal(t, http.StatusCreated, w.Code)

		envs := s.Publisher.Envelopes()
		require.Len(t, envs, 1)
		require.Equal(t, tenantID, envs[0].TenantID)
		require.Equal(t, "Agent Smith", envs[0].AuthorDisplayName)
		require.False(t, envs[0].IsRead)
	})

	s.Run("Normal case: unknown category is stored as system", func() {
		t := s.T()

		tenantID := uuid.New()
		authorID := dbtest.CreateTestUser(t, s.DB, tenantID, "Agent Smith", "agent@example.com")
		token := s.token(t, authorID, tenantID)

		reqBody := builder.NewNotificationBuilder().WithCategory("bogus").BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, notificationsURL, reqBody, token)
		require.Equal(t, http.StatusCreated, w.Code)

		lw := httptest.PerformRequest(t, s.Router, http.MethodGet, notificationsURL, nil, token)
		var body listBody
		require.NoError(t, httptest.DecodeResponseBody(t, lw.Body, &body))
		require.Len(t, body.Notifications, 1)
		require.Equal(t, "system", body.Notifications[0].Category)
		require.Equal(t, "System", body.Notifications[0].CategoryLabel)
	})

	s.Run("Error case: empty content is rejected", func() {
		t := s.T()

		tenantID := uuid.New()
		authorID := dbtest.CreateTestUser(t, s.DB, tenantID, "Agent Smith", "agent@example.com")
		token := s.token(t, authorID, tenantID)

		reqBody := builder.NewNotificationBuilder().WithContent("").BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, notificationsURL, reqBody, token)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	s.Run("Error case: request without token is rejected", func() {
		t := s.T()

		reqBody := builder.NewNotificationBuilder().BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, notificationsURL, reqBody, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// TestListNotifications
// =============================================================================

func (s *NotificationSuite) TestListNotifications() {
	s.Run("Normal case: newest first, scoped to the session tenant", func() {
		t := s.T()

		tenantA := uuid.New()
		tenantB := uuid.New()
		authorA := dbtest.CreateTestUser(t, s.DB, tenantA, "Agent A", "a@example.com")
		authorB := dbtest.CreateTestUser(t, s.DB, tenantB, "Agent B", "b@example.com")

		now := time.Now().UTC()
		dbtest.CreateTestNotification(t, s.DB, tenantA, authorA, "worker", "older", now.Add(-time.Hour))
		dbtest.CreateTestNotification(t, s.DB, tenantA, authorA, "worker", "newer", now)
		dbtest.CreateTestNotification(t, s.DB, tenantB, authorB, "worker", "other tenant", now)

		token := s.token(t, authorA, tenantA)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, notificationsURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var body listBody
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &body))
		require.Len(t, body.Notifications, 2)
		require.Equal(t, "newer", body.Notifications[0].Content)
		require.Equal(t, "older", body.Notifications[1].Content)
	})

	s.Run("Normal case: notifications past the retention window are not listed", func() {
		t := s.T()

		tenantID := uuid.New()
		authorID := dbtest.CreateTestUser(t, s.DB, tenantID, "Agent Smith", "agent@example.com")

		now := time.Now().UTC()
		dbtest.CreateTestNotification(t, s.DB, tenantID, authorID, "worker", "live", now.Add(-24*time.Hour))
		dbtest.CreateTestNotification(t, s.DB, tenantID, authorID, "worker", "expired", now.Add(-31*24*time.Hour))

		token := s.token(t, authorID, tenantID)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, notificationsURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var body listBody
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &body))
		require.Len(t, body.Notifications, 1)
		require.Equal(t, "live", body.Notifications[0].Content)

		// The row itself is still in the store until the reaper runs.
		require.Equal(t, 2, dbtest.CountNotifications(t, s.DB, tenantID))
	})

	s.Run("Normal case: limit caps the page size", func() {
		t := s.T()

		tenantID := uuid.New()
		authorID := dbtest.CreateTestUser(t, s.DB, tenantID, "Agent Smith", "agent@example.com")

		now := time.Now().UTC()
		for i := range 5 {
			dbtest.CreateTestNotification(t, s.DB, tenantID, authorID, "worker", "n", now.Add(-time.Duration(i)*time.Minute))
		}

		token := s.token(t, authorID, tenantID)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, notificationsURL+"?limit=3", nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var body listBody
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &body))
		require.Len(t, body.Notifications, 3)
	})
}

// =============================================================================
// TestMarkAllRead
// =============================================================================

func (s *NotificationSuite) TestMarkAllRead() {
	s.Run("Normal case: marks every tenant notification for the caller only", func() {
		t := s.T()

		tenantID := uuid.New()
		authorID := dbtest.CreateTestUser(t, s.DB, tenantID, "Agent Smith", "agent@example.com")
		readerID := dbtest.CreateTestUser(t, s.DB, tenantID, "Reader", "reader@example.com")

		now := time.Now().UTC()
		dbtest.CreateTestNotification(t, s.DB, tenantID, authorID, "worker", "first", now.Add(-time.Minute))
		dbtest.CreateTestNotification(t, s.DB, tenantID, authorID, "worker", "second", now)

		readerToken := s.token(t, readerID, tenantID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, readAllURL, nil, readerToken)
		require.Equal(t, http.StatusOK, w.Code)

		var marked response.MarkAllReadResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &marked))
		require.Equal(t, int64(2), marked.MarkedCount)

		// The reader sees everything read.
		lw := httptest.PerformRequest(t, s.Router, http.MethodGet, notificationsURL, nil, readerToken)
		var readerView listBody
		require.NoError(t, httptest.DecodeResponseBody(t, lw.Body, &readerView))
		require.Len(t, readerView.Notifications, 2)
		for _, n := range readerView.Notifications {
			require.True(t, n.IsRead)
		}

		// Another user of the same tenant still sees everything unread.
		authorToken := s.token(t, authorID, tenantID)
		aw := httptest.PerformRequest(t, s.Router, http.MethodGet, notificationsURL, nil, authorToken)
		var authorView listBody
		require.NoError(t, httptest.DecodeResponseBody(t, aw.Body, &authorView))
		require.Len(t, authorView.Notifications, 2)
		for _, n := range authorView.Notifications {
			require.False(t, n.IsRead)
		}
	})

	s.Run("Normal case: second call is a no-op", func() {
		t := s.T()

		tenantID := uuid.New()
		authorID := dbtest.CreateTestUser(t, s.DB, tenantID, "Agent Smith", "agent@example.com")
		dbtest.CreateTestNotification(t, s.DB, tenantID, authorID, "worker", "only one", time.Now().UTC())

		token := s.token(t, authorID, tenantID)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, readAllURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		var first response.MarkAllReadResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &first))
		require.Equal(t, int64(1), first.MarkedCount)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, readAllURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		var second response.MarkAllReadResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &second))
		require.Equal(t, int64(0), second.MarkedCount)
	})

	s.Run("Error case: expired token is rejected", func() {
		t := s.T()

		tenantID := uuid.New()
		userID := uuid.New()
		expired := authtest.NewJWTHelper(s.Config.JWT).CreateExpiredToken(t, userID, tenantID)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, readAllURL, nil, expired)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
