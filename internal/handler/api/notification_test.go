//go:build unit

package api_test

import (
	"net/http"
	"strings"
	"testing"

	"agency-notify/internal/handler/api"
	resdto "agency-notify/internal/handler/dto/response"
	"agency-notify/internal/pkg/errs"
	"agency-notify/internal/usecase/commands"
	"agency-notify/internal/usecase/queries"
	"agency-notify/tests/common/builder"
	"agency-notify/tests/common/httptest"
	"agency-notify/tests/common/testutil"
	commandsmock "agency-notify/tests/mock/commands"
	queriesmock "agency-notify/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type NotificationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockNotificationCommands
	mockQueries  *queriesmock.MockNotificationQueries
	handler      *api.NotificationHandler

	userID   uuid.UUID
	tenantID uuid.UUID
}

func (s *NotificationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockNotificationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockNotificationQueries(s.mockCtrl)
	s.handler = api.NewNotificationHandler(s.mockCommands, s.mockQueries)

	s.userID = uuid.New()
	s.tenantID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("tenant_id", s.tenantID)
		c.Next()
	}

	s.router.POST("/notifications", authMiddleware, s.handler.Create)
	s.router.GET("/notifications", authMiddleware, s.handler.List)
	s.router.POST("/notifications/read-all", authMiddleware, s.handler.MarkAllRead)
}

func (s *NotificationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestNotificationHandlerSuite(t *testing.T) {
	suite.Run(t, new(NotificationHandlerTestSuite))
}

type testCaseNotification struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *NotificationHandlerTestSuite) TestCreate() {
	url := "/notifications"

	reqBody := builder.NewNotificationBuilder().BuildCreateRequestDTO()
	expectedResult := &commands.CreateNotificationResult{NotificationID: uuid.New()}

	s.Run("success: returns 201 Created for valid request", func() {
		s.mockCommands.EXPECT().
			Create(gomock.Any(), gomock.Any(), s.tenantID, s.userID).
			Return(expectedResult, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		s.Equal(http.StatusCreated, rec.Code)

		var body resdto.CreateNotificationResponse
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &body)
		s.Equal(expectedResult.NotificationID.String(), body.ID)
	})

	s.Run("success: missing category is accepted and coerced downstream", func() {
		s.mockCommands.EXPECT().
			Create(gomock.Any(), gomock.Any(), s.tenantID, s.userID).
			Return(expectedResult, nil).Times(1)

		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("category", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")

		s.Equal(http.StatusCreated, rec.Code)
	})

	s.Run("validation boundary cases", func() {
		cases := []testCaseNotification{
			{name: "content length OK (2000 chars)", mutate: testutil.Field("content", strings.Repeat("a", 2000)), expectCode: http.StatusCreated},
			{name: "content length invalid (2001 chars)", mutate: testutil.Field("content", strings.Repeat("a", 2001)), expectCode: http.StatusBadRequest},
			{name: "missing field: content (required)", mutate: testutil.Field("content", nil), expectCode: http.StatusBadRequest},
			{name: "empty content", mutate: testutil.Field("content", ""), expectCode: http.StatusBadRequest},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				if tc.expectCode == http.StatusCreated {
					s.mockCommands.EXPECT().
						Create(gomock.Any(), gomock.Any(), s.tenantID, s.userID).
						Return(expectedResult, nil).Times(1)
				}
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
				s.Equal(tc.expectCode, rec.Code)
			})
		}
	})

	s.Run("error: returns 400 when domain validation rejects the input", func() {
		s.mockCommands.EXPECT().
			Create(gomock.Any(), gomock.Any(), s.tenantID, s.userID).
			Return(nil, errs.ErrContentRequired).Times(1)

		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("content", "   "))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")

		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: returns 500 when persistence fails", func() {
		s.mockCommands.EXPECT().
			Create(gomock.Any(), gomock.Any(), s.tenantID, s.userID).
			Return(nil, errs.ErrDatabaseOperationFailed).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		s.Equal(http.StatusInternalServerError, rec.Code)
	})

	s.Run("error: returns 401 without authorization", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *NotificationHandlerTestSuite) TestList() {
	url := "/notifications"

	s.Run("success: returns the tenant's notifications", func() {
		view := builder.NewNotificationBuilder().WithTenantID(s.tenantID).BuildView()
		s.mockQueries.EXPECT().
			ListByTenant(gomock.Any(), s.tenantID, s.userID, queries.DefaultLimit).
			Return([]*queries.NotificationView{view}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		s.Equal(http.StatusOK, rec.Code)

		var body struct {
			Notifications []*resdto.NotificationResponse `json:"notifications"`
		}
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &body)
		s.Require().Len(body.Notifications, 1)
		s.Equal(view.ID.String(), body.Notifications[0].ID)
		s.Equal(view.Content, body.Notifications[0].Content)
		s.False(body.Notifications[0].IsRead)
	})

	s.Run("success: empty result is an empty list, not an error", func() {
		s.mockQueries.EXPECT().
			ListByTenant(gomock.Any(), s.tenantID, s.userID, queries.DefaultLimit).
			Return([]*queries.NotificationView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("success: limit above maximum is clamped before the query", func() {
		s.mockQueries.EXPECT().
			ListByTenant(gomock.Any(), s.tenantID, s.userID, queries.MaxLimit).
			Return([]*queries.NotificationView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?limit=500", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("success: unparseable limit falls back to default", func() {
		s.mockQueries.EXPECT().
			ListByTenant(gomock.Any(), s.tenantID, s.userID, queries.DefaultLimit).
			Return([]*queries.NotificationView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?limit=abc", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: returns 500 when the read store fails", func() {
		s.mockQueries.EXPECT().
			ListByTenant(gomock.Any(), s.tenantID, s.userID, queries.DefaultLimit).
			Return(nil, errs.ErrDatabaseOperationFailed).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		s.Equal(http.StatusInternalServerError, rec.Code)
	})

	s.Run("error: returns 401 without authorization", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

// ================================================================================
// TestMarkAllRead
// ================================================================================

func (s *NotificationHandlerTestSuite) TestMarkAllRead() {
	url := "/notifications/read-all"

	s.Run("success: returns the number of newly marked rows", func() {
		s.mockCommands.EXPECT().
			MarkAllRead(gomock.Any(), s.tenantID, s.userID).
			Return(int64(4), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		s.Equal(http.StatusOK, rec.Code)

		var body resdto.MarkAllReadResponse
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &body)
		s.Equal(int64(4), body.MarkedCount)
	})

	s.Run("success: repeat call reports zero", func() {
		s.mockCommands.EXPECT().
			MarkAllRead(gomock.Any(), s.tenantID, s.userID).
			Return(int64(0), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		s.Equal(http.StatusOK, rec.Code)

		var body resdto.MarkAllReadResponse
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &body)
		s.Equal(int64(0), body.MarkedCount)
	})

	s.Run("error: returns 500 when the store fails", func() {
		s.mockCommands.EXPECT().
			MarkAllRead(gomock.Any(), s.tenantID, s.userID).
			Return(int64(0), errs.ErrDatabaseOperationFailed).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusInternalServerError, rec.Code)
	})

	s.Run("error: returns 401 without authorization", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}
