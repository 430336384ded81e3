package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "agency-notify/internal/handler/dto/request"
	resdto "agency-notify/internal/handler/dto/response"
	"agency-notify/internal/handler/httperr"
	"agency-notify/internal/handler/middleware"
	"agency-notify/internal/infra"
	"agency-notify/internal/pkg/errs"
	"agency-notify/internal/usecase/commands"
	"agency-notify/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	cmds commands.NotificationCommands
	q    queries.NotificationQueries
}

func NewNotificationHandler(cmds commands.NotificationCommands, q queries.NotificationQueries) *NotificationHandler {
	return &NotificationHandler{cmds: cmds, q: q}
}

// @Summary Create notification
// @Description Record a tenant event and fan it out to live push connections
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateNotificationRequest true "Create notification request"
// @Success 201 {object} resdto.CreateNotificationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /notifications [post]
func (h *NotificationHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	var req reqdto.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Create(c.Request.Context(), commands.CreateNotificationRequest{
		Category: req.Category,
		Content:  req.Content,
	}, tenantID, userID)
	if err != nil {
		if isValidationErr(err) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid notification", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Create notification failed", nil)
		return
	}

	c.JSON(http.StatusCreated, resdto.CreateNotificationResponse{ID: result.NotificationID.String()})
}

// @Summary List notifications
// @Description List the tenant's notifications newest first with the viewer's read status
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (default 50)"
// @Success 200 {array} resdto.NotificationResponse
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	limit := queries.DefaultLimit
	if v := c.Query("limit"); v != "" {
		if iv, err := strconv.Atoi(v); err == nil {
			limit = queries.ValidateLimit(iv)
		}
	}

	views, err := h.q.ListByTenant(c.Request.Context(), tenantID, userID, limit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list notifications", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": resdto.FromNotificationList(views)})
}

// @Summary Mark all notifications read
// @Description Add the viewer to the read set of every unread tenant notification
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.MarkAllReadResponse
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	count, err := h.cmds.MarkAllRead(c.Request.Context(), tenantID, userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Mark all read failed", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.MarkAllReadResponse{MarkedCount: count})
}

func isValidationErr(err error) bool {
	if infra.IsKind(err, infra.KindDBFailure) {
		return false
	}
	return errors.Is(err, errs.ErrTenantRequired) ||
		errors.Is(err, errs.ErrAuthorRequired) ||
		errors.Is(err, errs.ErrContentRequired) ||
		errors.Is(err, errs.ErrContentTooLong)
}
