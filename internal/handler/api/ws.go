package api

import (
	"log/slog"
	"net/http"

	"agency-notify/internal/handler/httperr"
	"agency-notify/internal/handler/middleware"
	"agency-notify/internal/pkg/config"
	"agency-notify/internal/push"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type PushHandler struct {
	hub      *push.Hub
	cfg      config.PushConfig
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

func NewPushHandler(hub *push.Hub, cfg config.Config, logger *slog.Logger) *PushHandler {
	return &PushHandler{
		hub:    hub,
		cfg:    cfg.Push,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(cfg.CORS.AllowOrigins),
		},
	}
}

// @Summary Push connection
// @Description Upgrade to a websocket and join the session tenant's broadcast group
// @Tags push
// @Security BearerAuth
// @Success 101 "Switching Protocols"
// @Failure 401 {object} map[string]string
// @Router /ws [get]
func (h *PushHandler) Serve(c *gin.Context) {
	// The group is keyed by the tenant from the verified session, so a client
	// cannot join another tenant's stream by naming it.
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the handshake error response.
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := push.NewClient(h.hub, conn, h.cfg, h.logger)
	h.hub.Join(client, tenantID.String())

	go client.WritePump()
	go client.ReadPump()
}

func originChecker(allowed []string) func(r *http.Request) bool {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		allowedSet[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := allowedSet[origin]
		return ok
	}
}
