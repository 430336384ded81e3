package components

import (
	"agency-notify/internal/handler"
	"agency-notify/internal/handler/api"
	"agency-notify/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		middleware.NewAuthMiddleware,

		api.NewNotificationHandler,
		api.NewPushHandler,
	),
	fx.Invoke(handler.NewRouter),
)
