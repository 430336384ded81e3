package components

import (
	"agency-notify/internal/pkg/clock"
	"agency-notify/internal/usecase"
	"agency-notify/internal/usecase/commands"
	"agency-notify/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,

		commands.NewNotificationUseCase,
		queries.NewNotificationQueries,

		usecase.NewTokenValidator,
	),
)
