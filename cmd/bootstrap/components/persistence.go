package components

import (
	"agency-notify/internal/infra/db"
	"agency-notify/internal/infra/readstore"
	"agency-notify/internal/infra/repository"
	"agency-notify/internal/usecase/commands"
	"agency-notify/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		func(pool *pgxpool.Pool) db.DBTX { return pool },

		// Notification
		fx.Annotate(
			repository.NewNotificationRepository,
			fx.As(new(commands.NotificationRepository)),
		),
		fx.Annotate(
			readstore.NewNotificationReadStore,
			fx.As(new(queries.NotificationReadStore)),
		),

		// Author display name
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(commands.AuthorReadStore)),
		),
	),
)
