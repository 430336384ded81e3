package components

import (
	"context"
	"log/slog"

	"agency-notify/internal/events"
	"agency-notify/internal/infra/repository"
	"agency-notify/internal/pkg/clock"
	"agency-notify/internal/pkg/config"
	"agency-notify/internal/push"
	"agency-notify/internal/usecase/commands"
	"agency-notify/internal/worker"

	"github.com/segmentio/kafka-go"
	"go.uber.org/fx"
)

// PipelineModule wires the asynchronous half of the system: the publisher on
// the write path, and the bridge plus reaper as process-lifetime tasks
// independent of request handling.
var PipelineModule = fx.Module("pipeline",
	fx.Provide(
		push.NewHub,

		func(writer *kafka.Writer, cfg config.Config, logger *slog.Logger) *events.Publisher {
			return events.NewPublisher(writer, cfg.Broker, logger)
		},
		fx.Annotate(
			func(p *events.Publisher) *events.Publisher { return p },
			fx.As(new(commands.EventPublisher)),
		),

		func(reader *kafka.Reader, hub *push.Hub, logger *slog.Logger) *events.Bridge {
			return events.NewBridge(reader, hub, logger)
		},

		fx.Annotate(
			repository.NewNotificationRepository,
			fx.As(new(worker.ExpiredDeleter)),
		),
		func(repo worker.ExpiredDeleter, clk clock.Clock, cfg config.Config, logger *slog.Logger) *worker.Reaper {
			return worker.NewReaper(repo, clk, cfg.Reaper.Interval, logger)
		},
	),
	fx.Invoke(
		startBridge,
		startReaper,
	),
)

func startBridge(lc fx.Lifecycle, bridge *events.Bridge, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				if err := bridge.Run(ctx); err != nil {
					logger.Error("notification bridge exited", slog.String("error", err.Error()))
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return bridge.Close()
		},
	})
}

func startReaper(lc fx.Lifecycle, reaper *worker.Reaper) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go reaper.Run(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
}
