package bootstrap

import (
	"context"

	"agency-notify/internal/events"
	"agency-notify/internal/pkg/config"

	"github.com/segmentio/kafka-go"
	"go.uber.org/fx"
)

// BrokerModule constructs the broker clients explicitly and ties their
// teardown to the application lifecycle: the writer flushes buffered messages
// on Close, the reader commits its final offsets. No implicit singletons.
var BrokerModule = fx.Module("broker",
	fx.Provide(
		NewBrokerWriter,
		NewBrokerReader,
	),
)

func NewBrokerWriter(lc fx.Lifecycle, cfg config.Config) *kafka.Writer {
	writer := events.NewWriter(cfg.Broker)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return writer.Close()
		},
	})

	return writer
}

func NewBrokerReader(cfg config.Config) *kafka.Reader {
	// Closed by the bridge, which owns the subscription.
	return events.NewReader(cfg.Broker)
}
