package events

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"agency-notify/internal/pkg/config"

	"github.com/segmentio/kafka-go"
)

// messageSource is the slice of *kafka.Reader the bridge depends on.
type messageSource interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Broadcaster fans a payload out to the tenant's live push connections.
type Broadcaster interface {
	Broadcast(tenantID string, payload []byte)
}

// Bridge is the process-lifetime consumer between the broker and the push
// layer. Offsets are committed only after the envelope has been handed to the
// broadcaster, so a crash re-delivers rather than drops; duplicates are
// harmless because broadcast is fire-and-forget display data.
type Bridge struct {
	source messageSource
	hub    Broadcaster
	logger *slog.Logger
}

// NewReader builds the broker consumer. The group id gives committed offsets,
// so a restarted bridge resumes from the last committed position.
func NewReader(cfg config.BrokerConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
		GroupID: cfg.GroupID,
	})
}

func NewBridge(source messageSource, hub Broadcaster, logger *slog.Logger) *Bridge {
	return &Bridge{
		source: source,
		hub:    hub,
		logger: logger,
	}
}

// Run consumes until the context is cancelled. It returns nil on cancellation
// and the fetch error otherwise.
func (b *Bridge) Run(ctx context.Context) error {
	b.logger.Info("notification bridge started")

	for {
		msg, err := b.source.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				b.logger.Info("notification bridge stopped")
				return nil
			}
			b.logger.Error("failed to fetch broker message", slog.String("error", err.Error()))
			return err
		}

		env, err := UnmarshalEnvelope(msg.Value)
		if err != nil {
			// A poison message must not wedge the subscription: log, commit, move on.
			b.logger.Error("skipping malformed notification event",
				slog.String("key", string(msg.Key)),
				slog.Int64("offset", msg.Offset),
				slog.String("error", err.Error()),
			)
			b.commit(ctx, msg)
			continue
		}

		// Empty groups make this a no-op; catch-up happens via direct query.
		b.hub.Broadcast(env.TenantID.String(), msg.Value)

		b.commit(ctx, msg)
	}
}

func (b *Bridge) commit(ctx context.Context, msg kafka.Message) {
	if err := b.source.CommitMessages(ctx, msg); err != nil {
		// At-least-once: a failed commit means redelivery, never loss.
		b.logger.Warn("failed to commit broker offset",
			slog.Int64("offset", msg.Offset),
			slog.String("error", err.Error()),
		)
	}
}

func (b *Bridge) Close() error {
	return b.source.Close()
}
