package events

import (
	"context"
	"log/slog"
	"time"

	"agency-notify/internal/pkg/config"
	"agency-notify/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

// messageWriter is the slice of *kafka.Writer the publisher depends on.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher sends envelopes to the broker keyed by tenant. It accelerates
// delivery only; the store write that precedes it is the source of truth, so
// every failure here is logged and swallowed rather than surfaced.
type Publisher struct {
	writer  messageWriter
	timeout time.Duration
	logger  *slog.Logger
}

// NewWriter builds the broker producer. The hash balancer routes all messages
// sharing a key to one partition, which is what gives per-tenant ordering.
func NewWriter(cfg config.BrokerConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: cfg.PublishTimeout,
	}
}

func NewPublisher(writer messageWriter, cfg config.BrokerConfig, logger *slog.Logger) *Publisher {
	return &Publisher{
		writer:  writer,
		timeout: cfg.PublishTimeout,
		logger:  logger,
	}
}

// Publish is best-effort and bounded in time. The returned error is for
// observability at the call site; callers must not fail the triggering write
// on it.
func (p *Publisher) Publish(ctx context.Context, env Envelope) error {
	payload, err := env.Marshal()
	if err != nil {
		p.logger.Error("failed to encode notification envelope",
			slog.String("notification_id", env.ID.String()),
			slog.String("tenant_id", env.TenantID.String()),
			slog.String("error", err.Error()),
		)
		return errs.Wrap(err, "encode envelope")
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   env.PartitionKey(),
		Value: payload,
	})
	if err != nil {
		// Broker outages degrade the pipeline to "no live push"; clients
		// reconcile via direct query.
		p.logger.Error("failed to publish notification event",
			slog.String("notification_id", env.ID.String()),
			slog.String("tenant_id", env.TenantID.String()),
			slog.String("error", err.Error()),
		)
		return errs.Wrap(err, "publish envelope")
	}

	p.logger.Debug("published notification event",
		slog.String("notification_id", env.ID.String()),
		slog.String("tenant_id", env.TenantID.String()),
	)
	return nil
}

// Close flushes buffered messages and releases the producer connection.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
