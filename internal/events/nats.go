package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"medi-elevation/internal/edit"
)

// NATSPublisher publishes events as plain NATS messages.
type NATSPublisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

// NewNATSPublisher connects to url. The connection keeps retrying in the
// background, so a broker that is briefly down does not block startup.
func NewNATSPublisher(url string, logger *slog.Logger) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("medi-elevation"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &NATSPublisher{
		conn:   conn,
		logger: logger.With("component", "nats-publisher"),
	}, nil
}

func (p *NATSPublisher) PublishBatch(ctx context.Context, batch *edit.EditBatch, diagnostics []edit.Diagnostic) error {
	msgs, err := buildMessages(batch, diagnostics, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}

	for _, m := range msgs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.conn.Publish(m.subject, m.data); err != nil {
			return fmt.Errorf("publish %s: %w", m.subject, err)
		}
	}

	p.logger.Debug("published batch events", "messages", len(msgs))
	return nil
}

// Close drains and closes the connection.
func (p *NATSPublisher) Close() {
	_ = p.conn.Drain()
}

// New returns a NATS publisher when url is set and Noop otherwise. A broker
// that cannot be reached is logged and replaced by Noop.
func New(url string, logger *slog.Logger) Publisher {
	if url == "" {
		return Noop{}
	}
	p, err := NewNATSPublisher(url, logger)
	if err != nil {
		logger.Warn("nats unavailable, events disabled", "error", err)
		return Noop{}
	}
	return p
}
