package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/dukerupert/maremansa/internal/telemetry"
)

// Conn is the subset of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

// NATSPublisher publishes JSON events on a NATS subject.
type NATSPublisher struct {
	conn    Conn
	subject string
	logger  *slog.Logger
	metrics *telemetry.BusinessMetrics
}

// Compile-time check that NATSPublisher implements Publisher.
var _ Publisher = (*NATSPublisher)(nil)

// NewNATSPublisher wraps an established connection.
func NewNATSPublisher(conn Conn, subject string, logger *slog.Logger, metrics *telemetry.BusinessMetrics) *NATSPublisher {
	if subject == "" {
		subject = DefaultQuoteSubject
	}
	return &NATSPublisher{
		conn:    conn,
		subject: subject,
		logger:  logger,
		metrics: metrics,
	}
}

// Connect dials the broker with reconnect logging.
func Connect(url string, logger *slog.Logger) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("maremansa-storefront"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats at %s: %w", url, err)
	}
	return nc, nil
}

// PublishQuoteRequested marshals e and publishes it. The event name and
// timestamp are filled when empty.
func (p *NATSPublisher) PublishQuoteRequested(ctx context.Context, e QuoteRequested) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.Event == "" {
		e.Event = EventQuoteRequested
	}
	if e.RequestedAt.IsZero() {
		e.RequestedAt = time.Now().UTC()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", e.Event, err)
	}

	if err := p.conn.Publish(p.subject, data); err != nil {
		p.metrics.RecordEventPublished(p.subject, false)
		return fmt.Errorf("publish %s on %s: %w", e.Event, p.subject, err)
	}

	p.metrics.RecordEventPublished(p.subject, true)
	p.logger.Debug("event published", "event", e.Event, "subject", p.subject, "quote_id", e.QuoteID)
	return nil
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}
