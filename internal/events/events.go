// Package events publishes quote funnel events to the message broker.
package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dukerupert/maremansa/internal/quote"
)

const (
	EventQuoteRequested = "QuoteRequested"

	// DefaultQuoteSubject is the NATS subject for submitted quotes.
	DefaultQuoteSubject = "quotes.requested"
)

// QuoteRequested is emitted when a shopper is handed off to WhatsApp.
type QuoteRequested struct {
	Event          string                  `json:"event"`
	QuoteID        string                  `json:"quote_id"`
	ProductID      string                  `json:"product_id"`
	ProductNumber  string                  `json:"product_number"`
	ProductName    string                  `json:"product_name"`
	Texture        string                  `json:"texture"`
	Walls          []quote.Wall            `json:"walls"`
	Requirements   []quote.RollRequirement `json:"requirements"`
	TotalRolls     int                     `json:"total_rolls"`
	EstimatedPrice decimal.NullDecimal     `json:"estimated_price"`
	RequestedAt    time.Time               `json:"requested_at"`
}

// Publisher delivers quote events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	PublishQuoteRequested(ctx context.Context, e QuoteRequested) error
	Close() error
}

// Nop discards every event. Used when no broker is configured.
type Nop struct{}

func (Nop) PublishQuoteRequested(context.Context, QuoteRequested) error { return nil }

func (Nop) Close() error { return nil }
