// Package events publishes change notifications for stored records.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Action is the kind of change
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event describes one successful write
type Event struct {
	Entity string    `json:"entity"`
	Action Action    `json:"action"`
	ID     string    `json:"id"`
	At     time.Time `json:"at"`
}

// Publisher delivers change events. Implementations never block writes on
// delivery failures; they log them instead.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

// Nop discards every event
type Nop struct{}

// Publish implements Publisher
func (Nop) Publish(context.Context, Event) {}

// Conn is the part of *nats.Conn used for publishing
type Conn interface {
	Publish(subject string, data []byte) error
}

// NATSPublisher publishes events as JSON to "<prefix>.<entity>.<action>"
type NATSPublisher struct {
	conn   Conn
	prefix string
	logger zerolog.Logger
}

// NewNATSPublisher creates a publisher on an established connection
func NewNATSPublisher(conn Conn, prefix string, logger zerolog.Logger) *NATSPublisher {
	return &NATSPublisher{
		conn:   conn,
		prefix: prefix,
		logger: logger.With().Str("component", "events").Logger(),
	}
}

// Subject returns the subject an event is published on
func (p *NATSPublisher) Subject(e Event) string {
	return fmt.Sprintf("%s.%s.%s", p.prefix, e.Entity, e.Action)
}

// Publish implements Publisher
func (p *NATSPublisher) Publish(_ context.Context, e Event) {
	data, err := json.Marshal(e)
	if err != nil {
		p.logger.Error().Err(err).Str("entity", e.Entity).Msg("Failed to encode event")
		return
	}

	subject := p.Subject(e)
	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.Warn().Err(err).Str("subject", subject).Msg("Failed to publish event")
		return
	}
	p.logger.Debug().Str("subject", subject).Str("id", e.ID).Msg("Event published")
}

// Connect opens a NATS connection
func Connect(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url, nats.Name("escolar-api"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}
	return nc, nil
}
