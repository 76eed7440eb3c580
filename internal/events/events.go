// Package events publishes review decisions to NATS so other services (mail,
// payroll) can react without polling the backend.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Event kinds, appended to the configured subject prefix.
const (
	KindLogVerified    = "log.verified"
	KindLamaranDecided = "lamaran.decided"
)

// Decision is the payload of every review event.
type Decision struct {
	Kind      string    `json:"kind"`
	EntityID  string    `json:"entityId"`
	Status    string    `json:"status"`
	ActorID   string    `json:"actorId"`
	SubjectID string    `json:"mahasiswaId,omitempty"`
	At        time.Time `json:"at"`
}

// Publisher emits events.
type Publisher interface {
	Publish(ctx context.Context, event Decision) error
}

// Connect dials NATS with reconnects enabled.
func Connect(url string, logger zerolog.Logger) (*nats.Conn, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("nats url must not be empty")
	}

	conn, err := nats.Connect(url,
		nats.Name("asdos-web"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn().Err(err).Msg("nats disconnected")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info().Str("url", c.ConnectedUrl()).Msg("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	return conn, nil
}

// NATSPublisher publishes events as JSON on <prefix>.<kind>.
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
	logger zerolog.Logger
}

// NewNATSPublisher builds a publisher. A nil conn makes Publish a no-op.
func NewNATSPublisher(conn *nats.Conn, prefix string, logger zerolog.Logger) *NATSPublisher {
	prefix = strings.Trim(strings.ReplaceAll(prefix, ":", "."), ".")
	if prefix == "" {
		prefix = "asdos"
	}
	return &NATSPublisher{
		conn:   conn,
		prefix: prefix,
		logger: logger.With().Str("component", "event_publisher").Logger(),
	}
}

// Subject returns the subject an event kind is published on.
func (p *NATSPublisher) Subject(kind string) string {
	return p.prefix + "." + kind
}

// Publish sends event. The context is unused by the NATS client, which
// buffers the message and flushes it asynchronously.
func (p *NATSPublisher) Publish(_ context.Context, event Decision) error {
	if p == nil || p.conn == nil {
		return nil
	}
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event.Kind, err)
	}

	if err := p.conn.Publish(p.Subject(event.Kind), payload); err != nil {
		return fmt.Errorf("publish %s event: %w", event.Kind, err)
	}

	p.logger.Debug().Str("subject", p.Subject(event.Kind)).Str("entity_id", event.EntityID).Msg("event published")
	return nil
}

// Nop discards events.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, Decision) error { return nil }
