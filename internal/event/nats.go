package event

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// Envelope wraps a payload on the wire.
type Envelope struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"ts"`
	Source    string          `json:"source"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
}

// Conn is the subset of *nats.Conn used by NATSPublisher.
type Conn interface {
	Publish(subj string, data []byte) error
	FlushTimeout(timeout time.Duration) error
	Drain() error
}

// NATSPublisher forwards events to NATS subjects "<prefix>.<type>".
// Publish errors are logged and never reach the simulation.
type NATSPublisher struct {
	conn         Conn
	prefix       string
	source       string
	flushTimeout time.Duration
	now          func() time.Time
}

// NewNATSPublisher wraps an existing connection.
func NewNATSPublisher(conn Conn, prefix, source string, flushTimeout time.Duration) *NATSPublisher {
	return &NATSPublisher{
		conn:         conn,
		prefix:       prefix,
		source:       source,
		flushTimeout: flushTimeout,
		now:          time.Now,
	}
}

// DialNATS connects to url and returns a publisher bound to it.
func DialNATS(url, prefix, source string, flushTimeout time.Duration) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name(source),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats %s: %w", url, err)
	}
	return NewNATSPublisher(nc, prefix, source, flushTimeout), nil
}

// Subject returns the subject an event type is published on.
func (p *NATSPublisher) Subject(t Type) string {
	if p.prefix == "" {
		return t.String()
	}
	return p.prefix + "." + t.String()
}

// Publish encodes ev into an Envelope and sends it.
func (p *NATSPublisher) Publish(ev Event) {
	data, err := p.encode(ev)
	if err != nil {
		slog.Error("encoding event", "type", ev.Type(), "error", err)
		return
	}
	if err := p.conn.Publish(p.Subject(ev.Type()), data); err != nil {
		slog.Warn("publishing event to nats", "type", ev.Type(), "error", err)
	}
}

// Close flushes pending messages and drains the connection.
func (p *NATSPublisher) Close() error {
	if p.flushTimeout > 0 {
		if err := p.conn.FlushTimeout(p.flushTimeout); err != nil {
			slog.Warn("flushing nats", "error", err)
		}
	}
	if err := p.conn.Drain(); err != nil {
		return fmt.Errorf("draining nats: %w", err)
	}
	return nil
}

func (p *NATSPublisher) encode(ev Event) ([]byte, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("marshaling payload: %w", err)
	}
	env := Envelope{
		ID:        uuid.NewString(),
		Timestamp: p.now().UTC(),
		Source:    p.source,
		Type:      ev.Type().String(),
		Payload:   payload,
	}
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshaling envelope: %w", err)
	}
	return data, nil
}
