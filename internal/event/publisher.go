package event

import (
	"log/slog"
	"sync"
)

// Publisher delivers events. Implementations must not call back into the
// simulation: the core only publishes, it never subscribes to itself.
type Publisher interface {
	Publish(ev Event)
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ev Event)

// Publish calls f(ev).
func (f PublisherFunc) Publish(ev Event) { f(ev) }

// Nop discards events.
type Nop struct{}

// Publish does nothing.
func (Nop) Publish(Event) {}

// Multi fans an event out to several publishers in order.
type Multi []Publisher

// Publish forwards ev to every non-nil publisher.
func (m Multi) Publish(ev Event) {
	for _, p := range m {
		if p != nil {
			p.Publish(ev)
		}
	}
}

// LogPublisher mirrors events into slog at debug level.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates LogPublisher. nil logger uses slog.Default().
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

// Publish logs the event type and payload.
func (p *LogPublisher) Publish(ev Event) {
	p.logger.Debug("event published", "type", ev.Type(), "payload", ev)
}

// Recorder keeps every published event in memory.
// Used by tests and debug tooling.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Publish appends ev.
func (r *Recorder) Publish(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a copy of all recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// OfType returns recorded events of type t.
func (r *Recorder) OfType(t Type) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, ev := range r.events {
		if ev.Type() == t {
			out = append(out, ev)
		}
	}
	return out
}

// Count returns number of recorded events of type t.
func (r *Recorder) Count(t Type) int {
	return len(r.OfType(t))
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
