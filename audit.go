package actiongate

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"
)

// Audit event types and severities. Misconfiguration is an operator bug and
// logs at error severity; an insufficient-permission denial is an expected
// security outcome and logs at info severity. Allowed requests are counted
// in metrics but not audited.
const (
	EventConfigurationError = "configuration_error"
	EventAccessDenied       = "access_denied"

	SeverityError = "error"
	SeverityInfo  = "info"
)

// AnonymousIdentity is reported when a request carries no identity.
const AnonymousIdentity = "anonymous"

// AuditEvent is one structured denial record.
type AuditEvent struct {
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	EventType string    `json:"event_type"`
	Severity  string    `json:"severity"`
	Namespace string    `json:"namespace,omitempty"`
	Action    string    `json:"action"`
	Method    string    `json:"method,omitempty"`
	Identity  string    `json:"identity,omitempty"`
	Required  []string  `json:"required,omitempty"`
	Granted   []string  `json:"granted,omitempty"`
	Reason    string    `json:"reason,omitempty"`
}

// AuditSink receives audit events from the engine's dispatcher. Emit runs
// on the dispatcher goroutine, never on the evaluating request.
type AuditSink interface {
	Emit(ctx context.Context, event AuditEvent)
}

// NoOpSink discards all events.
type NoOpSink struct{}

// Emit discards the event.
func (NoOpSink) Emit(context.Context, AuditEvent) {}

// ChannelSink forwards events to a buffered channel for the host to drain.
type ChannelSink struct {
	events chan AuditEvent
}

// NewChannelSink creates a ChannelSink with the given buffer.
func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		events: make(chan AuditEvent, buffer),
	}
}

// Emit forwards the event, honoring ctx cancellation.
func (s *ChannelSink) Emit(ctx context.Context, event AuditEvent) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

// Events returns the receive side of the sink.
func (s *ChannelSink) Events() <-chan AuditEvent {
	return s.events
}

// JSONWriterSink writes one JSON line per event, suitable for feeding a
// structured log pipeline.
type JSONWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONWriterSink creates a JSONWriterSink over w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{
		writer: w,
	}
}

// Emit marshals and writes the event. Marshal or write failures are
// dropped; audit must never fail a request.
func (s *JSONWriterSink) Emit(ctx context.Context, event AuditEvent) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write(data)
	_, _ = s.writer.Write([]byte("\n"))
}
