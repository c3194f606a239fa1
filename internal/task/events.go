package task

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType tags the payload carried by an Event.
type EventType string

const (
	// EventStatus announces a lifecycle transition; Status is set.
	EventStatus EventType = "status"
	// EventProgress reports percent and a human message; Percent and
	// Message are set.
	EventProgress EventType = "progress"
	// EventLog carries an informational message; Message is set.
	EventLog EventType = "log"
	// EventCompletion is the final event of a task. Result is set on
	// success; Reason is set when the task failed or was cancelled.
	EventCompletion EventType = "completion"
)

// Event is one notification from a running task. Exactly the fields implied
// by Type are populated; consumers switch on Type rather than probing fields.
type Event struct {
	Seq       int64
	Timestamp time.Time
	TaskID    uuid.UUID
	Type      EventType

	Status  Status
	Percent float64
	Message string
	Result  *Result
	Reason  string
}

// Sink consumes task events. Publish must not block for long; the
// orchestrator calls it inline from the pipeline goroutine.
type Sink interface {
	Publish(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

func (f SinkFunc) Publish(event Event) { f(event) }

// Callbacks fans events out to per-type functions. Nil fields are skipped.
type Callbacks struct {
	OnStatus   func(taskID uuid.UUID, status Status)
	OnProgress func(taskID uuid.UUID, percent float64, message string)
	OnLog      func(taskID uuid.UUID, message string)
	OnDone     func(taskID uuid.UUID, result *Result, reason string)
}

func (c Callbacks) Publish(event Event) {
	switch event.Type {
	case EventStatus:
		if c.OnStatus != nil {
			c.OnStatus(event.TaskID, event.Status)
		}
	case EventProgress:
		if c.OnProgress != nil {
			c.OnProgress(event.TaskID, event.Percent, event.Message)
		}
	case EventLog:
		if c.OnLog != nil {
			c.OnLog(event.TaskID, event.Message)
		}
	case EventCompletion:
		if c.OnDone != nil {
			c.OnDone(event.TaskID, event.Result, event.Reason)
		}
	}
}

// MultiSink publishes each event to every sink in order.
type MultiSink []Sink

func (m MultiSink) Publish(event Event) {
	for _, sink := range m {
		if sink != nil {
			sink.Publish(event)
		}
	}
}

// Bus is a bounded in-memory event buffer with incremental reads. Consumers
// poll Since with their last seen sequence number.
type Bus struct {
	mu        sync.RWMutex
	nextSeq   int64
	maxEvents int
	events    []Event
}

// NewBus creates a bus that retains at most maxEvents entries.
func NewBus(maxEvents int) *Bus {
	if maxEvents <= 0 {
		maxEvents = 500
	}
	return &Bus{
		maxEvents: maxEvents,
		events:    make([]Event, 0, maxEvents),
	}
}

// Publish appends one event, assigning its sequence number and timestamp.
func (b *Bus) Publish(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextSeq++
	event.Seq = b.nextSeq
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	b.events = append(b.events, event)
	if len(b.events) > b.maxEvents {
		trim := len(b.events) - b.maxEvents
		b.events = append([]Event(nil), b.events[trim:]...)
	}
}

// Since returns events with sequence strictly greater than seq.
func (b *Bus) Since(seq int64) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if len(b.events) == 0 {
		return nil
	}
	out := make([]Event, 0, len(b.events))
	for _, event := range b.events {
		if event.Seq > seq {
			out = append(out, event)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
