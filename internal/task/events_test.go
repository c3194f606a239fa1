package task

import (
	"testing"

	"github.com/google/uuid"
)

func TestBusAssignsSequenceAndTimestamp(t *testing.T) {
	bus := NewBus(10)
	id := uuid.New()
	bus.Publish(Event{TaskID: id, Type: EventLog, Message: "one"})
	bus.Publish(Event{TaskID: id, Type: EventLog, Message: "two"})

	events := bus.Since(0)
	if len(events) != 2 {
		t.Fatalf("events = %d", len(events))
	}
	if events[0].Seq != 1 || events[1].Seq != 2 {
		t.Fatalf("sequences = %d, %d", events[0].Seq, events[1].Seq)
	}
	if events[0].Timestamp.IsZero() {
		t.Fatal("timestamp not assigned")
	}
}

func TestBusSinceIsIncremental(t *testing.T) {
	bus := NewBus(10)
	for i := 0; i < 5; i++ {
		bus.Publish(Event{Type: EventLog})
	}
	tail := bus.Since(3)
	if len(tail) != 2 || tail[0].Seq != 4 {
		t.Fatalf("tail = %+v", tail)
	}
	if bus.Since(5) != nil {
		t.Fatal("fully consumed bus should return nil")
	}
}

func TestBusDropsOldestBeyondCapacity(t *testing.T) {
	bus := NewBus(3)
	for i := 0; i < 5; i++ {
		bus.Publish(Event{Type: EventLog})
	}
	events := bus.Since(0)
	if len(events) != 3 {
		t.Fatalf("retained = %d", len(events))
	}
	if events[0].Seq != 3 || events[2].Seq != 5 {
		t.Fatalf("retained sequences = %d..%d", events[0].Seq, events[2].Seq)
	}
}

func TestCallbacksDispatchPerType(t *testing.T) {
	var gotStatus Status
	var gotPercent float64
	var gotLog string
	var gotReason string
	sink := Callbacks{
		OnStatus:   func(_ uuid.UUID, status Status) { gotStatus = status },
		OnProgress: func(_ uuid.UUID, percent float64, _ string) { gotPercent = percent },
		OnLog:      func(_ uuid.UUID, message string) { gotLog = message },
		OnDone:     func(_ uuid.UUID, _ *Result, reason string) { gotReason = reason },
	}

	sink.Publish(Event{Type: EventStatus, Status: StatusTranscribing})
	sink.Publish(Event{Type: EventProgress, Percent: 42})
	sink.Publish(Event{Type: EventLog, Message: "hello"})
	sink.Publish(Event{Type: EventCompletion, Reason: "cancelled"})

	if gotStatus != StatusTranscribing || gotPercent != 42 || gotLog != "hello" || gotReason != "cancelled" {
		t.Fatalf("dispatch results: %v %v %q %q", gotStatus, gotPercent, gotLog, gotReason)
	}
}

func TestCallbacksSkipNilHandlers(t *testing.T) {
	var sink Callbacks
	sink.Publish(Event{Type: EventStatus, Status: StatusCompleted})
	sink.Publish(Event{Type: EventCompletion})
}

func TestMultiSinkFansOut(t *testing.T) {
	var first, second int
	sinks := MultiSink{
		SinkFunc(func(Event) { first++ }),
		nil,
		SinkFunc(func(Event) { second++ }),
	}
	sinks.Publish(Event{Type: EventLog})
	if first != 1 || second != 1 {
		t.Fatalf("fanout counts = %d, %d", first, second)
	}
}
