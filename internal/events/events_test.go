package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func TestDispatcherRunsAllHandlersAndJoinsErrors(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls int
	boom := errors.New("boom")
	d.Subscribe(EventTicketCreated, func(context.Context, Event) error { calls++; return boom })
	d.Subscribe(EventTicketCreated, func(context.Context, Event) error { calls++; return nil })
	d.Subscribe(EventAppointmentBooked, func(context.Context, Event) error { calls += 100; return nil })

	err := d.Publish(context.Background(), Event{Type: EventTicketCreated})
	if !errors.Is(err, boom) {
		t.Errorf("Publish err = %v, want boom", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

type recordingWriter struct {
	msgs   []kafka.Message
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaExporterWritesKeyedMessages(t *testing.T) {
	w := &recordingWriter{}
	exporter := NewKafkaExporterWithWriter(w, zap.NewNop())
	d := NewInMemoryDispatcher()
	exporter.Register(d)

	event := Event{ID: "e1", Type: EventAppointmentCancelled, VisitorID: "v1", RecordID: 3}
	if err := d.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(w.msgs) != 1 {
		t.Fatalf("messages = %d, want 1", len(w.msgs))
	}
	if string(w.msgs[0].Key) != "v1" {
		t.Errorf("key = %q", w.msgs[0].Key)
	}
	var decoded Event
	if err := json.Unmarshal(w.msgs[0].Value, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Type != EventAppointmentCancelled || decoded.RecordID != 3 {
		t.Errorf("decoded = %+v", decoded)
	}

	if err := exporter.Close(); err != nil || !w.closed {
		t.Errorf("Close: err=%v closed=%v", err, w.closed)
	}
}
