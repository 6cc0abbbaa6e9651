package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()
	m.RecordIntent("faq")
	m.RecordIntent("faq")
	m.RecordIntent("book")
	m.RecordAppointment("book", "conflict")
	m.RecordRequest("/api/tickets", "GET", 200, 5*time.Millisecond)

	if got := testutil.ToFloat64(m.intents.WithLabelValues("faq")); got != 2 {
		t.Errorf("faq intents = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.appointments.WithLabelValues("book", "conflict")); got != 1 {
		t.Errorf("conflicts = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/tickets", "200")); got != 1 {
		t.Errorf("requests = %v, want 1", got)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordIntent("faq")
	m.RecordError("/", "GET", "X")
	m.RecordTicket("created", "chat")
}
