package http

import (
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/config"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/observability"
	"github.com/spec-kit/support-desk/internal/service"
	"github.com/spec-kit/support-desk/internal/store"
)

const (
	visitorA = "0b7c4e9e-3c1e-4d55-9f43-6a0e1f5a2b11"
	visitorB = "5d2f8a10-7b6c-4e0a-8d9e-2c3b4a5f6e70"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	stores := store.New(store.NewMemoryBackend())
	deps := service.Dependencies{
		Stores:     stores,
		Dispatcher: events.NewInMemoryDispatcher(),
		Metrics:    observability.NewMetrics(),
		Validator:  service.NewFormValidator(),
		Logger:     zap.NewNop(),
	}
	tickets := service.NewTicketService(deps)
	appointments := service.NewAppointmentService(deps)
	return NewApp(AppDependencies{
		Config: &config.Config{
			App:     config.AppConfig{Name: "support-desk", Version: "test"},
			Session: config.SessionConfig{CookieName: "sd_visitor", MaxAgeDays: 1},
		},
		Logger:       zap.NewNop(),
		Metrics:      deps.Metrics,
		Store:        stores,
		Chat:         service.NewChatService(deps, tickets, appointments),
		Tickets:      tickets,
		Appointments: appointments,
	})
}

func doRequest(t *testing.T, app *fiber.App, req *nethttp.Request, visitor string) *nethttp.Response {
	t.Helper()
	if visitor != "" {
		req.Header.Set(VisitorHeader, visitor)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	return resp
}

func postForm(t *testing.T, app *fiber.App, path string, form url.Values, visitor string) *nethttp.Response {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return doRequest(t, app, req, visitor)
}

func sendJSON(t *testing.T, app *fiber.App, method, path, body, visitor string) *nethttp.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return doRequest(t, app, req, visitor)
}

func decode[T any](t *testing.T, resp *nethttp.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return out
}

type ticketList struct {
	Data []struct {
		ID       int    `json:"id"`
		Subject  string `json:"subject"`
		Category string `json:"category"`
		Priority string `json:"priority"`
		Name     string `json:"name"`
		Status   string `json:"status"`
	} `json:"data"`
}

type errorBody struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func TestTicketFormSubmitRedirectsToMyTickets(t *testing.T) {
	app := newTestApp(t)

	resp := postForm(t, app, "/tickets", url.Values{
		"subject":  {"Printer broken"},
		"category": {"Technical"},
		"priority": {"High"},
		"name":     {""},
	}, visitorA)
	if resp.StatusCode != fiber.StatusSeeOther {
		t.Fatalf("status = %d, want 303", resp.StatusCode)
	}
	if loc := resp.Header.Get(fiber.HeaderLocation); loc != "/?tab=my-tickets" {
		t.Errorf("location = %q", loc)
	}

	list := decode[ticketList](t, sendJSON(t, app, nethttp.MethodGet, "/api/tickets", "", visitorA))
	if len(list.Data) != 1 {
		t.Fatalf("tickets = %d, want 1", len(list.Data))
	}
	got := list.Data[0]
	if got.ID != 1 || got.Subject != "Printer broken" || got.Category != "Technical" ||
		got.Priority != "High" || got.Name != "Guest" || got.Status != "In Progress" {
		t.Errorf("unexpected ticket %+v", got)
	}
}

func TestTicketFormMissingSubjectStaysOnForm(t *testing.T) {
	app := newTestApp(t)

	resp := postForm(t, app, "/tickets", url.Values{"subject": {"  "}, "category": {"General"}}, visitorA)
	if resp.StatusCode != fiber.StatusSeeOther {
		t.Fatalf("status = %d, want 303", resp.StatusCode)
	}
	if loc := resp.Header.Get(fiber.HeaderLocation); loc != "/?tab=new-ticket" {
		t.Errorf("location = %q", loc)
	}

	list := decode[ticketList](t, sendJSON(t, app, nethttp.MethodGet, "/api/tickets", "", visitorA))
	if len(list.Data) != 0 {
		t.Errorf("tickets = %d, want 0", len(list.Data))
	}
}

func TestAppointmentSlotConflict(t *testing.T) {
	app := newTestApp(t)
	body := `{"type":"career","slot":"2025-11-01T10:00","name":"Ana"}`

	resp := sendJSON(t, app, nethttp.MethodPost, "/api/appointments", body, visitorA)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("first booking status = %d", resp.StatusCode)
	}

	resp = sendJSON(t, app, nethttp.MethodPost, "/api/appointments", body, visitorA)
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("second booking status = %d, want 409", resp.StatusCode)
	}
	errResp := decode[errorBody](t, resp)
	if errResp.Error.Code != "SLOT_CONFLICT" || errResp.Error.Message != "That slot is already booked." {
		t.Errorf("unexpected error %+v", errResp.Error)
	}

	list := decode[struct {
		Data []map[string]any `json:"data"`
	}](t, sendJSON(t, app, nethttp.MethodGet, "/api/appointments", "", visitorA))
	if len(list.Data) != 1 {
		t.Errorf("appointments = %d, want 1", len(list.Data))
	}
}

func TestAppointmentCancel(t *testing.T) {
	app := newTestApp(t)
	sendJSON(t, app, nethttp.MethodPost, "/api/appointments", `{"type":"mental","slot":"2025-10-12T15:00"}`, visitorA)

	resp := sendJSON(t, app, nethttp.MethodDelete, "/api/appointments/1", "", visitorA)
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("cancel status = %d, want 204", resp.StatusCode)
	}

	resp = sendJSON(t, app, nethttp.MethodDelete, "/api/appointments/1", "", visitorA)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("second cancel status = %d, want 404", resp.StatusCode)
	}

	resp = postForm(t, app, "/appointments/1/cancel", url.Values{}, visitorA)
	if resp.StatusCode != fiber.StatusSeeOther {
		t.Errorf("form cancel of missing id status = %d, want 303", resp.StatusCode)
	}
}

func TestTicketToggleOverAPI(t *testing.T) {
	app := newTestApp(t)
	sendJSON(t, app, nethttp.MethodPost, "/api/tickets", `{"subject":"Login fails","category":"General","priority":"Low"}`, visitorA)

	resp := sendJSON(t, app, nethttp.MethodPost, "/api/tickets/1/toggle", "", visitorA)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("toggle status = %d", resp.StatusCode)
	}
	toggled := decode[struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}](t, resp)
	if toggled.Data.Status != "Resolved" {
		t.Errorf("status = %q, want Resolved", toggled.Data.Status)
	}

	resp = sendJSON(t, app, nethttp.MethodPost, "/api/tickets/9/toggle", "", visitorA)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("missing toggle status = %d, want 404", resp.StatusCode)
	}
	resp = sendJSON(t, app, nethttp.MethodPost, "/api/tickets/abc/toggle", "", visitorA)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", resp.StatusCode)
	}
}

func TestVisitorsAreIsolated(t *testing.T) {
	app := newTestApp(t)
	sendJSON(t, app, nethttp.MethodPost, "/api/tickets", `{"subject":"Mine","category":"Billing","priority":"Medium"}`, visitorA)

	list := decode[ticketList](t, sendJSON(t, app, nethttp.MethodGet, "/api/tickets", "", visitorB))
	if len(list.Data) != 0 {
		t.Errorf("visitor B sees %d tickets", len(list.Data))
	}
}

func TestChatAPI(t *testing.T) {
	app := newTestApp(t)

	type transcript struct {
		Data []struct {
			Text   string `json:"text"`
			Sender string `json:"sender"`
		} `json:"data"`
	}

	initial := decode[transcript](t, sendJSON(t, app, nethttp.MethodGet, "/api/chat", "", visitorA))
	if len(initial.Data) != 1 || initial.Data[0].Sender != "bot" {
		t.Fatalf("initial transcript = %+v", initial.Data)
	}

	resp := sendJSON(t, app, nethttp.MethodPost, "/api/chat", `{"text":"agent"}`, visitorA)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("chat status = %d", resp.StatusCode)
	}
	after := decode[transcript](t, resp)
	if len(after.Data) != 3 {
		t.Fatalf("transcript length = %d, want 3", len(after.Data))
	}
	if last := after.Data[2]; last.Sender != "bot" || last.Text != "Ticket 1 opened. Our team will contact you." {
		t.Errorf("reply = %+v", last)
	}

	list := decode[ticketList](t, sendJSON(t, app, nethttp.MethodGet, "/api/tickets", "", visitorA))
	if len(list.Data) != 1 || list.Data[0].Subject != "Assistance requested via chatbot" {
		t.Errorf("chat ticket = %+v", list.Data)
	}
}

func TestIndexRendersSelectedPane(t *testing.T) {
	app := newTestApp(t)
	postForm(t, app, "/tickets", url.Values{"subject": {"Printer broken"}, "category": {"Technical"}, "priority": {"High"}}, visitorA)

	resp := sendJSON(t, app, nethttp.MethodGet, "/?tab=my-tickets", "", visitorA)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	page := string(body)
	if !strings.Contains(page, `id="tab-my-tickets" class="tab-pane active"`) {
		t.Error("my-tickets pane is not active")
	}
	if strings.Contains(page, `id="tab-assistant" class="tab-pane active"`) {
		t.Error("assistant pane is still active")
	}
	if !strings.Contains(page, "Printer broken") {
		t.Error("ticket missing from page")
	}
}

func TestIssuesVisitorCookie(t *testing.T) {
	app := newTestApp(t)

	resp := sendJSON(t, app, nethttp.MethodGet, "/api/tickets", "", "")
	var found bool
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "sd_visitor" && validVisitorID(cookie.Value) {
			found = true
		}
	}
	if !found {
		t.Error("expected a visitor cookie to be issued")
	}
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/health/live", "/health/ready", "/metrics"} {
		resp := sendJSON(t, app, nethttp.MethodGet, path, "", visitorA)
		if resp.StatusCode != fiber.StatusOK {
			t.Errorf("%s status = %d", path, resp.StatusCode)
		}
	}

	resp := sendJSON(t, app, nethttp.MethodGet, "/nope", "", visitorA)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("unknown route status = %d", resp.StatusCode)
	}
}

func TestMetricsRecordRenderedErrorStatus(t *testing.T) {
	app := newTestApp(t)

	resp := sendJSON(t, app, nethttp.MethodPost, "/api/tickets/99/toggle", "", visitorA)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("toggle status = %d, want 404", resp.StatusCode)
	}
	// later requests reuse fasthttp buffers; recorded labels must not change
	sendJSON(t, app, nethttp.MethodGet, "/api/tickets", "", visitorA)
	sendJSON(t, app, nethttp.MethodGet, "/health/live", "", visitorA)

	resp = sendJSON(t, app, nethttp.MethodGet, "/metrics", "", visitorA)
	body, _ := io.ReadAll(resp.Body)
	scrape := string(body)

	for _, want := range []string{
		`support_desk_http_requests_total{method="POST",path="/api/tickets/:id/toggle",status="404"} 1`,
		`support_desk_http_errors_total{code="NOT_FOUND",method="POST",path="/api/tickets/:id/toggle"} 1`,
		`support_desk_http_requests_total{method="GET",path="/api/tickets",status="200"} 1`,
	} {
		if !strings.Contains(scrape, want) {
			t.Errorf("metrics missing %s", want)
		}
	}
	if strings.Contains(scrape, `path="/api/tickets/:id/toggle",status="200"`) {
		t.Error("failed toggle counted as 200")
	}
}

func flashCookieFrom(t *testing.T, resp *nethttp.Response) *nethttp.Cookie {
	t.Helper()
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "sd_toast" {
			return cookie
		}
	}
	t.Fatal("no sd_toast cookie on response")
	return nil
}

func renderWithFlash(t *testing.T, app *fiber.App, path string, flash *nethttp.Cookie) (string, *nethttp.Response) {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodGet, path, nil)
	req.AddCookie(&nethttp.Cookie{Name: flash.Name, Value: flash.Value})
	resp := doRequest(t, app, req, visitorA)
	body, _ := io.ReadAll(resp.Body)
	return string(body), resp
}

func TestBookingFormConflictShowsToast(t *testing.T) {
	app := newTestApp(t)
	form := url.Values{"type": {"career"}, "slot": {"2025-11-01T10:00"}, "name": {"Ana"}}

	first := postForm(t, app, "/appointments", form, visitorA)
	if first.StatusCode != fiber.StatusSeeOther {
		t.Fatalf("first booking status = %d", first.StatusCode)
	}
	page, _ := renderWithFlash(t, app, "/?tab=my-tickets", flashCookieFrom(t, first))
	if !strings.Contains(page, "Appointment booked.") {
		t.Error("success toast missing after booking")
	}

	second := postForm(t, app, "/appointments", form, visitorA)
	if loc := second.Header.Get(fiber.HeaderLocation); loc != "/?tab=my-tickets" {
		t.Errorf("location = %q", loc)
	}
	page, resp := renderWithFlash(t, app, "/?tab=my-tickets", flashCookieFrom(t, second))
	if !strings.Contains(page, `class="toast toast-error"`) || !strings.Contains(page, "That slot is already booked.") {
		t.Error("conflict toast missing from page")
	}
	if strings.Count(page, "#2 ") != 0 {
		t.Error("duplicate appointment rendered")
	}

	cleared := flashCookieFrom(t, resp)
	if cleared.Value != "" || cleared.Expires.After(time.Now()) {
		t.Errorf("flash cookie not cleared: %+v", cleared)
	}
}

func TestTicketFormValidationShowsToast(t *testing.T) {
	app := newTestApp(t)

	resp := postForm(t, app, "/tickets", url.Values{"subject": {""}, "category": {"General"}, "priority": {"Low"}}, visitorA)
	page, _ := renderWithFlash(t, app, "/?tab=new-ticket", flashCookieFrom(t, resp))
	if !strings.Contains(page, "Please fill all required fields.") {
		t.Error("validation toast missing from page")
	}
	if !strings.Contains(page, `id="tab-new-ticket" class="tab-pane active"`) {
		t.Error("new-ticket pane is not active")
	}

	plain := sendJSON(t, app, nethttp.MethodGet, "/?tab=new-ticket", "", visitorA)
	body, _ := io.ReadAll(plain.Body)
	if strings.Contains(string(body), "Please fill all required fields.") {
		t.Error("toast rendered without a flash cookie")
	}
}
