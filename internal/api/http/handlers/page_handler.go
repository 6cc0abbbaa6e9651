package handlers

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/service"
	"github.com/spec-kit/support-desk/internal/ui"
	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

// PageHandler serves the widget page and its form posts. Every post
// redirects back to the page with the pane to show.
type PageHandler struct {
	chat         *service.ChatService
	tickets      *service.TicketService
	appointments *service.AppointmentService
	logger       *zap.Logger
}

// NewPageHandler constructs handler.
func NewPageHandler(chat *service.ChatService, tickets *service.TicketService, appointments *service.AppointmentService, logger *zap.Logger) *PageHandler {
	return &PageHandler{chat: chat, tickets: tickets, appointments: appointments, logger: logger}
}

// Index GET /.
func (h *PageHandler) Index(c *fiber.Ctx) error {
	ctx := c.UserContext()
	visitor := visitorID(c)

	nav := ui.NewNavigator()
	if tab := c.Query("tab"); tab != "" {
		if err := nav.Select(ui.Pane(tab)); err != nil {
			h.logger.Debug("ignoring tab", zap.String("tab", tab), zap.Error(err))
		}
	}

	transcript, err := h.chat.Transcript(ctx, visitor)
	if err != nil {
		return err
	}
	tickets, err := h.tickets.ListTickets(ctx, visitor)
	if err != nil {
		return err
	}
	appts, err := h.appointments.ListAppointments(ctx, visitor)
	if err != nil {
		return err
	}

	page := ui.NewPage(nav, transcript, tickets, appts)
	page.Toast = takeFlash(c)
	switch t := domain.AppointmentType(c.Query("type")); t {
	case domain.AppointmentTypeMental, domain.AppointmentTypeCareer:
		page.PrefillType = t
	}
	return c.Render("index", page)
}

// Chat POST /chat.
func (h *PageHandler) Chat(c *fiber.Ctx) error {
	if _, err := h.chat.HandleMessage(c.UserContext(), visitorID(c), c.FormValue("text")); err != nil {
		return err
	}
	return redirectTo(c, ui.PaneAssistant)
}

// SubmitTicket POST /tickets.
func (h *PageHandler) SubmitTicket(c *fiber.Ctx) error {
	_, err := h.tickets.SubmitTicket(c.UserContext(), visitorID(c), service.TicketCreateInput{
		Subject:  c.FormValue("subject"),
		Category: domain.TicketCategory(c.FormValue("category")),
		Priority: domain.TicketPriority(c.FormValue("priority")),
		Name:     c.FormValue("name"),
	}, events.SourceForm)
	if err != nil {
		if h.flashError(c, err) {
			return redirectTo(c, ui.PaneNewTicket)
		}
		return err
	}
	setFlash(c, "Ticket submitted successfully.", ui.SeveritySuccess)
	return redirectTo(c, ui.PaneMyTickets)
}

// ToggleTicket POST /tickets/:id/toggle.
func (h *PageHandler) ToggleTicket(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err == nil {
		_, err = h.tickets.ToggleStatus(c.UserContext(), visitorID(c), id, events.SourceForm)
	}
	if err != nil && !h.flashError(c, err) {
		return err
	}
	return redirectTo(c, ui.PaneMyTickets)
}

// BookAppointment POST /appointments.
func (h *PageHandler) BookAppointment(c *fiber.Ctx) error {
	_, err := h.appointments.Book(c.UserContext(), visitorID(c), service.AppointmentCreateInput{
		Type:     domain.AppointmentType(c.FormValue("type")),
		Slot:     c.FormValue("slot"),
		UserName: c.FormValue("name"),
		Notes:    c.FormValue("notes"),
	}, events.SourceForm)
	if err != nil {
		if h.flashError(c, err) {
			return redirectTo(c, ui.PaneMyTickets)
		}
		return err
	}
	setFlash(c, "Appointment booked.", ui.SeveritySuccess)
	return redirectTo(c, ui.PaneMyTickets)
}

// CancelAppointment POST /appointments/:id/cancel.
func (h *PageHandler) CancelAppointment(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err == nil {
		err = h.appointments.Cancel(c.UserContext(), visitorID(c), id, events.SourceForm)
	}
	if err != nil {
		if h.flashError(c, err) {
			return redirectTo(c, ui.PaneMyTickets)
		}
		return err
	}
	setFlash(c, "Appointment cancelled.", ui.SeveritySuccess)
	return redirectTo(c, ui.PaneMyTickets)
}

// flashError turns recoverable domain errors into toasts. A missing record is
// a silent no-op. It reports false for errors the caller must propagate.
func (h *PageHandler) flashError(c *fiber.Ctx, err error) bool {
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		return false
	}
	switch domainErr.Code {
	case apperrors.CodeValidationFailed, apperrors.CodeSlotConflict:
		setFlash(c, domainErr.Message, ui.SeverityError)
		return true
	case apperrors.CodeNotFound:
		h.logger.Debug("record already gone", zap.String("visitor_id", visitorID(c)), zap.Any("details", domainErr.Details))
		return true
	}
	return false
}

func redirectTo(c *fiber.Ctx, pane ui.Pane) error {
	return c.Redirect("/?tab="+url.QueryEscape(string(pane)), fiber.StatusSeeOther)
}
