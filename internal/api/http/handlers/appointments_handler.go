package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/api/dto"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/service"
	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

// AppointmentsHandler manages the visitor's appointment endpoints.
type AppointmentsHandler struct {
	service *service.AppointmentService
}

// NewAppointmentsHandler constructs handler.
func NewAppointmentsHandler(appointmentService *service.AppointmentService) *AppointmentsHandler {
	return &AppointmentsHandler{service: appointmentService}
}

// Book POST /api/appointments.
func (h *AppointmentsHandler) Book(c *fiber.Ctx) error {
	var req dto.CreateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	appt, err := h.service.Book(c.UserContext(), visitorID(c), service.AppointmentCreateInput{
		Type:     req.Type,
		Slot:     req.Slot,
		UserName: req.Name,
		Notes:    req.Notes,
	}, events.SourceAPI)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAppointmentResponse(appt)})
}

// List GET /api/appointments.
func (h *AppointmentsHandler) List(c *fiber.Ctx) error {
	appts, err := h.service.ListAppointments(c.UserContext(), visitorID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAppointmentResponses(appts)})
}

// Cancel DELETE /api/appointments/:id.
func (h *AppointmentsHandler) Cancel(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.service.Cancel(c.UserContext(), visitorID(c), id, events.SourceAPI); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
