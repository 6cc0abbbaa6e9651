package dto

import (
	"time"

	"github.com/spec-kit/support-desk/internal/domain"
)

// CreateAppointmentRequest payload.
type CreateAppointmentRequest struct {
	Type  domain.AppointmentType `json:"type"`
	Slot  string                 `json:"slot"`
	Name  string                 `json:"name"`
	Notes string                 `json:"notes"`
}

// AppointmentResponse represents one appointment.
type AppointmentResponse struct {
	ID        int                    `json:"id"`
	Type      domain.AppointmentType `json:"type"`
	Slot      string                 `json:"slot"`
	UserName  string                 `json:"user_name"`
	Notes     *string                `json:"notes"`
	CreatedAt time.Time              `json:"created_at"`
}

// NewAppointmentResponse maps an appointment.
func NewAppointmentResponse(a *domain.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:        a.ID,
		Type:      a.Type,
		Slot:      a.Slot,
		UserName:  a.UserName,
		Notes:     a.Notes,
		CreatedAt: a.CreatedAt,
	}
}

// NewAppointmentResponses maps appointments, keeping order.
func NewAppointmentResponses(appts []domain.Appointment) []AppointmentResponse {
	items := make([]AppointmentResponse, 0, len(appts))
	for i := range appts {
		items = append(items, NewAppointmentResponse(&appts[i]))
	}
	return items
}
