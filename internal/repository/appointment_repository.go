package repository

import (
	"context"
	"slices"
	"strings"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/store"
	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

// NewAppointment describes an appointment to book.
type NewAppointment struct {
	Type     domain.AppointmentType
	Slot     string
	UserName string
	Notes    string
}

// AppointmentRepository encapsulates appointment persistence. Create
// refuses a (type, slot) pair that is already booked.
type AppointmentRepository interface {
	Create(ctx context.Context, input NewAppointment) (*domain.Appointment, error)
	Cancel(ctx context.Context, id int) (*domain.Appointment, error)
	List(ctx context.Context) ([]domain.Appointment, error)
}

type appointmentRepository struct {
	store store.Store
	clock Clock
}

// NewAppointmentRepository builds repository.
func NewAppointmentRepository(s store.Store, clock Clock) AppointmentRepository {
	return &appointmentRepository{store: s, clock: clock}
}

func (r *appointmentRepository) Create(ctx context.Context, input NewAppointment) (*domain.Appointment, error) {
	r.store.Lock()
	defer r.store.Unlock()

	appts, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range appts {
		if a.SameSlot(input.Type, input.Slot) {
			return nil, apperrors.NewSlotConflict(map[string]any{
				"type": input.Type,
				"slot": input.Slot,
			})
		}
	}

	appt := domain.Appointment{
		ID:        nextID(appts, func(a domain.Appointment) int { return a.ID }),
		Type:      input.Type,
		Slot:      input.Slot,
		UserName:  strings.TrimSpace(input.UserName),
		CreatedAt: r.clock.Now(),
	}
	if appt.UserName == "" {
		appt.UserName = domain.GuestName
	}
	if notes := strings.TrimSpace(input.Notes); notes != "" {
		appt.Notes = &notes
	}

	appts = append(appts, appt)
	if err := r.store.Set(ctx, AppointmentsKey, appts); err != nil {
		return nil, err
	}
	return &appt, nil
}

// Cancel removes the appointment and returns it as it was stored.
func (r *appointmentRepository) Cancel(ctx context.Context, id int) (*domain.Appointment, error) {
	r.store.Lock()
	defer r.store.Unlock()

	appts, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	idx := slices.IndexFunc(appts, func(a domain.Appointment) bool { return a.ID == id })
	if idx < 0 {
		return nil, apperrors.NewNotFound("appointment", map[string]any{"id": id})
	}
	removed := appts[idx]
	appts = slices.Delete(appts, idx, idx+1)
	if err := r.store.Set(ctx, AppointmentsKey, appts); err != nil {
		return nil, err
	}
	return &removed, nil
}

func (r *appointmentRepository) List(ctx context.Context) ([]domain.Appointment, error) {
	return r.load(ctx)
}

func (r *appointmentRepository) load(ctx context.Context) ([]domain.Appointment, error) {
	return store.GetOr(ctx, r.store, AppointmentsKey, []domain.Appointment{})
}
