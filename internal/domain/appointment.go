package domain

import (
	"strings"
	"time"
)

// AppointmentType is the kind of counselling booked.
type AppointmentType string

const (
	AppointmentTypeMental AppointmentType = "mental"
	AppointmentTypeCareer AppointmentType = "career"
)

// AppointmentTypes lists bookable types in form order.
var AppointmentTypes = []AppointmentType{AppointmentTypeMental, AppointmentTypeCareer}

// SlotLayout is the wire form of a slot: local date and time, no zone.
const SlotLayout = "2006-01-02T15:04"

// Appointment is a booked counselling slot. No two appointments share Type and Slot.
type Appointment struct {
	ID        int             `json:"id"`
	Type      AppointmentType `json:"type"`
	Slot      string          `json:"slot"`
	UserName  string          `json:"userName"`
	Notes     *string         `json:"notes"`
	CreatedAt time.Time       `json:"createdAt"`
}

// SameSlot reports whether a and other occupy the same (type, slot) pair.
func (a Appointment) SameSlot(t AppointmentType, slot string) bool {
	return a.Type == t && a.Slot == slot
}

// DisplaySlot renders a slot with a space between date and time.
func DisplaySlot(slot string) string {
	return strings.Replace(slot, "T", " ", 1)
}
