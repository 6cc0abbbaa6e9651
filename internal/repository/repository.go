// Package repository owns the visitor's ticket, appointment and transcript
// collections. Each collection is a JSON array under a fixed store key.
package repository

import "time"

// Store keys for the persisted collections.
const (
	TicketsKey      = "tickets"
	AppointmentsKey = "appointments"
	TranscriptKey   = "transcript"
)

// Clock returns the current time. Nil means time.Now.
type Clock func() time.Time

// Now returns the current time from c.
func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c()
}

// nextID returns one more than the largest id in items, or 1 when empty.
func nextID[T any](items []T, id func(T) int) int {
	highest := 0
	for _, item := range items {
		if v := id(item); v > highest {
			highest = v
		}
	}
	return highest + 1
}
