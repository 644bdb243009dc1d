package domain

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentState represents the lifecycle state of an appointment
type AppointmentState string

const (
	StateActive    AppointmentState = "active"
	StateCompleted AppointmentState = "completed"
	StateCanceled  AppointmentState = "canceled"
)

// Appointment represents a booked tour slot assigned to exactly one agent
type Appointment struct {
	ID            uuid.UUID
	OwnerRecordID uuid.UUID // ID партии (workflow record), которой принадлежит запись
	TeamID        uuid.UUID

	// Ordered list, the first entry is the tour agent
	AssignedStaffIDs []uuid.UUID

	Start time.Time
	End   time.Time

	// Inventory/unit references selected for the tour (may be empty)
	ResourceRefs []uuid.UUID

	// Party member references attending the tour
	ParticipantRefs []uuid.UUID

	State    AppointmentState
	TourType TourType

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still blocks the agent's calendar
func (a *Appointment) IsActive() bool {
	return a.State == StateActive
}

// IsCanceled returns true if the appointment has been canceled
func (a *Appointment) IsCanceled() bool {
	return a.State == StateCanceled
}

// TourAgentID returns the assigned tour agent, or uuid.Nil when unassigned
func (a *Appointment) TourAgentID() uuid.UUID {
	if len(a.AssignedStaffIDs) == 0 {
		return uuid.Nil
	}
	return a.AssignedStaffIDs[0]
}

// SameSlot returns true if the appointment occupies exactly the given [start, end) window
func (a *Appointment) SameSlot(start, end time.Time) bool {
	return a.Start.Equal(start) && a.End.Equal(end)
}

// HasResource returns true if the appointment references the given inventory unit
func (a *Appointment) HasResource(resourceID uuid.UUID) bool {
	for _, r := range a.ResourceRefs {
		if r == resourceID {
			return true
		}
	}
	return false
}

// SameResourceSet returns true if the appointment references exactly the given
// set of inventory units (order-insensitive)
func (a *Appointment) SameResourceSet(resources []uuid.UUID) bool {
	if len(a.ResourceRefs) != len(resources) {
		return false
	}
	for _, r := range resources {
		if !a.HasResource(r) {
			return false
		}
	}
	return true
}

// MergeResources unions the given inventory units into the appointment's
// resource set, preserving existing order and dropping duplicates
func (a *Appointment) MergeResources(resources []uuid.UUID) {
	for _, r := range resources {
		if !a.HasResource(r) {
			a.ResourceRefs = append(a.ResourceRefs, r)
		}
	}
}
