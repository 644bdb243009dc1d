package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAppointment_SameSlot(t *testing.T) {
	start := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	appt := &Appointment{Start: start, End: end}

	assert.True(t, appt.SameSlot(start, end))
	assert.False(t, appt.SameSlot(start.Add(time.Hour), end.Add(time.Hour)))
	assert.False(t, appt.SameSlot(start, end.Add(30*time.Minute)))
}

func TestAppointment_TourAgentID(t *testing.T) {
	agent := uuid.New()
	backup := uuid.New()

	appt := &Appointment{AssignedStaffIDs: []uuid.UUID{agent, backup}}
	assert.Equal(t, agent, appt.TourAgentID())

	empty := &Appointment{}
	assert.Equal(t, uuid.Nil, empty.TourAgentID())
}

func TestAppointment_SameResourceSet(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	appt := &Appointment{ResourceRefs: []uuid.UUID{a, b}}

	assert.True(t, appt.SameResourceSet([]uuid.UUID{a, b}))
	assert.True(t, appt.SameResourceSet([]uuid.UUID{b, a}), "order must not matter")
	assert.False(t, appt.SameResourceSet([]uuid.UUID{a}))
	assert.False(t, appt.SameResourceSet([]uuid.UUID{a, uuid.New()}))

	empty := &Appointment{}
	assert.True(t, empty.SameResourceSet(nil))
}

func TestAppointment_MergeResources(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()

	appt := &Appointment{ResourceRefs: []uuid.UUID{a, b}}
	appt.MergeResources([]uuid.UUID{b, c})

	assert.Equal(t, []uuid.UUID{a, b, c}, appt.ResourceRefs)
}

func TestAppointment_States(t *testing.T) {
	assert.True(t, (&Appointment{State: StateActive}).IsActive())
	assert.False(t, (&Appointment{State: StateCanceled}).IsActive())
	assert.True(t, (&Appointment{State: StateCanceled}).IsCanceled())
}
