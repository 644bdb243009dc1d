package domain

import (
	"time"

	"github.com/google/uuid"
)

// FunctionalRole represents a functional role held by a team member
type FunctionalRole string

const (
	// RoleAgent marks members who can be assigned as tour agents
	RoleAgent FunctionalRole = "LWA"
	// RoleDispatcher marks the member who receives unassigned leads; excluded
	// from direct tour assignment except as a last resort
	RoleDispatcher FunctionalRole = "LD"
)

// TeamMember represents one staff member's membership on a team
type TeamMember struct {
	UserID    uuid.UUID
	TeamID    uuid.UUID
	Roles     []FunctionalRole
	Inactive  bool
	// MultiTeam is true when the staff member also belongs to other teams
	// (floating staff, subject to per-day availability entries)
	MultiTeam bool
}

// HasRole returns true if the member holds the given functional role
func (m *TeamMember) HasRole(role FunctionalRole) bool {
	for _, r := range m.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsDispatcher returns true if the member holds the dispatcher role
func (m *TeamMember) IsDispatcher() bool {
	return m.HasRole(RoleDispatcher)
}

// RoutingStrategy determines how a newly created owning record is assigned
type RoutingStrategy string

const (
	RoutingRoundRobin RoutingStrategy = "Round Robin"
	RoutingDispatcher RoutingStrategy = "Dispatcher"
)

// RoutingState is the per-team round-robin pointer. Read-then-write on it must
// stay inside the booking transaction.
type RoutingState struct {
	TeamID              uuid.UUID
	LastAssignedStaffID *uuid.UUID
	UpdatedAt           time.Time
}

// DayAvailability is a floating staff member's explicit per-day availability
// entry naming the team they work for on that date
type DayAvailability struct {
	UserID uuid.UUID
	TeamID uuid.UUID
	Day    time.Time // date only, midnight in the property timezone
}

// CandidateScore is the ephemeral per-request fairness score of one candidate.
// Recomputed on every request, never persisted.
type CandidateScore struct {
	StaffID                 uuid.UUID
	SameDayAppointmentCount int
	IsDispatcher            bool
}
