package domain

import (
	"time"

	"github.com/google/uuid"
)

// BusySource identifies the origin of a busy interval
type BusySource string

const (
	BusySourceAppointment BusySource = "appointment"
	BusySourcePersonal    BusySource = "personal"
	BusySourceSickLeave   BusySource = "sick_leave"
	BusySourceTeamEvent   BusySource = "team_event"
)

// BusyInterval is a normalized [Start, End) window during which a staff member
// cannot take a tour. Team-wide blackout events are materialized as one
// synthetic interval per roster member.
type BusyInterval struct {
	StaffID uuid.UUID
	Start   time.Time
	End     time.Time
	Source  BusySource
}

// Overlaps reports whether the interval intersects [start, end) using
// half-open semantics: an interval ending exactly at start (or starting
// exactly at end) does not conflict
func (b BusyInterval) Overlaps(start, end time.Time) bool {
	return b.Start.Before(end) && b.End.After(start)
}

// IntervalsOverlap reports whether [aStart, aEnd) and [bStart, bEnd) intersect
// under half-open semantics
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// SameCalendarDay reports whether two instants fall on the same calendar day
// in the given timezone
func SameCalendarDay(a, b time.Time, tz *time.Location) bool {
	ay, am, ad := a.In(tz).Date()
	by, bm, bd := b.In(tz).Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay returns midnight of the instant's calendar day in the given timezone
func StartOfDay(t time.Time, tz *time.Location) time.Time {
	y, m, d := t.In(tz).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, tz)
}
