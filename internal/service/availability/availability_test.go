package availability

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/max-tl-2000/red-sub012/internal/domain"
)

func TestAvailability_SlotIsFree(t *testing.T) {
	staff := uuid.New()
	base := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)

	avail := NewAvailability([]domain.BusyInterval{
		{StaffID: staff, Start: base, End: base.Add(time.Hour), Source: domain.BusySourceAppointment},
	})

	assert.False(t, avail.SlotIsFree(staff, base, base.Add(time.Hour)))
	assert.False(t, avail.SlotIsFree(staff, base.Add(30*time.Minute), base.Add(90*time.Minute)))

	// Граничащие слоты свободны (полуоткрытая семантика)
	assert.True(t, avail.SlotIsFree(staff, base.Add(time.Hour), base.Add(2*time.Hour)))
	assert.True(t, avail.SlotIsFree(staff, base.Add(-time.Hour), base))

	// Агент без интервалов свободен всегда
	assert.True(t, avail.SlotIsFree(uuid.New(), base, base.Add(time.Hour)))
}

func TestAvailability_FreeStaff(t *testing.T) {
	busy := uuid.New()
	free := uuid.New()
	base := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)

	avail := NewAvailability([]domain.BusyInterval{
		{StaffID: busy, Start: base, End: base.Add(time.Hour), Source: domain.BusySourcePersonal},
	})

	got := avail.FreeStaff([]uuid.UUID{busy, free}, base, base.Add(time.Hour))
	assert.Equal(t, []uuid.UUID{free}, got)
}

func TestAvailability_BusyIntervalsSorted(t *testing.T) {
	staff := uuid.New()
	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	avail := NewAvailability([]domain.BusyInterval{
		{StaffID: staff, Start: base.Add(4 * time.Hour), End: base.Add(5 * time.Hour)},
		{StaffID: staff, Start: base, End: base.Add(time.Hour)},
		{StaffID: staff, Start: base.Add(2 * time.Hour), End: base.Add(3 * time.Hour)},
	})

	intervals := avail.BusyIntervals(staff)
	assert.Len(t, intervals, 3)
	assert.True(t, intervals[0].Start.Before(intervals[1].Start))
	assert.True(t, intervals[1].Start.Before(intervals[2].Start))
}
