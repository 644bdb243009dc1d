package candidates

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// allFree отмечает всех агентов свободными
type allFree struct{}

func (allFree) SlotIsFree(staffID uuid.UUID, start, end time.Time) bool { return true }

// busySet отмечает занятыми только перечисленных агентов
type busySet map[uuid.UUID]bool

func (b busySet) SlotIsFree(staffID uuid.UUID, start, end time.Time) bool { return !b[staffID] }

var (
	staffA = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	staffB = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	staffC = uuid.MustParse("33333333-3333-3333-3333-333333333333")
)

func selectionReq(counts map[uuid.UUID]int, preferred ...uuid.UUID) SelectionRequest {
	start := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	return SelectionRequest{
		Start:         start,
		End:           start.Add(time.Hour),
		Preferred:     preferred,
		SameDayCounts: counts,
	}
}

func TestSelector_LowestCountWins(t *testing.T) {
	selector := NewSelector(nopLogger{})

	counts := map[uuid.UUID]int{staffA: 3, staffB: 1, staffC: 2}
	winner, err := selector.Select([]uuid.UUID{staffA, staffB, staffC}, selectionReq(counts), allFree{})

	require.NoError(t, err)
	assert.Equal(t, staffB, winner)
}

func TestSelector_TieBrokenByStaffID(t *testing.T) {
	selector := NewSelector(nopLogger{})

	counts := map[uuid.UUID]int{staffA: 2, staffB: 2, staffC: 2}
	winner, err := selector.Select([]uuid.UUID{staffC, staffB, staffA}, selectionReq(counts), allFree{})

	require.NoError(t, err)
	assert.Equal(t, staffA, winner, "tie must resolve to the smallest staff id")
}

func TestSelector_Deterministic(t *testing.T) {
	selector := NewSelector(nopLogger{})
	counts := map[uuid.UUID]int{staffA: 1, staffB: 1, staffC: 0}

	first, err := selector.Select([]uuid.UUID{staffA, staffB, staffC}, selectionReq(counts), allFree{})
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := selector.Select([]uuid.UUID{staffA, staffB, staffC}, selectionReq(counts), allFree{})
		require.NoError(t, err)
		assert.Equal(t, first, again, "identical inputs must produce identical winners")
	}
}

func TestSelector_PreferredBypassesFairness(t *testing.T) {
	selector := NewSelector(nopLogger{})

	// staffC нагружен сильнее всех, но предпочитаем именно его
	counts := map[uuid.UUID]int{staffA: 0, staffB: 0, staffC: 5}
	winner, err := selector.Select([]uuid.UUID{staffA, staffB, staffC}, selectionReq(counts, staffC), allFree{})

	require.NoError(t, err)
	assert.Equal(t, staffC, winner)
}

func TestSelector_BusyPreferredFallsThrough(t *testing.T) {
	selector := NewSelector(nopLogger{})

	counts := map[uuid.UUID]int{staffA: 0, staffB: 1}
	winner, err := selector.Select([]uuid.UUID{staffA, staffB, staffC},
		selectionReq(counts, staffC), busySet{staffC: true})

	require.NoError(t, err)
	assert.Equal(t, staffA, winner, "busy preferred agent must not win")
}

func TestSelector_NoFreeCandidates(t *testing.T) {
	selector := NewSelector(nopLogger{})

	_, err := selector.Select([]uuid.UUID{staffA, staffB}, selectionReq(nil),
		busySet{staffA: true, staffB: true})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestSelector_EmptyPool(t *testing.T) {
	selector := NewSelector(nopLogger{})

	_, err := selector.Select(nil, selectionReq(nil), allFree{})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}
