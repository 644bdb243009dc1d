package availability

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/max-tl-2000/red-sub012/internal/domain"
)

// Availability результат агрегации занятости: упорядоченные занятые интервалы
// каждого агента внутри запрошенного окна
type Availability struct {
	busy map[uuid.UUID][]domain.BusyInterval
}

// NewAvailability собирает Availability из произвольного набора интервалов
func NewAvailability(intervals []domain.BusyInterval) *Availability {
	busy := make(map[uuid.UUID][]domain.BusyInterval)
	for _, iv := range intervals {
		busy[iv.StaffID] = append(busy[iv.StaffID], iv)
	}
	for staffID := range busy {
		list := busy[staffID]
		sort.Slice(list, func(i, j int) bool { return list[i].Start.Before(list[j].Start) })
		busy[staffID] = list
	}
	return &Availability{busy: busy}
}

// BusyIntervals возвращает упорядоченные занятые интервалы агента
func (a *Availability) BusyIntervals(staffID uuid.UUID) []domain.BusyInterval {
	return a.busy[staffID]
}

// SlotIsFree возвращает true, если ни один интервал агента не пересекает [start, end)
// Полуоткрытая семантика: интервал, заканчивающийся ровно в start или
// начинающийся ровно в end, конфликтом не считается
func (a *Availability) SlotIsFree(staffID uuid.UUID, start, end time.Time) bool {
	for _, iv := range a.busy[staffID] {
		if iv.Overlaps(start, end) {
			return false
		}
	}
	return true
}

// FreeStaff возвращает агентов из pool, свободных в слоте [start, end),
// сохраняя порядок pool
func (a *Availability) FreeStaff(pool []uuid.UUID, start, end time.Time) []uuid.UUID {
	free := make([]uuid.UUID, 0, len(pool))
	for _, staffID := range pool {
		if a.SlotIsFree(staffID, start, end) {
			free = append(free, staffID)
		}
	}
	return free
}
