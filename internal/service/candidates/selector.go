package candidates

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// SlotChecker минимальный интерфейс проверки занятости агента в слоте
type SlotChecker interface {
	SlotIsFree(staffID uuid.UUID, start, end time.Time) bool
}

// SelectionRequest параметры выбора агента для одного слота
type SelectionRequest struct {
	Start time.Time
	End   time.Time

	// Preferred упорядоченная цепочка предпочтений: текущий владелец записи,
	// затем владелец партии, затем коллабораторы. Первый свободный побеждает,
	// минуя fairness-ранжирование.
	Preferred []uuid.UUID

	// SameDayCounts число активных туров каждого агента за календарный день
	// запроса (в таймзоне объекта). Учитывается количество, не длительность.
	SameDayCounts map[uuid.UUID]int
}

// Selector выбирает агента для тура по детерминированному fairness-правилу
type Selector struct {
	logger Logger
}

// NewSelector создает новый экземпляр селектора
func NewSelector(logger Logger) *Selector {
	return &Selector{logger: logger}
}

// Select возвращает победителя среди свободных кандидатов пула.
//
// Порядок стратегий (короткое замыкание на первой сработавшей):
//  1. предпочитаемые агенты в объявленном порядке - если свободны;
//  2. наименьшее число туров за день, при равенстве - меньший staff id
//     (стабильный порядок: одинаковые входы дают одинаковый результат).
//
// Возвращает ErrSlotNotAvailable, когда свободных кандидатов нет.
func (s *Selector) Select(pool []uuid.UUID, req SelectionRequest, checker SlotChecker) (uuid.UUID, error) {
	free := make([]uuid.UUID, 0, len(pool))
	freeSet := make(map[uuid.UUID]bool, len(pool))
	for _, staffID := range pool {
		if checker.SlotIsFree(staffID, req.Start, req.End) {
			free = append(free, staffID)
			freeSet[staffID] = true
		}
	}

	if len(free) == 0 {
		return uuid.Nil, ErrSlotNotAvailable
	}

	for _, preferred := range req.Preferred {
		if freeSet[preferred] {
			s.logger.Info("Select: preferred agent %s is free, bypassing fairness ranking", preferred)
			return preferred, nil
		}
	}

	ranked := make([]uuid.UUID, len(free))
	copy(ranked, free)
	sort.Slice(ranked, func(i, j int) bool {
		ci, cj := req.SameDayCounts[ranked[i]], req.SameDayCounts[ranked[j]]
		if ci != cj {
			return ci < cj
		}
		return ranked[i].String() < ranked[j].String()
	})

	winner := ranked[0]
	s.logger.Info("Select: agent %s wins with %d same-day appointments (%d free candidates)",
		winner, req.SameDayCounts[winner], len(ranked))

	return winner, nil
}
