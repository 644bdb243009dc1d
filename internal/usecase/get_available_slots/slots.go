package get_available_slots

import (
	"time"

	"github.com/max-tl-2000/red-sub012/internal/integrations/propertyservice"
)

// generateDaySlots генерирует сетку слотов одного дня в таймзоне объекта.
// Сетка начинается от полуночи дня, поэтому слоты совпадают с теми, что
// проходят проверку выравнивания при бронировании: начало рабочего дня,
// не кратное длительности слота, только сдвигает первый слот вперед.
// Слоты, начавшиеся до now, отбрасываются.
func generateDaySlots(dayStart time.Time, settings *propertyservice.TeamSettings, now time.Time) []time.Time {
	slot := time.Duration(settings.SlotDurationMinutes) * time.Minute
	workStart := dayStart.Add(time.Duration(settings.WorkdayStartMinutes) * time.Minute)
	workEnd := dayStart.Add(time.Duration(settings.WorkdayEndMinutes) * time.Minute)

	slots := make([]time.Time, 0)
	for cur := dayStart; !cur.Add(slot).After(workEnd); cur = cur.Add(slot) {
		if cur.Before(workStart) {
			continue
		}
		if cur.After(now) {
			slots = append(slots, cur)
		}
	}

	return slots
}

// dayStartsForWindow возвращает начала календарных дней окна [from, from+days)
// в таймзоне объекта. Дата берется по календарным компонентам from:
// "2026-09-01" остается первым сентября независимо от того, в какой зоне
// распарсен запрос
func dayStartsForWindow(from time.Time, days int, tz *time.Location) []time.Time {
	starts := make([]time.Time, 0, days)
	year, month, day := from.Date()
	cur := time.Date(year, month, day, 0, 0, 0, 0, tz)
	for i := 0; i < days; i++ {
		starts = append(starts, cur)
		cur = cur.AddDate(0, 0, 1)
	}
	return starts
}
