package book_tour

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/max-tl-2000/red-sub012/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PropertyID == uuid.Nil {
		return fmt.Errorf("%w: propertyID is required", ErrInvalidInput)
	}

	if req.TeamID == uuid.Nil {
		return fmt.Errorf("%w: teamID is required", ErrInvalidInput)
	}

	// Без email или телефона гостя невозможно сопоставить с персоной
	if !req.Contact.HasContact() {
		return fmt.Errorf("%w: email or phone is required", ErrInvalidInput)
	}

	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrIncorrectDate)
	}

	return nil
}

// validateStartDate проверяет, что начало слота не в прошлом
func validateStartDate(start, now time.Time) error {
	if !start.After(now) {
		return fmt.Errorf("%w: start date %s is in the past", ErrIncorrectDate, start.Format(time.RFC3339))
	}
	return nil
}

// validateSlotAlignment проверяет, что начало слота выровнено по сетке слотов:
// смещение от начала календарного дня объекта кратно длительности слота.
// Сетка считается в таймзоне объекта, поэтому остается выровненной и в дни
// перевода часов.
func validateSlotAlignment(start time.Time, slotMinutes int, tz *time.Location) error {
	slot := time.Duration(slotMinutes) * time.Minute
	offset := start.Sub(domain.StartOfDay(start, tz))

	if offset < 0 || offset%slot != 0 {
		return fmt.Errorf("%w: %s is not aligned to the %d-minute slot grid",
			ErrIncorrectStartDate, start.In(tz).Format(time.RFC3339), slotMinutes)
	}

	return nil
}

// validateTourType проверяет тип тура против списка доступных на объекте.
// Пустая строка означает тип по умолчанию.
func validateTourType(raw string, available []domain.TourType) (domain.TourType, error) {
	if raw == "" {
		return domain.DefaultTourType, nil
	}

	tourType := domain.TourType(raw)
	if !tourType.IsKnown() {
		return "", fmt.Errorf("%w: unknown tour type %q", ErrIncorrectTourType, raw)
	}

	// Пустой список в настройках объекта означает "доступны все известные типы"
	if len(available) == 0 {
		return tourType, nil
	}

	for _, t := range available {
		if t == tourType {
			return tourType, nil
		}
	}

	return "", fmt.Errorf("%w: tour type %q is not offered by this property", ErrIncorrectTourType, raw)
}
