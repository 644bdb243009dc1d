package get_available_slots

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/max-tl-2000/red-sub012/internal/domain"
)

// validateRequest валидирует входные данные и возвращает нормализованную ширину окна
func validateRequest(req *Request) (int, error) {
	if req.PropertyID == uuid.Nil {
		return 0, fmt.Errorf("%w: propertyID is required", ErrInvalidInput)
	}

	if req.TeamID == uuid.Nil {
		return 0, fmt.Errorf("%w: teamID is required", ErrInvalidInput)
	}

	if req.FromDate.IsZero() {
		return 0, fmt.Errorf("%w: fromDate is required", ErrIncorrectDate)
	}

	days := req.Days
	if days == 0 {
		days = 1
	}
	if days < 0 {
		return 0, fmt.Errorf("%w: days must be positive", ErrInvalidInput)
	}
	if days > domain.MaxSlotsWindowDays {
		return 0, fmt.Errorf("%w: at most %d days", ErrWindowTooLarge, domain.MaxSlotsWindowDays)
	}

	return days, nil
}
