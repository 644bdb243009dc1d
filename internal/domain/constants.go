package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes = 60
	DefaultTourType            = TourInPerson

	// Границы рабочего дня по умолчанию: 09:00 - 18:00
	DefaultWorkdayStartMinutes = 9 * 60
	DefaultWorkdayEndMinutes   = 18 * 60
)

// Business validation constants
const (
	MinSlotDurationMinutes = 15
	MaxSlotDurationMinutes = 240
	MaxSlotsWindowDays     = 30
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
