package propertyservice

import "github.com/max-tl-2000/red-sub012/internal/domain"

// PropertySettings настройки объекта, влияющие на самостоятельное бронирование
type PropertySettings struct {
	Timezone           string            `json:"timezone"`
	TourTypesAvailable []domain.TourType `json:"tourTypesAvailable"`
}

// TeamSettings настройки команды
type TeamSettings struct {
	SlotDurationMinutes int                    `json:"slotDurationMinutes"`
	RoutingStrategy     domain.RoutingStrategy `json:"routingStrategy"`

	// Границы рабочего дня в минутах от полуночи объекта;
	// нулевые значения заменяются дефолтами
	WorkdayStartMinutes int `json:"workdayStartMinutes"`
	WorkdayEndMinutes   int `json:"workdayEndMinutes"`
}
