package get_available_slots

import (
	"time"

	getSlots "github.com/max-tl-2000/red-sub012/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	Start      string `json:"start"`
	End        string `json:"end"`
	FreeAgents int    `json:"freeAgents"`
}

// GetAvailableSlotsResponse HTTP response model
type GetAvailableSlotsResponse struct {
	PropertyID string         `json:"propertyId"`
	TeamID     string         `json:"teamId"`
	Timezone   string         `json:"timezone"`
	Slots      []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlots.Response) *GetAvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			Start:      s.Start.Format(time.RFC3339),
			End:        s.End.Format(time.RFC3339),
			FreeAgents: s.FreeAgents,
		})
	}

	return &GetAvailableSlotsResponse{
		PropertyID: resp.PropertyID.String(),
		TeamID:     resp.TeamID.String(),
		Timezone:   resp.Timezone,
		Slots:      slots,
	}
}
