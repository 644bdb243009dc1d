package cancel_tour

import (
	"github.com/google/uuid"

	"github.com/max-tl-2000/red-sub012/internal/integrations/partyservice"
	cancelTour "github.com/max-tl-2000/red-sub012/internal/usecase/cancel_tour"
)

// CancelTourRequest HTTP request model
// ID записи приходит в path, контакты гостя - в теле
type CancelTourRequest struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// CancelTourResponse HTTP response model
type CancelTourResponse struct {
	AppointmentID string `json:"appointmentId"`
	State         string `json:"state"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelTourRequest) ToUseCaseRequest(appointmentID uuid.UUID) *cancelTour.Request {
	return &cancelTour.Request{
		AppointmentID: appointmentID,
		Contact: partyservice.ContactInfo{
			Email: r.Email,
			Phone: r.Phone,
		},
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelTour.Response) *CancelTourResponse {
	return &CancelTourResponse{
		AppointmentID: resp.AppointmentID.String(),
		State:         resp.State,
	}
}
