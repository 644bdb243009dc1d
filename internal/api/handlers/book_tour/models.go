package book_tour

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/max-tl-2000/red-sub012/internal/integrations/partyservice"
	bookTour "github.com/max-tl-2000/red-sub012/internal/usecase/book_tour"
)

// BookTourRequest HTTP request model
type BookTourRequest struct {
	PropertyID string   `json:"propertyId"`
	TeamID     string   `json:"teamId"`
	Name       string   `json:"name,omitempty"`
	Email      string   `json:"email,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	StartDate  string   `json:"startDate"` // RFC3339, например "2026-09-01T14:00:00Z"
	TourType   string   `json:"tourType,omitempty"`
	Resources  []string `json:"resources,omitempty"` // ID выбранных юнитов
}

// BookTourResponse HTTP response model
type BookTourResponse struct {
	AppointmentID string `json:"appointmentId"`
	StaffID       string `json:"staffId"`
	OwnerRecordID string `json:"ownerRecordId"`
	Start         string `json:"start"`
	End           string `json:"end"`
	TourType      string `json:"tourType"`
	Outcome       string `json:"outcome"` // created | merged | rescheduled
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookTourRequest) ToUseCaseRequest() (*bookTour.Request, error) {
	propertyID, err := uuid.Parse(r.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("invalid propertyId: %w", err)
	}

	teamID, err := uuid.Parse(r.TeamID)
	if err != nil {
		return nil, fmt.Errorf("invalid teamId: %w", err)
	}

	startDate, err := time.Parse(time.RFC3339, r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid startDate: %w", err)
	}

	resources := make([]uuid.UUID, 0, len(r.Resources))
	for _, raw := range r.Resources {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid resource id %q: %w", raw, err)
		}
		resources = append(resources, id)
	}

	return &bookTour.Request{
		PropertyID: propertyID,
		TeamID:     teamID,
		Contact: partyservice.ContactInfo{
			Name:  r.Name,
			Email: r.Email,
			Phone: r.Phone,
		},
		StartDate: startDate,
		TourType:  r.TourType,
		Resources: resources,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookTour.Response) *BookTourResponse {
	return &BookTourResponse{
		AppointmentID: resp.AppointmentID.String(),
		StaffID:       resp.StaffID.String(),
		OwnerRecordID: resp.OwnerRecordID.String(),
		Start:         resp.Start.Format(time.RFC3339),
		End:           resp.End.Format(time.RFC3339),
		TourType:      resp.TourType,
		Outcome:       string(resp.Outcome),
	}
}
