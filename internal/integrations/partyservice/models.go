package partyservice

import "github.com/google/uuid"

// ContactInfo контактные данные гостя из веб-формы
// Хотя бы одно из полей Email/Phone должно быть заполнено
type ContactInfo struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// HasContact возвращает true, если указан email или телефон
func (c ContactInfo) HasContact() bool {
	return c.Email != "" || c.Phone != ""
}

// Requester результат резолва гостя
type Requester struct {
	PersonID uuid.UUID `json:"personId"`
}

// Party активная партия (owning record) гостя
type Party struct {
	ID              uuid.UUID   `json:"id"`
	OwnerID         uuid.UUID   `json:"ownerId"`
	CollaboratorIDs []uuid.UUID `json:"collaboratorIds"`
	TeamID          uuid.UUID   `json:"teamId"`
}

// CreatePartyRequest запрос на создание новой партии
type CreatePartyRequest struct {
	PersonID   uuid.UUID `json:"personId"`
	PropertyID uuid.UUID `json:"propertyId"`
	TeamID     uuid.UUID `json:"teamId"`
	OwnerID    uuid.UUID `json:"ownerId"`
}
