package cancel_tour

import (
	"github.com/google/uuid"

	"github.com/max-tl-2000/red-sub012/internal/integrations/partyservice"
)

// Request модель запроса на самостоятельную отмену тура
type Request struct {
	AppointmentID uuid.UUID                // ID записи о туре
	Contact       partyservice.ContactInfo // Контактные данные гостя для подтверждения участия
}

// Response модель ответа с отмененной записью
type Response struct {
	AppointmentID uuid.UUID // ID записи о туре
	State         string    // Итоговое состояние записи
}
