package book_tour

import (
	"time"

	"github.com/google/uuid"

	"github.com/max-tl-2000/red-sub012/internal/integrations/partyservice"
)

// Outcome исход бронирования после сверки с существующими записями гостя
type Outcome string

const (
	OutcomeCreated     Outcome = "created"
	OutcomeMerged      Outcome = "merged"
	OutcomeRescheduled Outcome = "rescheduled"
)

// Request модель запроса на самостоятельное бронирование тура
type Request struct {
	PropertyID uuid.UUID                // ID объекта
	TeamID     uuid.UUID                // ID команды, обслуживающей объект
	Contact    partyservice.ContactInfo // Контактные данные гостя из веб-формы
	StartDate  time.Time                // Начало слота
	TourType   string                   // Тип тура; пустая строка - тип по умолчанию
	Resources  []uuid.UUID              // Выбранные гостем юниты (может быть пусто)
}

// Response модель ответа с результатом бронирования
type Response struct {
	AppointmentID uuid.UUID // ID записи о туре
	StaffID       uuid.UUID // Назначенный агент тура
	OwnerRecordID uuid.UUID // ID партии, которой принадлежит запись
	Start         time.Time // Начало слота
	End           time.Time // Конец слота
	TourType      string    // Тип тура
	Outcome       Outcome   // created | merged | rescheduled
}
