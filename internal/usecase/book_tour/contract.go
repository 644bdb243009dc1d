package book_tour

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/max-tl-2000/red-sub012/internal/domain"
	"github.com/max-tl-2000/red-sub012/internal/infra/events"
	"github.com/max-tl-2000/red-sub012/internal/integrations/partyservice"
	"github.com/max-tl-2000/red-sub012/internal/integrations/propertyservice"
	"github.com/max-tl-2000/red-sub012/internal/service/availability"
	"github.com/max-tl-2000/red-sub012/internal/service/candidates"
)

// AppointmentRepository интерфейс репозитория туров
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	ListActiveByRequester(ctx context.Context, requesterID uuid.UUID) ([]*domain.Appointment, error)
	CountSameDayByStaff(ctx context.Context, teamID uuid.UUID, dayStart, dayEnd time.Time) (map[uuid.UUID]int, error)
	UpdateSlotAndAgent(ctx context.Context, id uuid.UUID, start, end time.Time, staffID uuid.UUID) error
	UpdateResources(ctx context.Context, id uuid.UUID, resources []uuid.UUID) error
}

// CalendarRepository интерфейс репозитория календарных событий
type CalendarRepository interface {
	TeamHasEventOverlapping(ctx context.Context, teamID uuid.UUID, start, end time.Time) (bool, error)
}

// AvailabilityService интерфейс сервиса агрегации занятости агентов
type AvailabilityService interface {
	BusyIntervalsFor(ctx context.Context, teamID uuid.UUID, staffIDs []uuid.UUID, from, to time.Time) (*availability.Availability, error)
}

// CandidatePool интерфейс резолвера пула кандидатов
type CandidatePool interface {
	Resolve(ctx context.Context, teamID uuid.UUID, day time.Time) ([]uuid.UUID, error)
}

// AgentSelector интерфейс детерминированного выбора агента
type AgentSelector interface {
	Select(pool []uuid.UUID, req candidates.SelectionRequest, checker candidates.SlotChecker) (uuid.UUID, error)
}

// OwnerAssigner интерфейс назначения владельца новой партии
type OwnerAssigner interface {
	AssignOwner(ctx context.Context, teamID uuid.UUID, strategy domain.RoutingStrategy) (uuid.UUID, error)
}

// PartyServiceClient интерфейс клиента сервиса партий
type PartyServiceClient interface {
	ResolveRequester(ctx context.Context, contact partyservice.ContactInfo) (*partyservice.Requester, error)
	GetActiveParty(ctx context.Context, personID, propertyID uuid.UUID) (*partyservice.Party, error)
	CreateParty(ctx context.Context, createReq partyservice.CreatePartyRequest) (*partyservice.Party, error)
}

// PropertyServiceClient интерфейс клиента сервиса объектов
type PropertyServiceClient interface {
	GetPropertySettings(ctx context.Context, propertyID uuid.UUID) (*propertyservice.PropertySettings, error)
	GetTeamSettings(ctx context.Context, teamID uuid.UUID) (*propertyservice.TeamSettings, error)
}

// EventPublisher интерфейс публикации доменных событий
type EventPublisher interface {
	PublishAppointmentBooked(ctx context.Context, event events.AppointmentBooked) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
