package cancel_tour

import (
	"context"

	"github.com/google/uuid"

	"github.com/max-tl-2000/red-sub012/internal/domain"
	"github.com/max-tl-2000/red-sub012/internal/integrations/partyservice"
)

// AppointmentRepository интерфейс репозитория туров
type AppointmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	UpdateState(ctx context.Context, id uuid.UUID, state domain.AppointmentState) error
}

// PartyServiceClient интерфейс клиента сервиса партий
type PartyServiceClient interface {
	ResolveRequester(ctx context.Context, contact partyservice.ContactInfo) (*partyservice.Requester, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
