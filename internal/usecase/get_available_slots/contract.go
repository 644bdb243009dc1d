package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/max-tl-2000/red-sub012/internal/integrations/propertyservice"
	"github.com/max-tl-2000/red-sub012/internal/service/availability"
)

// AvailabilityService интерфейс сервиса агрегации занятости агентов
type AvailabilityService interface {
	BusyIntervalsFor(ctx context.Context, teamID uuid.UUID, staffIDs []uuid.UUID, from, to time.Time) (*availability.Availability, error)
}

// CandidatePool интерфейс резолвера пула кандидатов
type CandidatePool interface {
	Resolve(ctx context.Context, teamID uuid.UUID, day time.Time) ([]uuid.UUID, error)
}

// PropertyServiceClient интерфейс клиента сервиса объектов
type PropertyServiceClient interface {
	GetPropertySettings(ctx context.Context, propertyID uuid.UUID) (*propertyservice.PropertySettings, error)
	GetTeamSettings(ctx context.Context, teamID uuid.UUID) (*propertyservice.TeamSettings, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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
