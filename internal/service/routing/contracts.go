package routing

import (
	"context"

	"github.com/google/uuid"

	"github.com/max-tl-2000/red-sub012/internal/domain"
)

// TeamRepository интерфейс репозитория команд
type TeamRepository interface {
	ListRoster(ctx context.Context, teamID uuid.UUID) ([]domain.TeamMember, error)
	GetDispatcherID(ctx context.Context, teamID uuid.UUID) (uuid.UUID, error)
	GetRoutingStateForUpdate(ctx context.Context, teamID uuid.UUID) (*domain.RoutingState, error)
	SaveRoutingState(ctx context.Context, teamID, staffID uuid.UUID) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
