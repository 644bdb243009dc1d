package candidates

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/max-tl-2000/red-sub012/internal/domain"
)

// TeamRepository интерфейс репозитория команд
type TeamRepository interface {
	ListRoster(ctx context.Context, teamID uuid.UUID) ([]domain.TeamMember, error)
	ListDayEntriesForUsers(ctx context.Context, userIDs []uuid.UUID, day time.Time) ([]domain.DayAvailability, error)
	CountEntriesForUsers(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
