package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/max-tl-2000/red-sub012/internal/domain"
	"github.com/max-tl-2000/red-sub012/internal/infra/storage/calendar"
)

// AppointmentRepository интерфейс репозитория туров
type AppointmentRepository interface {
	ListActiveByTeamWindow(ctx context.Context, teamID uuid.UUID, from, to time.Time) ([]*domain.Appointment, error)
}

// CalendarRepository интерфейс репозитория календарных событий
type CalendarRepository interface {
	ListUserEventsForWindow(ctx context.Context, userIDs []uuid.UUID, from, to time.Time) ([]calendar.UserEvent, error)
	ListTeamEventsForWindow(ctx context.Context, teamID uuid.UUID, from, to time.Time) ([]calendar.TeamEvent, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
