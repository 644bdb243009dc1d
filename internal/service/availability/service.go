package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/max-tl-2000/red-sub012/internal/domain"
)

// Service сервис агрегации занятости агентов из трех источников:
// активные туры, личные события/больничные, блэкауты всей команды
type Service struct {
	apptRepo     AppointmentRepository
	calendarRepo CalendarRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(apptRepo AppointmentRepository, calendarRepo CalendarRepository, logger Logger) *Service {
	return &Service{
		apptRepo:     apptRepo,
		calendarRepo: calendarRepo,
		logger:       logger,
	}
}

// BusyIntervalsFor собирает занятые интервалы агентов внутри окна [from, to)
// Отмененные туры и мягко удаленные события не попадают в результат.
// Блэкаут команды превращается в синтетический интервал для каждого агента из staffIDs.
func (s *Service) BusyIntervalsFor(ctx context.Context, teamID uuid.UUID, staffIDs []uuid.UUID, from, to time.Time) (*Availability, error) {
	intervals := make([]domain.BusyInterval, 0)

	// 1. Активные туры команды
	appointments, err := s.apptRepo.ListActiveByTeamWindow(ctx, teamID, from, to)
	if err != nil {
		s.logger.Error("BusyIntervalsFor: failed to load appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to load appointments: %v", ErrInternal, err)
	}
	for _, appt := range appointments {
		for _, staffID := range appt.AssignedStaffIDs {
			intervals = append(intervals, domain.BusyInterval{
				StaffID: staffID,
				Start:   appt.Start,
				End:     appt.End,
				Source:  domain.BusySourceAppointment,
			})
		}
	}

	// 2. Личные события и больничные (без мягко удаленных - фильтруется в репозитории)
	userEvents, err := s.calendarRepo.ListUserEventsForWindow(ctx, staffIDs, from, to)
	if err != nil {
		s.logger.Error("BusyIntervalsFor: failed to load user events: %v", err)
		return nil, fmt.Errorf("%w: failed to load user events: %v", ErrInternal, err)
	}
	for _, ev := range userEvents {
		intervals = append(intervals, ev.ToBusyInterval())
	}

	// 3. Блэкауты команды - блокируют каждого агента независимо от владельца события
	teamEvents, err := s.calendarRepo.ListTeamEventsForWindow(ctx, teamID, from, to)
	if err != nil {
		s.logger.Error("BusyIntervalsFor: failed to load team events: %v", err)
		return nil, fmt.Errorf("%w: failed to load team events: %v", ErrInternal, err)
	}
	for _, ev := range teamEvents {
		for _, staffID := range staffIDs {
			intervals = append(intervals, domain.BusyInterval{
				StaffID: staffID,
				Start:   ev.Start,
				End:     ev.End,
				Source:  domain.BusySourceTeamEvent,
			})
		}
	}

	return NewAvailability(intervals), nil
}
