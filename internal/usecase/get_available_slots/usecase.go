package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/max-tl-2000/red-sub012/internal/domain"
	propertyClient "github.com/max-tl-2000/red-sub012/internal/integrations/propertyservice"
	"github.com/max-tl-2000/red-sub012/internal/service/candidates"
)

// UseCase use case получения доступных слотов
type UseCase struct {
	availability    AvailabilityService
	pool            CandidatePool
	propertyService PropertyServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilitySvc AvailabilityService,
	pool CandidatePool,
	propertyService PropertyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		availability:    availabilitySvc,
		pool:            pool,
		propertyService: propertyService,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Читает данные в read-only транзакции, чтобы сетка считалась по
// согласованному снимку записей и календарей
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: property=%s, team=%s, from=%s, days=%d",
		req.PropertyID, req.TeamID, req.FromDate.Format(domain.DateFormat), req.Days)

	// 1. Валидация входных данных
	days, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Настройки объекта и команды
	propertySettings, err := uc.propertyService.GetPropertySettings(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, propertyClient.ErrPropertyNotFound) {
			return nil, ErrPropertyNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get property settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get property settings: %v", ErrInternal, err)
	}

	tz, err := time.LoadLocation(propertySettings.Timezone)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid property timezone %q: %v", propertySettings.Timezone, err)
		return nil, fmt.Errorf("%w: invalid property timezone %q: %v", ErrInternal, propertySettings.Timezone, err)
	}

	teamSettings, err := uc.propertyService.GetTeamSettings(ctx, req.TeamID)
	if err != nil {
		if errors.Is(err, propertyClient.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get team settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get team settings: %v", ErrInternal, err)
	}

	slot := time.Duration(teamSettings.SlotDurationMinutes) * time.Minute
	result := make([]Slot, 0)

	// 3. Считаем сетку по каждому дню окна на согласованном снимке
	err = uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		for _, dayStart := range dayStartsForWindow(req.FromDate, days, tz) {
			daySlots, err := uc.slotsForDay(txCtx, req, teamSettings, dayStart, slot, now)
			if err != nil {
				return err
			}
			result = append(result, daySlots...)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: %d slots for team=%s", len(result), req.TeamID)

	return &Response{
		PropertyID: req.PropertyID,
		TeamID:     req.TeamID,
		Timezone:   propertySettings.Timezone,
		Slots:      result,
	}, nil
}

// slotsForDay считает свободные слоты одного календарного дня
func (uc *UseCase) slotsForDay(
	ctx context.Context,
	req *Request,
	settings *propertyClient.TeamSettings,
	dayStart time.Time,
	slot time.Duration,
	now time.Time,
) ([]Slot, error) {
	starts := generateDaySlots(dayStart, settings, now)
	if len(starts) == 0 {
		return nil, nil
	}

	pool, err := uc.pool.Resolve(ctx, req.TeamID, dayStart)
	if err != nil {
		// День без кандидатов - просто день без слотов
		if errors.Is(err, candidates.ErrEmptyPool) {
			return nil, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to resolve candidate pool: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve candidate pool: %v", ErrInternal, err)
	}

	avail, err := uc.availability.BusyIntervalsFor(ctx, req.TeamID, pool, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to aggregate availability: %v", err)
		return nil, fmt.Errorf("%w: failed to aggregate availability: %v", ErrInternal, err)
	}

	slots := make([]Slot, 0, len(starts))
	for _, start := range starts {
		end := start.Add(slot)
		free := avail.FreeStaff(pool, start, end)
		if len(free) == 0 {
			continue
		}
		slots = append(slots, Slot{Start: start, End: end, FreeAgents: len(free)})
	}

	return slots, nil
}
