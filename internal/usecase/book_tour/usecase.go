package book_tour

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/max-tl-2000/red-sub012/internal/domain"
	"github.com/max-tl-2000/red-sub012/internal/infra/events"
	partyClient "github.com/max-tl-2000/red-sub012/internal/integrations/partyservice"
	propertyClient "github.com/max-tl-2000/red-sub012/internal/integrations/propertyservice"
	"github.com/max-tl-2000/red-sub012/internal/service/candidates"
)

// UseCase use case самостоятельного бронирования тура
type UseCase struct {
	apptRepo        AppointmentRepository
	calendarRepo    CalendarRepository
	availability    AvailabilityService
	pool            CandidatePool
	selector        AgentSelector
	ownerAssigner   OwnerAssigner
	partyService    PartyServiceClient
	propertyService PropertyServiceClient
	publisher       EventPublisher
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	calendarRepo CalendarRepository,
	availabilitySvc AvailabilityService,
	pool CandidatePool,
	selector AgentSelector,
	ownerAssigner OwnerAssigner,
	partyService PartyServiceClient,
	propertyService PropertyServiceClient,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:        apptRepo,
		calendarRepo:    calendarRepo,
		availability:    availabilitySvc,
		pool:            pool,
		selector:        selector,
		ownerAssigner:   ownerAssigner,
		partyService:    partyService,
		propertyService: propertyService,
		publisher:       publisher,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case бронирования тура
// Сверка с существующими записями, выбор агента и запись выполняются в одной
// сериализуемой транзакции - два параллельных запроса не получат один слот
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookTour: property=%s, team=%s, start=%s, tourType=%q, resources=%d",
		req.PropertyID, req.TeamID, req.StartDate.Format(time.RFC3339), req.TourType, len(req.Resources))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookTour: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем настройки объекта (таймзона, доступные типы туров)
	propertySettings, err := uc.propertyService.GetPropertySettings(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, propertyClient.ErrPropertyNotFound) {
			uc.logger.Warn("BookTour: property %s not found", req.PropertyID)
			return nil, ErrPropertyNotFound
		}
		uc.logger.Error("BookTour: failed to get property settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get property settings: %v", ErrInternal, err)
	}

	tz, err := time.LoadLocation(propertySettings.Timezone)
	if err != nil {
		uc.logger.Error("BookTour: invalid property timezone %q: %v", propertySettings.Timezone, err)
		return nil, fmt.Errorf("%w: invalid property timezone %q: %v", ErrInternal, propertySettings.Timezone, err)
	}

	// 4. Получаем настройки команды (длительность слота, стратегия маршрутизации)
	teamSettings, err := uc.propertyService.GetTeamSettings(ctx, req.TeamID)
	if err != nil {
		if errors.Is(err, propertyClient.ErrTeamNotFound) {
			uc.logger.Warn("BookTour: team %s not found", req.TeamID)
			return nil, ErrTeamNotFound
		}
		uc.logger.Error("BookTour: failed to get team settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get team settings: %v", ErrInternal, err)
	}

	// 5. Валидация слота и типа тура
	if err := validateStartDate(req.StartDate, now); err != nil {
		uc.logger.Warn("BookTour: start date validation failed: %v", err)
		return nil, err
	}

	if err := validateSlotAlignment(req.StartDate, teamSettings.SlotDurationMinutes, tz); err != nil {
		uc.logger.Warn("BookTour: slot alignment validation failed: %v", err)
		return nil, err
	}

	tourType, err := validateTourType(req.TourType, propertySettings.TourTypesAvailable)
	if err != nil {
		uc.logger.Warn("BookTour: tour type validation failed: %v", err)
		return nil, err
	}

	start := req.StartDate
	end := start.Add(time.Duration(teamSettings.SlotDurationMinutes) * time.Minute)

	// 6. Сопоставляем гостя с персоной
	requester, err := uc.partyService.ResolveRequester(ctx, req.Contact)
	if err != nil {
		uc.logger.Error("BookTour: failed to resolve requester: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve requester: %v", ErrInternal, err)
	}

	// 7. Ищем активную партию гостя; её может не быть - тогда она будет создана
	party, err := uc.partyService.GetActiveParty(ctx, requester.PersonID, req.PropertyID)
	if err != nil && !errors.Is(err, partyClient.ErrPartyNotFound) {
		uc.logger.Error("BookTour: failed to get active party: %v", err)
		return nil, fmt.Errorf("%w: failed to get active party: %v", ErrInternal, err)
	}

	var result *domain.Appointment
	var outcome Outcome

	// 8. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Блэкаут команды закрывает слот для всех агентов сразу
		blocked, err := uc.calendarRepo.TeamHasEventOverlapping(txCtx, req.TeamID, start, end)
		if err != nil {
			uc.logger.Error("BookTour: failed to check team events: %v", err)
			return fmt.Errorf("%w: failed to check team events: %v", ErrInternal, err)
		}
		if blocked {
			uc.logger.Warn("BookTour: slot [%s, %s) is blocked by a team event",
				start.Format(time.RFC3339), end.Format(time.RFC3339))
			return ErrSlotNotAvailable
		}

		// 8.2. Активные записи гостя с блокировкой строк (FOR UPDATE)
		existing, err := uc.apptRepo.ListActiveByRequester(txCtx, requester.PersonID)
		if err != nil {
			uc.logger.Error("BookTour: failed to list requester appointments: %v", err)
			return fmt.Errorf("%w: failed to list requester appointments: %v", ErrInternal, err)
		}

		// 8.3. Сверка с существующими записями
		col := resolveCollision(existing, start, end, req.Resources)

		switch col.Kind {
		case collisionDuplicate:
			uc.logger.Warn("BookTour: duplicate of appointment %s", col.Appointment.ID)
			return ErrDuplicateAppointment

		case collisionMerge:
			return uc.mergeIntoExisting(txCtx, col.Appointment, req.Resources, &result, &outcome)

		case collisionReschedule:
			return uc.rescheduleExisting(txCtx, col.Appointment, req, party, start, end, tz, &result, &outcome)

		default:
			return uc.createAppointment(txCtx, req, requester, party, teamSettings, tourType, start, end, tz, &result, &outcome)
		}
	})

	if err != nil {
		// Проигравшая сериализуемая транзакция - это проигранная гонка за слот,
		// а не сбой сервиса
		if isSerializationFailure(err) {
			uc.logger.Warn("BookTour: lost slot race for [%s, %s): %v",
				start.Format(time.RFC3339), end.Format(time.RFC3339), err)
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	uc.logger.Info("BookTour: %s appointment %s, agent=%s", outcome, result.ID, result.TourAgentID())

	// 9. Событие публикуется после коммита; сбой публикации не откатывает бронь
	uc.publishBooked(ctx, result, outcome)

	return &Response{
		AppointmentID: result.ID,
		StaffID:       result.TourAgentID(),
		OwnerRecordID: result.OwnerRecordID,
		Start:         result.Start,
		End:           result.End,
		TourType:      string(result.TourType),
		Outcome:       outcome,
	}, nil
}

// mergeIntoExisting дописывает юниты в существующую запись того же слота
// Слот и агент не меняются, поэтому доступность не перепроверяется
func (uc *UseCase) mergeIntoExisting(ctx context.Context, appt *domain.Appointment, resources []uuid.UUID, result **domain.Appointment, outcome *Outcome) error {
	appt.MergeResources(resources)

	if err := uc.apptRepo.UpdateResources(ctx, appt.ID, appt.ResourceRefs); err != nil {
		uc.logger.Error("BookTour: failed to merge resources into appointment %s: %v", appt.ID, err)
		return fmt.Errorf("%w: failed to merge resources: %v", ErrInternal, err)
	}

	*result = appt
	*outcome = OutcomeMerged
	return nil
}

// rescheduleExisting переносит существующую запись гостя на новый слот
// Предпочтение отдается текущему агенту записи, затем владельцам партии
func (uc *UseCase) rescheduleExisting(
	ctx context.Context,
	appt *domain.Appointment,
	req *Request,
	party *partyClient.Party,
	start, end time.Time,
	tz *time.Location,
	result **domain.Appointment,
	outcome *Outcome,
) error {
	staffID, err := uc.selectAgent(ctx, req.TeamID, start, end, tz, preferredChain(appt.TourAgentID(), ownershipOf(party)))
	if err != nil {
		return err
	}

	if err := uc.apptRepo.UpdateSlotAndAgent(ctx, appt.ID, start, end, staffID); err != nil {
		uc.logger.Error("BookTour: failed to reschedule appointment %s: %v", appt.ID, err)
		return fmt.Errorf("%w: failed to reschedule appointment: %v", ErrInternal, err)
	}

	appt.Start = start
	appt.End = end
	appt.AssignedStaffIDs = []uuid.UUID{staffID}

	*result = appt
	*outcome = OutcomeRescheduled
	return nil
}

// createAppointment создает новую запись; при отсутствии партии сначала
// создает партию с владельцем, назначенным по стратегии команды
func (uc *UseCase) createAppointment(
	ctx context.Context,
	req *Request,
	requester *partyClient.Requester,
	party *partyClient.Party,
	teamSettings *propertyClient.TeamSettings,
	tourType domain.TourType,
	start, end time.Time,
	tz *time.Location,
	result **domain.Appointment,
	outcome *Outcome,
) error {
	staffID, err := uc.selectAgent(ctx, req.TeamID, start, end, tz, preferredChain(uuid.Nil, ownershipOf(party)))
	if err != nil {
		return err
	}

	if party == nil {
		ownerID, err := uc.ownerAssigner.AssignOwner(ctx, req.TeamID, teamSettings.RoutingStrategy)
		if err != nil {
			uc.logger.Error("BookTour: failed to assign party owner: %v", err)
			return fmt.Errorf("%w: failed to assign party owner: %v", ErrInternal, err)
		}

		created, err := uc.partyService.CreateParty(ctx, partyClient.CreatePartyRequest{
			PersonID:   requester.PersonID,
			PropertyID: req.PropertyID,
			TeamID:     req.TeamID,
			OwnerID:    ownerID,
		})
		if err != nil {
			uc.logger.Error("BookTour: failed to create party: %v", err)
			return fmt.Errorf("%w: failed to create party: %v", ErrInternal, err)
		}

		uc.logger.Info("BookTour: created party %s with owner %s", created.ID, ownerID)
		party = created
	}

	appt := &domain.Appointment{
		OwnerRecordID:    party.ID,
		TeamID:           req.TeamID,
		AssignedStaffIDs: []uuid.UUID{staffID},
		Start:            start,
		End:              end,
		ResourceRefs:     req.Resources,
		ParticipantRefs:  []uuid.UUID{requester.PersonID},
		State:            domain.StateActive,
		TourType:         tourType,
	}

	created, err := uc.apptRepo.Create(ctx, appt)
	if err != nil {
		uc.logger.Error("BookTour: failed to create appointment: %v", err)
		return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
	}

	*result = created
	*outcome = OutcomeCreated
	return nil
}

// selectAgent вычисляет пул кандидатов на день слота, агрегирует занятость
// и выбирает агента по детерминированному fairness-правилу
func (uc *UseCase) selectAgent(ctx context.Context, teamID uuid.UUID, start, end time.Time, tz *time.Location, preferred []uuid.UUID) (uuid.UUID, error) {
	dayStart := domain.StartOfDay(start, tz)
	dayEnd := dayStart.AddDate(0, 0, 1)

	pool, err := uc.pool.Resolve(ctx, teamID, dayStart)
	if err != nil {
		if errors.Is(err, candidates.ErrEmptyPool) {
			uc.logger.Warn("BookTour: team %s has no eligible candidates", teamID)
			return uuid.Nil, ErrSlotNotAvailable
		}
		uc.logger.Error("BookTour: failed to resolve candidate pool: %v", err)
		return uuid.Nil, fmt.Errorf("%w: failed to resolve candidate pool: %v", ErrInternal, err)
	}

	avail, err := uc.availability.BusyIntervalsFor(ctx, teamID, pool, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("BookTour: failed to aggregate availability: %v", err)
		return uuid.Nil, fmt.Errorf("%w: failed to aggregate availability: %v", ErrInternal, err)
	}

	counts, err := uc.apptRepo.CountSameDayByStaff(ctx, teamID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("BookTour: failed to count same-day appointments: %v", err)
		return uuid.Nil, fmt.Errorf("%w: failed to count same-day appointments: %v", ErrInternal, err)
	}

	staffID, err := uc.selector.Select(pool, candidates.SelectionRequest{
		Start:         start,
		End:           end,
		Preferred:     preferred,
		SameDayCounts: counts,
	}, avail)
	if err != nil {
		if errors.Is(err, candidates.ErrSlotNotAvailable) {
			uc.logger.Warn("BookTour: no free agent for slot [%s, %s)",
				start.Format(time.RFC3339), end.Format(time.RFC3339))
			return uuid.Nil, ErrSlotNotAvailable
		}
		uc.logger.Error("BookTour: agent selection failed: %v", err)
		return uuid.Nil, fmt.Errorf("%w: agent selection failed: %v", ErrInternal, err)
	}

	return staffID, nil
}

// publishBooked публикует доменное событие об успешном бронировании
func (uc *UseCase) publishBooked(ctx context.Context, appt *domain.Appointment, outcome Outcome) {
	err := uc.publisher.PublishAppointmentBooked(ctx, events.AppointmentBooked{
		AppointmentID: appt.ID,
		StaffID:       appt.TourAgentID(),
		OwnerRecordID: appt.OwnerRecordID,
		Outcome:       string(outcome),
	})
	if err != nil {
		uc.logger.Error("BookTour: failed to publish AppointmentBooked for %s: %v", appt.ID, err)
	}
}

// Код ошибки Postgres serialization_failure
const pqSerializationFailure = pq.ErrorCode("40001")

// isSerializationFailure распознает обрыв сериализуемой транзакции,
// проигравшей конкурентному бронированию
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqSerializationFailure
}

// ownershipOf извлекает данные владения из партии; nil-безопасно
func ownershipOf(party *partyClient.Party) *partyOwnership {
	if party == nil {
		return nil
	}
	return &partyOwnership{
		OwnerID:         party.OwnerID,
		CollaboratorIDs: party.CollaboratorIDs,
	}
}
