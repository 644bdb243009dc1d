package routing

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/max-tl-2000/red-sub012/internal/domain"
)

// Service назначает владельца новой партии (owning record) по стратегии команды.
// Агент тура и владелец партии - независимые назначения: диспетчер может
// владеть партией, но тур ему достается только в крайнем случае.
type Service struct {
	teamRepo TeamRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса маршрутизации
func NewService(teamRepo TeamRepository, logger Logger) *Service {
	return &Service{teamRepo: teamRepo, logger: logger}
}

// AssignOwner возвращает владельца для новой партии команды.
// Вызывается внутри транзакции бронирования: round-robin указатель читается
// с блокировкой FOR UPDATE, чтобы два параллельных запроса не получили
// одного и того же "следующего" агента.
func (s *Service) AssignOwner(ctx context.Context, teamID uuid.UUID, strategy domain.RoutingStrategy) (uuid.UUID, error) {
	switch strategy {
	case domain.RoutingDispatcher:
		return s.assignDispatcher(ctx, teamID)
	case domain.RoutingRoundRobin:
		return s.assignRoundRobin(ctx, teamID)
	default:
		return uuid.Nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

func (s *Service) assignDispatcher(ctx context.Context, teamID uuid.UUID) (uuid.UUID, error) {
	dispatcherID, err := s.teamRepo.GetDispatcherID(ctx, teamID)
	if err != nil {
		s.logger.Error("AssignOwner: failed to get dispatcher for team=%s: %v", teamID, err)
		return uuid.Nil, fmt.Errorf("%w: failed to get dispatcher: %v", ErrInternal, err)
	}
	return dispatcherID, nil
}

func (s *Service) assignRoundRobin(ctx context.Context, teamID uuid.UUID) (uuid.UUID, error) {
	roster, err := s.teamRepo.ListRoster(ctx, teamID)
	if err != nil {
		s.logger.Error("AssignOwner: failed to load roster for team=%s: %v", teamID, err)
		return uuid.Nil, fmt.Errorf("%w: failed to load roster: %v", ErrInternal, err)
	}

	// Диспетчер не участвует в round-robin
	candidates := make([]uuid.UUID, 0, len(roster))
	for _, m := range roster {
		if m.Inactive || m.IsDispatcher() {
			continue
		}
		candidates = append(candidates, m.UserID)
	}

	if len(candidates) == 0 {
		s.logger.Warn("AssignOwner: team=%s has no round-robin candidates, falling back to dispatcher", teamID)
		dispatcherID, err := s.teamRepo.GetDispatcherID(ctx, teamID)
		if err != nil {
			return uuid.Nil, errors.Join(ErrNoAssignableStaff, err)
		}
		return dispatcherID, nil
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].String() < candidates[j].String() })

	state, err := s.teamRepo.GetRoutingStateForUpdate(ctx, teamID)
	if err != nil {
		s.logger.Error("AssignOwner: failed to get routing state for team=%s: %v", teamID, err)
		return uuid.Nil, fmt.Errorf("%w: failed to get routing state: %v", ErrInternal, err)
	}

	next := nextAfter(candidates, state.LastAssignedStaffID)

	if err := s.teamRepo.SaveRoutingState(ctx, teamID, next); err != nil {
		s.logger.Error("AssignOwner: failed to save routing state for team=%s: %v", teamID, err)
		return uuid.Nil, fmt.Errorf("%w: failed to save routing state: %v", ErrInternal, err)
	}

	s.logger.Info("AssignOwner: round-robin selected %s for team=%s", next, teamID)
	return next, nil
}

// nextAfter возвращает первого кандидата после last в стабильном порядке ростера
// Если указатель пуст или указывает на выбывшего агента - первого кандидата
func nextAfter(candidates []uuid.UUID, last *uuid.UUID) uuid.UUID {
	if last == nil {
		return candidates[0]
	}
	for i, id := range candidates {
		if id == *last {
			return candidates[(i+1)%len(candidates)]
		}
	}
	return candidates[0]
}
