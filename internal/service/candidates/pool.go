package candidates

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/max-tl-2000/red-sub012/internal/domain"
)

// PoolResolver вычисляет пул агентов, которым можно назначить тур
type PoolResolver struct {
	teamRepo TeamRepository
	logger   Logger
}

// NewPoolResolver создает новый экземпляр резолвера пула кандидатов
func NewPoolResolver(teamRepo TeamRepository, logger Logger) *PoolResolver {
	return &PoolResolver{teamRepo: teamRepo, logger: logger}
}

// Resolve возвращает упорядоченный пул кандидатов команды на указанную дату.
//
// Правила:
//   - только активные участники команды;
//   - диспетчер исключается из назначения туров; если без него пул пуст,
//     исключение снимается и диспетчер встает в конец пула;
//   - плавающий агент (состоит в нескольких командах) попадает в пул, только
//     если у него есть запись дневной доступности на эту команду и дату;
//     агент вообще без записей доступности считается доступным на любой из
//     своих команд - эта асимметрия сохраняется намеренно.
func (p *PoolResolver) Resolve(ctx context.Context, teamID uuid.UUID, day time.Time) ([]uuid.UUID, error) {
	roster, err := p.teamRepo.ListRoster(ctx, teamID)
	if err != nil {
		p.logger.Error("Resolve: failed to load roster for team=%s: %v", teamID, err)
		return nil, fmt.Errorf("%w: failed to load roster: %v", ErrInternal, err)
	}

	if len(roster) == 0 {
		return nil, ErrEmptyPool
	}

	eligible, err := p.applyFloatingRule(ctx, teamID, roster, day)
	if err != nil {
		return nil, err
	}

	if len(eligible) == 0 {
		return nil, ErrEmptyPool
	}

	agents := make([]uuid.UUID, 0, len(eligible))
	dispatchers := make([]uuid.UUID, 0, 1)
	for _, m := range eligible {
		if m.IsDispatcher() {
			dispatchers = append(dispatchers, m.UserID)
		} else {
			agents = append(agents, m.UserID)
		}
	}

	sortStaffIDs(agents)
	sortStaffIDs(dispatchers)

	// Диспетчер получает тур только когда больше некому
	if len(agents) == 0 {
		p.logger.Warn("Resolve: team=%s has no non-dispatcher agents for %s, dispatcher fallback",
			teamID, day.Format(domain.DateFormat))
		return dispatchers, nil
	}

	return agents, nil
}

// applyFloatingRule отфильтровывает плавающих агентов без записи доступности
// на эту команду и дату
func (p *PoolResolver) applyFloatingRule(ctx context.Context, teamID uuid.UUID, roster []domain.TeamMember, day time.Time) ([]domain.TeamMember, error) {
	floating := make([]uuid.UUID, 0)
	for _, m := range roster {
		if m.MultiTeam {
			floating = append(floating, m.UserID)
		}
	}

	if len(floating) == 0 {
		return roster, nil
	}

	totalEntries, err := p.teamRepo.CountEntriesForUsers(ctx, floating)
	if err != nil {
		p.logger.Error("Resolve: failed to count availability entries: %v", err)
		return nil, fmt.Errorf("%w: failed to count availability entries: %v", ErrInternal, err)
	}

	dayEntries, err := p.teamRepo.ListDayEntriesForUsers(ctx, floating, day)
	if err != nil {
		p.logger.Error("Resolve: failed to load day availability entries: %v", err)
		return nil, fmt.Errorf("%w: failed to load day availability entries: %v", ErrInternal, err)
	}

	availableHere := make(map[uuid.UUID]bool, len(dayEntries))
	for _, entry := range dayEntries {
		if entry.TeamID == teamID {
			availableHere[entry.UserID] = true
		}
	}

	eligible := make([]domain.TeamMember, 0, len(roster))
	for _, m := range roster {
		if !m.MultiTeam {
			eligible = append(eligible, m)
			continue
		}
		// Наличие хотя бы одной записи сужает доступность до явно указанных дней;
		// полное отсутствие записей - нет
		if totalEntries[m.UserID] == 0 || availableHere[m.UserID] {
			eligible = append(eligible, m)
		}
	}

	return eligible, nil
}

func sortStaffIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
}
