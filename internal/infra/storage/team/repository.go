package team

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/max-tl-2000/red-sub012/internal/domain"
	"github.com/max-tl-2000/red-sub012/pkg/dbmetrics"
	"github.com/max-tl-2000/red-sub012/pkg/psqlbuilder"
	"github.com/max-tl-2000/red-sub012/pkg/ptr"
)

// Repository репозиторий состава команд, дневной доступности плавающих агентов
// и round-robin указателя маршрутизации
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория команд
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListRoster получает активных участников команды в стабильном порядке (по user_id)
// MultiTeam выставляется, если агент состоит еще хотя бы в одной команде
func (r *Repository) ListRoster(ctx context.Context, teamID uuid.UUID) ([]domain.TeamMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"tm.user_id",
		"tm.team_id",
		"tm.roles",
		"tm.inactive",
		"EXISTS (SELECT 1 FROM team_members other"+
			" WHERE other.user_id = tm.user_id AND other.team_id <> tm.team_id AND NOT other.inactive) AS multi_team",
	).
		From("team_members tm").
		Where(squirrel.Eq{"tm.team_id": teamID, "tm.inactive": false}).
		OrderBy("tm.user_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListRoster - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRoster - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	members := make([]domain.TeamMember, 0)
	for rows.Next() {
		var m domain.TeamMember
		var roles pq.StringArray
		if err := rows.Scan(&m.UserID, &m.TeamID, &roles, &m.Inactive, &m.MultiTeam); err != nil {
			return nil, fmt.Errorf("%w: ListRoster - scan row: %v", ErrScanRow, err)
		}
		for _, role := range roles {
			m.Roles = append(m.Roles, domain.FunctionalRole(role))
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRoster - rows error: %v", ErrScanRow, err)
	}

	return members, nil
}

// GetDispatcherID получает ID диспетчера команды (функциональная роль LD)
func (r *Repository) GetDispatcherID(ctx context.Context, teamID uuid.UUID) (uuid.UUID, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("user_id").
		From("team_members").
		Where(squirrel.Eq{"team_id": teamID, "inactive": false}).
		Where("roles @> ARRAY[?]::text[]", string(domain.RoleDispatcher)).
		OrderBy("user_id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: GetDispatcherID - build select query: %v", ErrBuildQuery, err)
	}

	var dispatcherID uuid.UUID
	err = executor.QueryRowContext(ctx, query, args...).Scan(&dispatcherID)
	if err == sql.ErrNoRows {
		return uuid.Nil, ErrDispatcherNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: GetDispatcherID - scan row: %v", ErrScanRow, err)
	}

	return dispatcherID, nil
}

// ListDayEntriesForUsers получает записи дневной доступности агентов на указанную дату
// (для правила плавающих агентов)
func (r *Repository) ListDayEntriesForUsers(ctx context.Context, userIDs []uuid.UUID, day time.Time) ([]domain.DayAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("user_id", "team_id", "day").
		From("agent_day_availability").
		Where("user_id = ANY(?::uuid[])", pq.Array(userIDs)).
		Where(squirrel.Eq{"day": day.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListDayEntriesForUsers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDayEntriesForUsers - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]domain.DayAvailability, 0)
	for rows.Next() {
		var entry domain.DayAvailability
		if err := rows.Scan(&entry.UserID, &entry.TeamID, &entry.Day); err != nil {
			return nil, fmt.Errorf("%w: ListDayEntriesForUsers - scan row: %v", ErrScanRow, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDayEntriesForUsers - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

// CountEntriesForUsers подсчитывает общее число записей доступности каждого агента
// (по всем командам и датам). Агент без единой записи считается доступным везде.
func (r *Repository) CountEntriesForUsers(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("user_id", "COUNT(*)").
		From("agent_day_availability").
		Where("user_id = ANY(?::uuid[])", pq.Array(userIDs)).
		GroupBy("user_id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountEntriesForUsers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountEntriesForUsers - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int)
	for rows.Next() {
		var userID uuid.UUID
		var count int
		if err := rows.Scan(&userID, &count); err != nil {
			return nil, fmt.Errorf("%w: CountEntriesForUsers - scan row: %v", ErrScanRow, err)
		}
		counts[userID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountEntriesForUsers - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// GetRoutingStateForUpdate получает round-robin указатель команды с блокировкой строки
// Должен вызываться только внутри транзакции бронирования
func (r *Repository) GetRoutingStateForUpdate(ctx context.Context, teamID uuid.UUID) (*domain.RoutingState, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("team_id", "last_assigned_staff_id", "updated_at").
		From("team_routing_state").
		Where(squirrel.Eq{"team_id": teamID}).
		Suffix("FOR UPDATE").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRoutingStateForUpdate - build select query: %v", ErrBuildQuery, err)
	}

	var state domain.RoutingState
	var lastAssigned uuid.NullUUID
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(&state.TeamID, &lastAssigned, &updatedAt)
	if err == sql.ErrNoRows {
		// Указателя еще нет - round-robin начнется с первого агента
		return &domain.RoutingState{TeamID: teamID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoutingStateForUpdate - scan row: %v", ErrScanRow, err)
	}

	if lastAssigned.Valid {
		state.LastAssignedStaffID = ptr.Ptr(lastAssigned.UUID)
	}
	state.UpdatedAt = updatedAt.Time

	return &state, nil
}

// SaveRoutingState сохраняет round-robin указатель команды (upsert)
func (r *Repository) SaveRoutingState(ctx context.Context, teamID, staffID uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("team_routing_state").
		Columns("team_id", "last_assigned_staff_id", "updated_at").
		Values(teamID, staffID, squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (team_id) DO UPDATE SET last_assigned_staff_id = EXCLUDED.last_assigned_staff_id, updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SaveRoutingState - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveRoutingState - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}
