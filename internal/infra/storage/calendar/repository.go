package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/max-tl-2000/red-sub012/internal/domain"
	"github.com/max-tl-2000/red-sub012/pkg/dbmetrics"
	"github.com/max-tl-2000/red-sub012/pkg/psqlbuilder"
)

// UserEvent строка таблицы user_calendar_events (личные события и больничные)
type UserEvent struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Start     time.Time
	End       time.Time
	EventType string // "personal" | "sick_leave"
	IsDeleted bool
}

// TeamEvent строка таблицы team_calendar_events (блэкауты всей команды)
type TeamEvent struct {
	ID     uuid.UUID
	TeamID uuid.UUID
	Start  time.Time
	End    time.Time
}

// Repository репозиторий календарных событий агентов и команд
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория календарных событий
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListUserEventsForWindow получает личные события агентов, пересекающие окно [from, to)
// Мягко удаленные события (is_deleted) никогда не попадают в выборку
func (r *Repository) ListUserEventsForWindow(ctx context.Context, userIDs []uuid.UUID, from, to time.Time) ([]UserEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "user_id", "start_at", "end_at", "event_type").
		From("user_calendar_events").
		Where("user_id = ANY(?::uuid[])", pq.Array(userIDs)).
		Where(squirrel.Eq{"is_deleted": false}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListUserEventsForWindow - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListUserEventsForWindow - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]UserEvent, 0)
	for rows.Next() {
		var ev UserEvent
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.Start, &ev.End, &ev.EventType); err != nil {
			return nil, fmt.Errorf("%w: ListUserEventsForWindow - scan row: %v", ErrScanRow, err)
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListUserEventsForWindow - rows error: %v", ErrScanRow, err)
	}

	return events, nil
}

// ListTeamEventsForWindow получает блэкауты команды, пересекающие окно [from, to)
func (r *Repository) ListTeamEventsForWindow(ctx context.Context, teamID uuid.UUID, from, to time.Time) ([]TeamEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "team_id", "start_at", "end_at").
		From("team_calendar_events").
		Where(squirrel.Eq{"team_id": teamID, "is_deleted": false}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListTeamEventsForWindow - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTeamEventsForWindow - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]TeamEvent, 0)
	for rows.Next() {
		var ev TeamEvent
		if err := rows.Scan(&ev.ID, &ev.TeamID, &ev.Start, &ev.End); err != nil {
			return nil, fmt.Errorf("%w: ListTeamEventsForWindow - scan row: %v", ErrScanRow, err)
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTeamEventsForWindow - rows error: %v", ErrScanRow, err)
	}

	return events, nil
}

// TeamHasEventOverlapping проверяет, перекрывает ли блэкаут команды слот [start, end)
func (r *Repository) TeamHasEventOverlapping(ctx context.Context, teamID uuid.UUID, start, end time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*) > 0").
		From("team_calendar_events").
		Where(squirrel.Eq{"team_id": teamID, "is_deleted": false}).
		Where(squirrel.Lt{"start_at": end}).
		Where(squirrel.Gt{"end_at": start}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: TeamHasEventOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	var overlapping bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&overlapping); err != nil {
		return false, fmt.Errorf("%w: TeamHasEventOverlapping - scan row: %v", ErrScanRow, err)
	}

	return overlapping, nil
}

// ToBusyInterval конвертирует личное событие в занятый интервал агента
func (e UserEvent) ToBusyInterval() domain.BusyInterval {
	source := domain.BusySourcePersonal
	if e.EventType == "sick_leave" {
		source = domain.BusySourceSickLeave
	}
	return domain.BusyInterval{
		StaffID: e.UserID,
		Start:   e.Start,
		End:     e.End,
		Source:  source,
	}
}
