package appointment

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
)

var appointmentColumns = []string{
	"id",
	"owner_record_id",
	"team_id",
	"staff_ids",
	"start_at",
	"end_at",
	"resource_refs",
	"participant_refs",
	"state",
	"tour_type",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями о турах
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория туров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись о туре
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if appt.ID == uuid.Nil {
		appt.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"id",
			"owner_record_id",
			"team_id",
			"staff_ids",
			"start_at",
			"end_at",
			"resource_refs",
			"participant_refs",
			"state",
			"tour_type",
		).
		Values(
			appt.ID,
			appt.OwnerRecordID,
			appt.TeamID,
			pq.Array(appt.AssignedStaffIDs),
			appt.Start,
			appt.End,
			pq.Array(appt.ResourceRefs),
			pq.Array(appt.ParticipantRefs),
			appt.State,
			appt.TourType,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись о туре по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// ListActiveByRequester получает активные туры, в которых участвует гость
// Используется в фазе reconciliation, поэтому внутри транзакции блокирует строки (FOR UPDATE)
func (r *Repository) ListActiveByRequester(ctx context.Context, requesterID uuid.UUID) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"state": domain.StateActive}).
		Where("participant_refs @> ARRAY[?]::uuid[]", requesterID).
		OrderBy("start_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByRequester - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByRequester - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListActiveByTeamWindow получает активные туры команды, пересекающие окно [from, to)
// Внутри транзакции блокирует строки (FOR UPDATE) - защита от двойного бронирования
func (r *Repository) ListActiveByTeamWindow(ctx context.Context, teamID uuid.UUID, from, to time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"team_id": teamID, "state": domain.StateActive}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByTeamWindow - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByTeamWindow - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// CountSameDayByStaff подсчитывает количество активных туров каждого агента
// команды за календарный день [dayStart, dayEnd) - fairness score
func (r *Repository) CountSameDayByStaff(ctx context.Context, teamID uuid.UUID, dayStart, dayEnd time.Time) (map[uuid.UUID]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("unnest(staff_ids) AS staff_id", "COUNT(*)").
		From("appointments").
		Where(squirrel.Eq{"team_id": teamID, "state": domain.StateActive}).
		Where(squirrel.GtOrEq{"start_at": dayStart}).
		Where(squirrel.Lt{"start_at": dayEnd}).
		GroupBy("staff_id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountSameDayByStaff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountSameDayByStaff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int)
	for rows.Next() {
		var staffID uuid.UUID
		var count int
		if err := rows.Scan(&staffID, &count); err != nil {
			return nil, fmt.Errorf("%w: CountSameDayByStaff - scan row: %v", ErrScanRow, err)
		}
		counts[staffID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountSameDayByStaff - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// UpdateSlotAndAgent переносит тур на другой слот и переназначает агента (reschedule)
// ID записи не меняется
func (r *Repository) UpdateSlotAndAgent(ctx context.Context, id uuid.UUID, start, end time.Time, staffID uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("start_at", start).
		Set("end_at", end).
		Set("staff_ids", pq.Array([]uuid.UUID{staffID})).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "state": domain.StateActive}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSlotAndAgent - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateSlotAndAgent")
}

// UpdateResources заменяет набор юнитов тура (merge)
func (r *Repository) UpdateResources(ctx context.Context, id uuid.UUID, resources []uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("resource_refs", pq.Array(resources)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "state": domain.StateActive}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateResources - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateResources")
}

// UpdateState переводит тур в новое состояние
func (r *Repository) UpdateState(ctx context.Context, id uuid.UUID, state domain.AppointmentState) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("state", state).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateState - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateState")
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.OwnerRecordID,
		&appt.TeamID,
		pq.Array(&appt.AssignedStaffIDs),
		&appt.Start,
		&appt.End,
		pq.Array(&appt.ResourceRefs),
		pq.Array(&appt.ParticipantRefs),
		&appt.State,
		&appt.TourType,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
