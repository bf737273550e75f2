package branch

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// ScheduleUpdate описывает частичное обновление расписания филиала
// nil-поля остаются без изменений
type ScheduleUpdate struct {
	Timezone             *string
	OpenTime             *types.TimeString
	CloseTime            *types.TimeString
	SlotIntervalMinutes  *int
	SameDayBufferMinutes *int
	AdvanceBookingDays   *int
}

// Repository репозиторий для работы с филиалами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория филиалов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает филиал по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Branch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"address",
		"timezone",
		"open_time",
		"close_time",
		"slot_interval_minutes",
		"same_day_buffer_minutes",
		"advance_booking_days",
		"manager_ids",
		"created_at",
		"updated_at",
	).
		From("branches").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var branch domain.Branch
	var managerIDs pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&branch.ID,
		&branch.Name,
		&branch.Address,
		&branch.Timezone,
		&branch.OpenTime,
		&branch.CloseTime,
		&branch.SlotIntervalMinutes,
		&branch.SameDayBufferMinutes,
		&branch.AdvanceBookingDays,
		&managerIDs,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBranchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan branch: %v", ErrScanRow, err)
	}

	branch.ManagerIDs = managerIDs
	branch.CreatedAt = createdAt.Time
	branch.UpdatedAt = updatedAt.Time

	return &branch, nil
}

// UpdateSchedule частично обновляет параметры расписания филиала
func (r *Repository) UpdateSchedule(ctx context.Context, id int64, update ScheduleUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("branches").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if update.Timezone != nil {
		updateBuilder = updateBuilder.Set("timezone", *update.Timezone)
	}
	if update.OpenTime != nil {
		updateBuilder = updateBuilder.Set("open_time", *update.OpenTime)
	}
	if update.CloseTime != nil {
		updateBuilder = updateBuilder.Set("close_time", *update.CloseTime)
	}
	if update.SlotIntervalMinutes != nil {
		updateBuilder = updateBuilder.Set("slot_interval_minutes", *update.SlotIntervalMinutes)
	}
	if update.SameDayBufferMinutes != nil {
		updateBuilder = updateBuilder.Set("same_day_buffer_minutes", *update.SameDayBufferMinutes)
	}
	if update.AdvanceBookingDays != nil {
		updateBuilder = updateBuilder.Set("advance_booking_days", *update.AdvanceBookingDays)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBranchNotFound
	}

	return nil
}
