package leave

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

var leaveColumns = []string{
	"id",
	"barber_id",
	"branch_id",
	"type",
	"leave_date",
	"start_time",
	"duration_minutes",
	"reason",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с заявками на отсутствие барберов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую заявку на отсутствие
func (r *Repository) Create(ctx context.Context, leave *domain.LeaveRequest) (*domain.LeaveRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// start_time хранится как NULL для выходного на весь день
	var startTime interface{}
	if leave.Type == domain.LeaveShortBreak {
		startTime = leave.StartTime
	}

	query, args, err := psqlbuilder.Insert("leave_requests").
		Columns("barber_id", "branch_id", "type", "leave_date", "start_time", "duration_minutes", "reason", "status").
		Values(
			leave.BarberID,
			leave.BranchID,
			leave.Type,
			leave.LeaveDate,
			startTime,
			leave.DurationMinutes,
			leave.Reason,
			leave.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&leave.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	leave.CreatedAt = createdAt.Time
	leave.UpdatedAt = updatedAt.Time

	return leave, nil
}

// GetByID получает заявку на отсутствие по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.LeaveRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(leaveColumns...).
		From("leave_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	leaves, err := r.scanLeaves(rows)
	if err != nil {
		return nil, err
	}
	if len(leaves) == 0 {
		return nil, ErrLeaveNotFound
	}

	return leaves[0], nil
}

// GetBlockingByBarberAndDate получает заявки барбера на дату, которые блокируют слоты
// Отклоненные заявки не попадают в выдачу
func (r *Repository) GetBlockingByBarberAndDate(ctx context.Context, barberID int64, date time.Time) ([]*domain.LeaveRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(leaveColumns...).
		From("leave_requests").
		Where(squirrel.Eq{"barber_id": barberID}).
		Where(squirrel.Eq{"leave_date": date}).
		Where(squirrel.Eq{"status": []domain.LeaveStatus{domain.LeavePending, domain.LeaveApproved}}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockingByBarberAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockingByBarberAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanLeaves(rows)
}

// GetByBranch получает заявки филиала, опционально фильтруя по статусу
// Используется менеджером для разбора очереди заявок
func (r *Repository) GetByBranch(ctx context.Context, branchID int64, status *domain.LeaveStatus) ([]*domain.LeaveRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(leaveColumns...).
		From("leave_requests").
		Where(squirrel.Eq{"branch_id": branchID}).
		OrderBy("leave_date DESC, id DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranch - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranch - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanLeaves(rows)
}

// UpdateStatus обновляет статус заявки на отсутствие
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.LeaveStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("leave_requests").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrLeaveNotFound
	}

	return nil
}

// scanLeaves сканирует список заявок на отсутствие
func (r *Repository) scanLeaves(rows *sql.Rows) ([]*domain.LeaveRequest, error) {
	leaves := make([]*domain.LeaveRequest, 0)

	for rows.Next() {
		var leave domain.LeaveRequest
		var startTime sql.NullString
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&leave.ID,
			&leave.BarberID,
			&leave.BranchID,
			&leave.Type,
			&leave.LeaveDate,
			&startTime,
			&leave.DurationMinutes,
			&leave.Reason,
			&leave.Status,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanLeaves - scan row: %v", ErrScanRow, err)
		}

		if startTime.Valid {
			ts := types.TimeString("")
			if err := ts.Scan(startTime.String); err == nil {
				leave.StartTime = ts
			}
		}

		leave.CreatedAt = createdAt.Time
		leave.UpdatedAt = updatedAt.Time
		leaves = append(leaves, &leave)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanLeaves - rows error: %v", ErrScanRow, err)
	}

	return leaves, nil
}
