package barber

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/psqlbuilder"
)

var barberColumns = []string{
	"id",
	"branch_id",
	"name",
	"commission_rate",
	"weekly_off_days",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с барберами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория барберов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает барбера по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Barber, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(barberColumns...).
		From("barbers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	barber, err := r.scanBarber(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBarberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan barber: %v", ErrScanRow, err)
	}

	return barber, nil
}

// GetByBranch получает барберов филиала
// activeOnly отсекает уволенных барберов
func (r *Repository) GetByBranch(ctx context.Context, branchID int64, activeOnly bool) ([]*domain.Barber, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(barberColumns...).
		From("barbers").
		Where(squirrel.Eq{"branch_id": branchID}).
		OrderBy("id ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": true})
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

	barbers := make([]*domain.Barber, 0)
	for rows.Next() {
		var barber domain.Barber
		var offDays pq.Int64Array
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&barber.ID,
			&barber.BranchID,
			&barber.Name,
			&barber.CommissionRate,
			&offDays,
			&barber.Active,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByBranch - scan row: %v", ErrScanRow, err)
		}

		barber.WeeklyOffDays = toIntSlice(offDays)
		barber.CreatedAt = createdAt.Time
		barber.UpdatedAt = updatedAt.Time
		barbers = append(barbers, &barber)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByBranch - rows error: %v", ErrScanRow, err)
	}

	return barbers, nil
}

func (r *Repository) scanBarber(row *sql.Row) (*domain.Barber, error) {
	var barber domain.Barber
	var offDays pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&barber.ID,
		&barber.BranchID,
		&barber.Name,
		&barber.CommissionRate,
		&offDays,
		&barber.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	barber.WeeklyOffDays = toIntSlice(offDays)
	barber.CreatedAt = createdAt.Time
	barber.UpdatedAt = updatedAt.Time

	return &barber, nil
}

func toIntSlice(arr pq.Int64Array) []int {
	result := make([]int, 0, len(arr))
	for _, v := range arr {
		result = append(result, int(v))
	}
	return result
}
