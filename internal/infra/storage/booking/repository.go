package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/psqlbuilder"
)

// bookingColumns полный список колонок таблицы bookings
var bookingColumns = []string{
	"id",
	"reference_code",
	"customer_id",
	"branch_id",
	"barber_id",
	"service_id",
	"booking_date",
	"start_time",
	"duration_minutes",
	"status",
	"payment_status",
	"payment_slip_url",
	"service_name",
	"service_price",
	"commission_rate",
	"customer_name",
	"customer_phone",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Создание с проверкой доступности слота должно выполняться в сериализуемой
// транзакции, чтобы исключить двойное бронирование при одновременных запросах
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"reference_code",
			"customer_id",
			"branch_id",
			"barber_id",
			"service_id",
			"booking_date",
			"start_time",
			"duration_minutes",
			"status",
			"payment_status",
			"payment_slip_url",
			"service_name",
			"service_price",
			"commission_rate",
			"customer_name",
			"customer_phone",
			"notes",
		).
		Values(
			booking.ReferenceCode,
			booking.CustomerID,
			booking.BranchID,
			booking.BarberID,
			booking.ServiceID,
			booking.BookingDate,
			booking.StartTime,
			booking.DurationMinutes,
			booking.Status,
			booking.PaymentStatus,
			booking.PaymentSlipURL,
			booking.ServiceName,
			booking.ServicePrice,
			booking.CommissionRate,
			booking.CustomerName,
			booking.CustomerPhone,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByCustomerID получает историю бронирований клиента
// Опционально фильтрует по статусу
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("booking_date DESC, start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByBranchWithFilter получает бронирования филиала с гибкой фильтрацией
// Поддерживает фильтрацию по барберу, периоду, статусу и включению неактивных.
//
// Внутри транзакции при запросе на конкретную дату добавляет FOR UPDATE -
// это блокировка дня барбера при создании бронирования
func (r *Repository) GetByBranchWithFilter(ctx context.Context, filter domain.BranchBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"branch_id": filter.BranchID})

	if filter.BarberID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"barber_id": *filter.BarberID})
	}

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны неактивные - исключаем их
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	singleDate := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)

	if singleDate {
		// Для конкретной даты сортируем по времени начала (ASC)
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		// Для периода сортируем по дате и времени (DESC - сначала новые)
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	// Блокировка строк дня при создании бронирования в транзакции
	if dbmetrics.IsInTransaction(ctx) && singleDate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranchWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranchWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// UpdatePayment обновляет платежное состояние бронирования
// slipURL передается при загрузке слипа; nil оставляет текущее значение
func (r *Repository) UpdatePayment(ctx context.Context, id int64, status domain.PaymentStatus, slipURL *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("payment_status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if slipURL != nil {
		updateBuilder = updateBuilder.Set("payment_slip_url", *slipURL)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdatePayment")
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Cancel")
}

// UpdateCustomerPhone обновляет денормализованный телефон клиента во всех его бронированиях
// Используется при миграции номера телефона; должен вызываться в одной транзакции
// с обновлением записи клиента. Возвращает количество затронутых строк
func (r *Repository) UpdateCustomerPhone(ctx context.Context, customerID int64, phone string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("customer_phone", phone).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"customer_id": customerID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: UpdateCustomerPhone - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: UpdateCustomerPhone - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: UpdateCustomerPhone - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// CommissionByBranchAndPeriod считает помесячный расчет комиссии по барберам филиала
// Учитываются только завершенные бронирования; ставка комиссии берется из снапшота
// на строке бронирования, а не из текущей записи барбера
func (r *Repository) CommissionByBranchAndPeriod(ctx context.Context, branchID int64, periodStart, periodEnd time.Time) ([]*domain.CommissionRow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"b.barber_id",
		"br.name AS barber_name",
		"COUNT(*) AS bookings_count",
		"COALESCE(SUM(b.service_price), 0) AS gross_revenue",
		"COALESCE(SUM(b.service_price * b.commission_rate), 0) AS commission_due",
		"COALESCE(SUM(b.service_price) FILTER (WHERE b.payment_status = 'paid'), 0) AS paid_amount",
		"COALESCE(SUM(b.service_price) FILTER (WHERE b.payment_status <> 'paid'), 0) AS unpaid_amount",
	).
		From("bookings b").
		Join("barbers br ON br.id = b.barber_id").
		Where(squirrel.Eq{"b.branch_id": branchID}).
		Where(squirrel.Eq{"b.status": domain.StatusCompleted}).
		Where(squirrel.GtOrEq{"b.booking_date": periodStart}).
		Where(squirrel.LtOrEq{"b.booking_date": periodEnd}).
		GroupBy("b.barber_id", "br.name").
		OrderBy("b.barber_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CommissionByBranchAndPeriod - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CommissionByBranchAndPeriod - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.CommissionRow, 0)
	for rows.Next() {
		var row domain.CommissionRow
		if err := rows.Scan(
			&row.BarberID,
			&row.BarberName,
			&row.BookingsCount,
			&row.GrossRevenue,
			&row.CommissionDue,
			&row.PaidAmount,
			&row.UnpaidAmount,
		); err != nil {
			return nil, fmt.Errorf("%w: CommissionByBranchAndPeriod - scan row: %v", ErrScanRow, err)
		}
		result = append(result, &row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CommissionByBranchAndPeriod - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// CustomerTotals считает CRM-агрегаты по клиенту: визиты, предстоящие бронирования,
// общую выручку и дату последнего визита
func (r *Repository) CustomerTotals(ctx context.Context, customerID int64) (visits int, upcoming int, totalSpend float64, lastVisit *time.Time, err error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COUNT(*) FILTER (WHERE status = 'completed') AS visits",
		"COUNT(*) FILTER (WHERE status IN ('pending', 'confirmed')) AS upcoming",
		"COALESCE(SUM(service_price) FILTER (WHERE status = 'completed'), 0) AS total_spend",
		"MAX(booking_date) FILTER (WHERE status = 'completed') AS last_visit",
	).
		From("bookings").
		Where(squirrel.Eq{"customer_id": customerID}).
		ToSql()

	if err != nil {
		return 0, 0, 0, nil, fmt.Errorf("%w: CustomerTotals - build select query: %v", ErrBuildQuery, err)
	}

	var last sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&visits, &upcoming, &totalSpend, &last)
	if err != nil {
		return 0, 0, 0, nil, fmt.Errorf("%w: CustomerTotals - scan row: %v", ErrScanRow, err)
	}

	if last.Valid {
		lastVisit = &last.Time
	}

	return visits, upcoming, totalSpend, lastVisit, nil
}

// execExpectingRow выполняет update и возвращает ErrBookingNotFound, если ни одна строка не затронута
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
		return ErrBookingNotFound
	}

	return nil
}

// scanBooking сканирует одну строку бронирования
func (r *Repository) scanBooking(row *sql.Row) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ReferenceCode,
		&booking.CustomerID,
		&booking.BranchID,
		&booking.BarberID,
		&booking.ServiceID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.DurationMinutes,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.PaymentSlipURL,
		&booking.ServiceName,
		&booking.ServicePrice,
		&booking.CommissionRate,
		&booking.CustomerName,
		&booking.CustomerPhone,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует список бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.ReferenceCode,
			&booking.CustomerID,
			&booking.BranchID,
			&booking.BarberID,
			&booking.ServiceID,
			&booking.BookingDate,
			&booking.StartTime,
			&booking.DurationMinutes,
			&booking.Status,
			&booking.PaymentStatus,
			&booking.PaymentSlipURL,
			&booking.ServiceName,
			&booking.ServicePrice,
			&booking.CommissionRate,
			&booking.CustomerName,
			&booking.CustomerPhone,
			&booking.Notes,
			&booking.CancellationReason,
			&booking.CancelledAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
