package customers

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	UpdatePhone(ctx context.Context, id int64, phone string) error
}

// BookingRepository интерфейс репозитория бронирований для CRM агрегатов
type BookingRepository interface {
	CustomerTotals(ctx context.Context, customerID int64) (visits int, upcoming int, totalSpend float64, lastVisit *time.Time, err error)
	UpdateCustomerPhone(ctx context.Context, customerID int64, phone string) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
