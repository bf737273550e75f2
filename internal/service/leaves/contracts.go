package leaves

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// LeaveRepository интерфейс репозитория заявок на отсутствие
type LeaveRepository interface {
	Create(ctx context.Context, leave *domain.LeaveRequest) (*domain.LeaveRequest, error)
	GetByID(ctx context.Context, id int64) (*domain.LeaveRequest, error)
	GetBlockingByBarberAndDate(ctx context.Context, barberID int64, date time.Time) ([]*domain.LeaveRequest, error)
	GetByBranch(ctx context.Context, branchID int64, status *domain.LeaveStatus) ([]*domain.LeaveRequest, error)
	UpdateStatus(ctx context.Context, id int64, status domain.LeaveStatus) error
}

// BarberRepository интерфейс репозитория барберов
type BarberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Barber, error)
}

// BranchRepository интерфейс репозитория филиалов
type BranchRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Branch, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
