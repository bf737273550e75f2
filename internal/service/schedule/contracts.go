package schedule

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	branchRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/branch"
)

// BranchRepository интерфейс репозитория филиалов
type BranchRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Branch, error)
	UpdateSchedule(ctx context.Context, id int64, update branchRepo.ScheduleUpdate) error
}

// BarberRepository интерфейс репозитория барберов
type BarberRepository interface {
	GetByBranch(ctx context.Context, branchID int64, activeOnly bool) ([]*domain.Barber, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
