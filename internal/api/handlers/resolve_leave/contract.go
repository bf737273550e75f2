package resolve_leave

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/service/leaves/models"
)

type LeaveService interface {
	Resolve(ctx context.Context, leaveID int64, req *models.ResolveLeaveRequest) (*models.LeaveResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
