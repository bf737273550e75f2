package create_leave

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/service/leaves/models"
)

type LeaveService interface {
	Create(ctx context.Context, req *models.CreateLeaveRequest) (*models.LeaveResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
