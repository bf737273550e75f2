package get_branch_leaves

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/service/leaves/models"
)

type LeaveService interface {
	GetBranchLeaves(ctx context.Context, req *models.GetBranchLeavesRequest) (*models.LeaveListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
