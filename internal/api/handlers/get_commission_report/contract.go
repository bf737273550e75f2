package get_commission_report

import (
	"context"

	commissionReport "github.com/m04kA/SMC-BarberService/internal/usecase/commission_report"
)

type CommissionReportUseCase interface {
	Execute(ctx context.Context, req *commissionReport.Request) (*commissionReport.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
