package migrate_customer_phone

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/service/customers/models"
)

type CustomerService interface {
	MigratePhone(ctx context.Context, customerID int64, req *models.MigratePhoneRequest) (*models.MigratePhoneResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
