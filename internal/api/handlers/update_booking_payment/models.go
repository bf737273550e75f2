package update_booking_payment

import (
	"github.com/m04kA/SMC-BarberService/internal/service/bookings/models"
)

// UpdatePaymentRequest HTTP request model
type UpdatePaymentRequest struct {
	PaymentStatus  string  `json:"paymentStatus"` // slip_uploaded | paid | refunded
	PaymentSlipURL *string `json:"paymentSlipUrl,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdatePaymentRequest) ToServiceRequest(userID int64) *models.UpdatePaymentRequest {
	return &models.UpdatePaymentRequest{
		UserID:         userID,
		PaymentStatus:  r.PaymentStatus,
		PaymentSlipURL: r.PaymentSlipURL,
	}
}
