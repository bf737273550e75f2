package resolve_leave

import (
	"github.com/m04kA/SMC-BarberService/internal/service/leaves/models"
)

// ResolveLeaveRequest HTTP request model
type ResolveLeaveRequest struct {
	Status string `json:"status"` // approved | rejected
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *ResolveLeaveRequest) ToServiceRequest(userID int64) *models.ResolveLeaveRequest {
	return &models.ResolveLeaveRequest{
		UserID: userID,
		Status: r.Status,
	}
}
