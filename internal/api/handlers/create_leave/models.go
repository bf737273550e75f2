package create_leave

import (
	"github.com/m04kA/SMC-BarberService/internal/service/leaves/models"
)

// CreateLeaveRequest HTTP request model
type CreateLeaveRequest struct {
	Type            string  `json:"type"`                      // short_break | full_day
	LeaveDate       string  `json:"leaveDate"`                 // "2026-09-10"
	StartTime       *string `json:"startTime,omitempty"`       // обязателен для short_break
	DurationMinutes *int    `json:"durationMinutes,omitempty"` // обязателен для short_break
	Reason          *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateLeaveRequest) ToServiceRequest(userID, barberID int64) *models.CreateLeaveRequest {
	return &models.CreateLeaveRequest{
		UserID:          userID,
		BarberID:        barberID,
		Type:            r.Type,
		LeaveDate:       r.LeaveDate,
		StartTime:       r.StartTime,
		DurationMinutes: r.DurationMinutes,
		Reason:          r.Reason,
	}
}
