package update_branch_schedule

import (
	"github.com/m04kA/SMC-BarberService/internal/service/schedule/models"
)

// UpdateScheduleRequest HTTP request model
// Все поля опциональны - обновляются только переданные значения
type UpdateScheduleRequest struct {
	Timezone             *string `json:"timezone,omitempty"`
	OpenTime             *string `json:"openTime,omitempty"`  // "10:00"
	CloseTime            *string `json:"closeTime,omitempty"` // "21:00"
	SlotIntervalMinutes  *int    `json:"slotIntervalMinutes,omitempty"`
	SameDayBufferMinutes *int    `json:"sameDayBufferMinutes,omitempty"`
	AdvanceBookingDays   *int    `json:"advanceBookingDays,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateScheduleRequest) ToServiceRequest(userID int64) *models.UpdateScheduleRequest {
	return &models.UpdateScheduleRequest{
		UserID:               userID,
		Timezone:             r.Timezone,
		OpenTime:             r.OpenTime,
		CloseTime:            r.CloseTime,
		SlotIntervalMinutes:  r.SlotIntervalMinutes,
		SameDayBufferMinutes: r.SameDayBufferMinutes,
		AdvanceBookingDays:   r.AdvanceBookingDays,
	}
}
