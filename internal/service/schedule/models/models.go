package models

import (
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	branchRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/branch"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// Request модели

// UpdateScheduleRequest запрос на обновление расписания филиала
// Все поля опциональны - обновляются только переданные значения
type UpdateScheduleRequest struct {
	UserID               int64   `json:"userId"`
	Timezone             *string `json:"timezone,omitempty"`
	OpenTime             *string `json:"openTime,omitempty"`  // "10:00"
	CloseTime            *string `json:"closeTime,omitempty"` // "21:00"
	SlotIntervalMinutes  *int    `json:"slotIntervalMinutes,omitempty"`
	SameDayBufferMinutes *int    `json:"sameDayBufferMinutes,omitempty"`
	AdvanceBookingDays   *int    `json:"advanceBookingDays,omitempty"`
}

// ToRepoUpdate конвертирует request в модель частичного обновления репозитория
func (r *UpdateScheduleRequest) ToRepoUpdate() branchRepo.ScheduleUpdate {
	update := branchRepo.ScheduleUpdate{
		Timezone:             r.Timezone,
		SlotIntervalMinutes:  r.SlotIntervalMinutes,
		SameDayBufferMinutes: r.SameDayBufferMinutes,
		AdvanceBookingDays:   r.AdvanceBookingDays,
	}

	if r.OpenTime != nil {
		open := types.TimeString(*r.OpenTime)
		update.OpenTime = &open
	}
	if r.CloseTime != nil {
		closeTime := types.TimeString(*r.CloseTime)
		update.CloseTime = &closeTime
	}

	return update
}

// Response модели

// BarberScheduleInfo информация о барбере в расписании филиала
type BarberScheduleInfo struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	WeeklyOffDays []int  `json:"weeklyOffDays"` // 0 = воскресенье
}

// ScheduleResponse ответ с расписанием филиала
type ScheduleResponse struct {
	BranchID             int64                `json:"branchId"`
	Name                 string               `json:"name"`
	Timezone             string               `json:"timezone"`
	OpenTime             string               `json:"openTime"`
	CloseTime            string               `json:"closeTime"`
	SlotIntervalMinutes  int                  `json:"slotIntervalMinutes"`
	SameDayBufferMinutes int                  `json:"sameDayBufferMinutes"`
	AdvanceBookingDays   int                  `json:"advanceBookingDays"`
	Barbers              []BarberScheduleInfo `json:"barbers"`
	UpdatedAt            time.Time            `json:"updatedAt"`
}

// Методы конвертации

// FromDomain собирает ответ из филиала и списка его барберов
func FromDomain(branch *domain.Branch, barbers []*domain.Barber) *ScheduleResponse {
	resp := &ScheduleResponse{
		BranchID:             branch.ID,
		Name:                 branch.Name,
		Timezone:             branch.Timezone,
		OpenTime:             branch.OpenTime.String(),
		CloseTime:            branch.CloseTime.String(),
		SlotIntervalMinutes:  branch.SlotIntervalMinutes,
		SameDayBufferMinutes: branch.SameDayBufferMinutes,
		AdvanceBookingDays:   branch.AdvanceBookingDays,
		Barbers:              make([]BarberScheduleInfo, 0, len(barbers)),
		UpdatedAt:            branch.UpdatedAt,
	}

	for _, barber := range barbers {
		resp.Barbers = append(resp.Barbers, BarberScheduleInfo{
			ID:            barber.ID,
			Name:          barber.Name,
			WeeklyOffDays: barber.WeeklyOffDays,
		})
	}

	return resp
}
