package models

import (
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// Request модели

// CreateLeaveRequest запрос на создание заявки на отсутствие
type CreateLeaveRequest struct {
	UserID          int64   `json:"userId"`
	BarberID        int64   `json:"barberId"`
	Type            string  `json:"type"`                      // short_break | full_day
	LeaveDate       string  `json:"leaveDate"`                 // "2026-08-30"
	StartTime       *string `json:"startTime,omitempty"`       // "14:00", обязателен для short_break
	DurationMinutes *int    `json:"durationMinutes,omitempty"` // обязателен для short_break
	Reason          *string `json:"reason,omitempty"`
}

// ResolveLeaveRequest запрос на разбор заявки менеджером
type ResolveLeaveRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"` // approved | rejected
}

// GetBranchLeavesRequest запрос на получение заявок филиала
type GetBranchLeavesRequest struct {
	UserID   int64   `json:"userId"`
	BranchID int64   `json:"branchId"`
	Status   *string `json:"status,omitempty"`
}

// Response модели

// LeaveResponse ответ с данными заявки на отсутствие
type LeaveResponse struct {
	ID              int64     `json:"id"`
	BarberID        int64     `json:"barberId"`
	BranchID        int64     `json:"branchId"`
	Type            string    `json:"type"`
	LeaveDate       string    `json:"leaveDate"`
	StartTime       *string   `json:"startTime,omitempty"`
	DurationMinutes *int      `json:"durationMinutes,omitempty"`
	Reason          *string   `json:"reason,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// LeaveListResponse ответ со списком заявок
type LeaveListResponse struct {
	Leaves []LeaveResponse `json:"leaves"`
}

// Методы конвертации

// FromDomainLeave конвертирует domain модель в DTO
func FromDomainLeave(l *domain.LeaveRequest) *LeaveResponse {
	if l == nil {
		return nil
	}

	resp := &LeaveResponse{
		ID:              l.ID,
		BarberID:        l.BarberID,
		BranchID:        l.BranchID,
		Type:            string(l.Type),
		LeaveDate:       l.LeaveDate.Format(domain.DateFormat),
		DurationMinutes: l.DurationMinutes,
		Reason:          l.Reason,
		Status:          string(l.Status),
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}

	if !l.StartTime.IsZero() {
		startStr := l.StartTime.String()
		resp.StartTime = &startStr
	}

	return resp
}

// FromDomainLeaveList конвертирует список domain моделей в DTO
func FromDomainLeaveList(leaves []*domain.LeaveRequest) *LeaveListResponse {
	if leaves == nil {
		return &LeaveListResponse{
			Leaves: []LeaveResponse{},
		}
	}

	resp := &LeaveListResponse{
		Leaves: make([]LeaveResponse, len(leaves)),
	}

	for i, leave := range leaves {
		if leaveResp := FromDomainLeave(leave); leaveResp != nil {
			resp.Leaves[i] = *leaveResp
		}
	}

	return resp
}
