package models

import (
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// Request модели

// MigratePhoneRequest запрос на смену номера телефона клиента
type MigratePhoneRequest struct {
	NewPhone string `json:"newPhone"`
}

// Response модели

// CustomerSummaryResponse CRM карточка клиента
type CustomerSummaryResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	Notes         *string `json:"notes,omitempty"`
	VisitCount    int     `json:"visitCount"`
	UpcomingCount int     `json:"upcomingCount"`
	TotalSpend    float64 `json:"totalSpend"`
	LastVisit     *string `json:"lastVisit,omitempty"` // "2026-08-30"

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MigratePhoneResponse результат миграции номера
type MigratePhoneResponse struct {
	CustomerID      int64  `json:"customerId"`
	Phone           string `json:"phone"`
	BookingsUpdated int64  `json:"bookingsUpdated"` // Число бронирований с обновленным снапшотом телефона
}

// Методы конвертации

// FromDomainSummary конвертирует domain модель в DTO
func FromDomainSummary(s *domain.CustomerSummary) *CustomerSummaryResponse {
	if s == nil {
		return nil
	}

	resp := &CustomerSummaryResponse{
		ID:            s.Customer.ID,
		Name:          s.Customer.Name,
		Phone:         s.Customer.Phone,
		Notes:         s.Customer.Notes,
		VisitCount:    s.VisitCount,
		UpcomingCount: s.UpcomingCount,
		TotalSpend:    s.TotalSpend,
		CreatedAt:     s.Customer.CreatedAt,
		UpdatedAt:     s.Customer.UpdatedAt,
	}

	if s.LastVisit != nil {
		lastStr := s.LastVisit.Format(domain.DateFormat)
		resp.LastVisit = &lastStr
	}

	return resp
}
