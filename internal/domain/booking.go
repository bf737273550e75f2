package domain

import (
	"time"

	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending           BookingStatus = "pending"
	StatusConfirmed         BookingStatus = "confirmed"
	StatusInProgress        BookingStatus = "in_progress"
	StatusCompleted         BookingStatus = "completed"
	StatusCancelledByUser   BookingStatus = "cancelled_by_user"
	StatusCancelledByBranch BookingStatus = "cancelled_by_branch"
	StatusNoShow            BookingStatus = "no_show"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentUnpaid       PaymentStatus = "unpaid"
	PaymentSlipUploaded PaymentStatus = "slip_uploaded"
	PaymentPaid         PaymentStatus = "paid"
	PaymentRefunded     PaymentStatus = "refunded"
)

// Booking represents a barbershop booking
type Booking struct {
	ID              int64
	ReferenceCode   string // Короткий код для клиента (uuid)
	CustomerID      int64
	BranchID        int64
	BarberID        int64
	ServiceID       int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus
	PaymentStatus   PaymentStatus
	PaymentSlipURL  *string

	// Denormalized data for history and reporting
	ServiceName    string
	ServicePrice   float64
	CommissionRate float64 // Ставка барбера на момент бронирования
	CustomerName   string
	CustomerPhone  string
	Notes          *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still blocks its time slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelledByUser &&
		b.Status != StatusCancelledByBranch &&
		b.Status != StatusNoShow
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByUser || b.Status == StatusCancelledByBranch
}

// IsSettleable returns true if the booking counts towards commission settlement
func (b *Booking) IsSettleable() bool {
	return b.Status == StatusCompleted
}

// BranchBookingsFilter фильтр для получения бронирований филиала
type BranchBookingsFilter struct {
	BranchID        int64          // Обязательный параметр
	BarberID        *int64         // Фильтр по барберу (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли неактивные бронирования (отмененные, no-show)
}
