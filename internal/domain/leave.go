package domain

import (
	"time"

	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// LeaveType represents the kind of leave request
type LeaveType string

const (
	// LeaveShortBreak короткий перерыв с явным временем начала и длительностью
	LeaveShortBreak LeaveType = "short_break"
	// LeaveFullDay выходной на весь день, блокирует все слоты
	LeaveFullDay LeaveType = "full_day"
)

// LeaveStatus represents the approval state of a leave request
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// LeaveRequest represents a barber's request to be unavailable
type LeaveRequest struct {
	ID              int64
	BarberID        int64
	BranchID        int64
	Type            LeaveType
	LeaveDate       time.Time
	StartTime       types.TimeString // Пусто для full_day
	DurationMinutes *int             // nil у legacy записей - применяется фоллбэк при нормализации
	Reason          *string
	Status          LeaveStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BlocksSlots returns true if the leave affects slot availability
// Pending и approved блокируют слоты, rejected - нет
func (l *LeaveRequest) BlocksSlots() bool {
	return l.Status == LeavePending || l.Status == LeaveApproved
}
