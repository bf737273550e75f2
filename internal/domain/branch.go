package domain

import (
	"time"

	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// Branch represents a barbershop branch with its booking schedule configuration
type Branch struct {
	ID                   int64
	Name                 string
	Address              string
	Timezone             string // IANA имя, например "Asia/Bangkok"
	OpenTime             types.TimeString
	CloseTime            types.TimeString
	SlotIntervalMinutes  int     // Шаг сетки слотов
	SameDayBufferMinutes int     // Минимальное время до слота при бронировании на сегодня
	AdvanceBookingDays   int     // 0 = unlimited
	ManagerIDs           []int64 // Пользователи с правами менеджера филиала
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Location returns the branch timezone, falling back to the default on bad data
func (b *Branch) Location() *time.Location {
	if b.Timezone != "" {
		if loc, err := time.LoadLocation(b.Timezone); err == nil {
			return loc
		}
	}
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsManager returns true if the user manages this branch
func (b *Branch) IsManager(userID int64) bool {
	for _, id := range b.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// HasAdvanceBookingLimit returns true if bookings are limited to a window of days
func (b *Branch) HasAdvanceBookingLimit() bool {
	return b.AdvanceBookingDays > 0
}
