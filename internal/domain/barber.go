package domain

import "time"

// Barber represents a barber working at a branch
type Barber struct {
	ID             int64
	BranchID       int64
	Name           string
	CommissionRate float64 // Доля барбера от цены услуги, 0..1
	WeeklyOffDays  []int   // Дни недели 0-6 (0 = воскресенье), когда барбер не работает
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsOffOn returns true if the given weekday is a recurring day off for the barber
func (b *Barber) IsOffOn(weekday time.Weekday) bool {
	for _, d := range b.WeeklyOffDays {
		if d == int(weekday) {
			return true
		}
	}
	return false
}
