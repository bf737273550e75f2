package domain

import "time"

// Customer represents a CRM customer record
type Customer struct {
	ID        int64
	Name      string
	Phone     string
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CustomerSummary is the CRM view of a customer: profile plus booking totals
type CustomerSummary struct {
	Customer      Customer
	VisitCount    int     // Завершенные визиты
	UpcomingCount int     // Активные будущие бронирования
	TotalSpend    float64 // Сумма по завершенным визитам
	LastVisit     *time.Time
}
