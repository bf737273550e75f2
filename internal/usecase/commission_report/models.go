package commission_report

// Request модель запроса отчета по комиссии
type Request struct {
	UserID   int64  // ID пользователя, запрашивающего отчет
	BranchID int64  // ID филиала
	Month    string // Месяц отчета в формате "2006-01"
}

// BarberLine строка отчета по одному барберу
type BarberLine struct {
	BarberID      int64   `json:"barberId"`
	BarberName    string  `json:"barberName"`
	BookingsCount int     `json:"bookingsCount"`
	GrossRevenue  float64 `json:"grossRevenue"`
	CommissionDue float64 `json:"commissionDue"`
	PaidAmount    float64 `json:"paidAmount"`
	UnpaidAmount  float64 `json:"unpaidAmount"`
}

// Response модель ответа с помесячным отчетом по комиссии филиала
type Response struct {
	BranchID int64        `json:"branchId"`
	Month    string       `json:"month"`
	Barbers  []BarberLine `json:"barbers"`

	// Итоги по филиалу
	TotalBookings      int     `json:"totalBookings"`
	TotalGrossRevenue  float64 `json:"totalGrossRevenue"`
	TotalCommissionDue float64 `json:"totalCommissionDue"`
}
