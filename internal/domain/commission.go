package domain

// CommissionRow is one barber's settlement line for a month
// Суммы считаются только по завершенным бронированиям;
// ставка комиссии берется из снапшота на момент бронирования
type CommissionRow struct {
	BarberID      int64
	BarberName    string
	BookingsCount int
	GrossRevenue  float64 // Сумма цен услуг
	CommissionDue float64 // Сумма price * commission_rate
	PaidAmount    float64 // Выручка по оплаченным бронированиям
	UnpaidAmount  float64 // Выручка по неоплаченным
}
