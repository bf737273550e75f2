package notifyservice

// BookingNotification событие по бронированию для отправки клиенту
type BookingNotification struct {
	BookingID     int64  `json:"booking_id"`
	ReferenceCode string `json:"reference_code"`
	Event         string `json:"event"` // confirmed, cancelled, status_changed
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	BranchName    string `json:"branch_name"`
	BarberName    string `json:"barber_name"`
	ServiceName   string `json:"service_name"`
	BookingDate   string `json:"booking_date"` // YYYY-MM-DD
	StartTime     string `json:"start_time"`   // HH:MM
}

// ErrorResponse модель ошибки от NotifyService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
