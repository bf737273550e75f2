package create_booking

import (
	"time"

	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID int64            // ID клиента
	BranchID   int64            // ID филиала
	BarberID   int64            // ID барбера
	ServiceID  int64            // ID услуги
	Date       time.Time        // Дата бронирования (без времени)
	StartTime  types.TimeString // Время начала слота (например, "10:00")
	Notes      *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	ReferenceCode   string           // Короткий код для клиента
	CustomerID      int64            // ID клиента
	BranchID        int64            // ID филиала
	BarberID        int64            // ID барбера
	ServiceID       int64            // ID услуги
	BookingDate     time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования
	PaymentStatus   string           // Платежный статус

	// Денормализованные данные
	ServiceName   string  // Название услуги
	ServicePrice  float64 // Цена услуги
	CustomerName  string  // Имя клиента
	CustomerPhone string  // Телефон клиента
	Notes         *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
