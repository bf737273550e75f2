package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BranchID  int64     // ID филиала
	BarberID  int64     // ID барбера
	ServiceID int64     // ID услуги
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date      time.Time             // Дата, на которую запрашивались слоты
	BranchID  int64                 // ID филиала
	BarberID  int64                 // ID барбера
	ServiceID int64                 // ID услуги
	Slots     []domain.AvailableSlot // Список доступных слотов
}
