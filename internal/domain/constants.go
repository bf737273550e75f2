package domain

// Default branch schedule values
const (
	DefaultOpenTime              = "10:00"
	DefaultCloseTime             = "21:00"
	DefaultSlotIntervalMinutes   = 60
	DefaultSameDayBufferMinutes  = 30
	DefaultAdvanceBookingDays    = 0 // 0 = unlimited
	DefaultTimezone              = "Asia/Bangkok"
)

// DefaultEngagementDurationMinutes фоллбэк длительности для legacy записей без duration
// Исторически часть записей хранила длительность в часах или не хранила вовсе;
// при нормализации отсутствующее значение трактуется как один часовой слот
const DefaultEngagementDurationMinutes = 60

// Business validation constants
const (
	MinSlotIntervalMinutes      = 15
	MaxSlotIntervalMinutes      = 240
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 480 // 8 hours
	MinSameDayBufferMinutes     = 0
	MaxSameDayBufferMinutes     = 1440 // 1 day
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// InactiveStatuses список статусов неактивных бронирований
// Используется для фильтрации при подсчёте доступных слотов
var InactiveStatuses = []BookingStatus{
	StatusCancelledByUser,
	StatusCancelledByBranch,
	StatusNoShow,
}

// ActiveStatuses список статусов активных бронирований
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}
