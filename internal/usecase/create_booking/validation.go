package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.BranchID <= 0 {
		return fmt.Errorf("%w: branchID must be positive", ErrInvalidInput)
	}

	if req.BarberID <= 0 {
		return fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(bookingDate time.Time, now time.Time, advanceBookingDays int) error {
	// Проверяем, что дата не в прошлом
	if isDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	// Проверяем, что дата не превышает ограничение advanceBookingDays
	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays)

	bookingDateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location())

	if bookingDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateTimeSlot проверяет, что время начала попадает в сетку филиала
// и услуга целиком умещается до закрытия
func validateTimeSlot(branch *domain.Branch, startTime types.TimeString, serviceDurationMinutes int) error {
	openMinutes, err := branch.OpenTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: malformed branch open time: %v", ErrInternal, err)
	}

	closeMinutes, err := branch.CloseTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: malformed branch close time: %v", ErrInternal, err)
	}

	startMinutes, err := startTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	if startMinutes < openMinutes {
		return fmt.Errorf("%w: branch opens at %s", ErrInvalidTimeSlot, branch.OpenTime)
	}

	if (startMinutes-openMinutes)%branch.SlotIntervalMinutes != 0 {
		return fmt.Errorf("%w: startTime must align to the %d-minute grid", ErrInvalidTimeSlot, branch.SlotIntervalMinutes)
	}

	if startMinutes+serviceDurationMinutes > closeMinutes {
		return fmt.Errorf("%w: service must finish by %s", ErrInvalidTimeSlot, branch.CloseTime)
	}

	return nil
}

// validateBookingTime проверяет, что бронирование на сегодня не нарушает буфер
func validateBookingTime(
	bookingDate time.Time,
	startTime types.TimeString,
	now time.Time,
	sameDayBufferMinutes int,
) error {
	// Если дата бронирования не сегодня, проверка не нужна
	if !isSameDay(bookingDate, now) {
		return nil
	}

	// Вычисляем минимальное допустимое время
	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(sameDayBufferMinutes)
	if err != nil {
		return fmt.Errorf("%w: failed to calculate min allowed time: %v", ErrInternal, err)
	}

	// Проверяем, что время начала не раньше минимального
	if startTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, sameDayBufferMinutes)
	}

	return nil
}

// hasOverlap проверяет пересечение запрошенного интервала с занятостью барбера
func hasOverlap(
	startTime types.TimeString,
	serviceDurationMinutes int,
	engagements []domain.Engagement,
) (bool, error) {
	slotEnd, err := startTime.AddMinutes(serviceDurationMinutes)
	if err != nil {
		return false, err
	}

	for _, engagement := range engagements {
		if engagement.Overlaps(startTime, slotEnd) {
			return true, nil
		}
	}

	return false, nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
