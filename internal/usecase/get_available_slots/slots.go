package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// generateTimeSlots генерирует список стартов слотов на день
// Сетка идет от открытия филиала с фиксированным шагом slotInterval, при этом
// слот попадает в сетку, только если услуга целиком умещается до закрытия.
// Для сегодняшней даты дополнительно отсекаются старты раньше now + sameDayBuffer
func generateTimeSlots(
	openTime types.TimeString,
	closeTime types.TimeString,
	slotIntervalMinutes int,
	serviceDurationMinutes int,
	requestDate time.Time,
	now time.Time,
	sameDayBufferMinutes int,
) ([]types.TimeString, error) {
	// Дата в прошлом - слотов нет
	if isDateInPast(requestDate, now) {
		return []types.TimeString{}, nil
	}

	// Шаг 1: Генерируем все старты от открытия с фиксированным шагом
	// Шаг сетки не зависит от длительности услуги - длительность влияет
	// только на то, какие старты отсекаются у закрытия
	allSlots := make([]types.TimeString, 0)
	currentSlot := openTime

	for currentSlot.IsBefore(closeTime) {
		// Услуга должна завершиться не позже закрытия
		serviceEnd, err := currentSlot.AddMinutes(serviceDurationMinutes)
		if err != nil {
			break
		}
		if serviceEnd.IsAfter(closeTime) {
			break
		}

		allSlots = append(allSlots, currentSlot)
		currentSlot, err = currentSlot.AddMinutes(slotIntervalMinutes)
		if err != nil {
			break
		}
	}

	// Шаг 2: Если дата бронирования НЕ сегодня - возвращаем все старты
	if !isSameDay(requestDate, now) {
		return allSlots, nil
	}

	// Шаг 3: Для сегодняшней даты отсекаем старты раньше now + buffer
	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(sameDayBufferMinutes)
	if err != nil {
		// now + buffer вышло за границы суток - сегодня уже ничего не доступно
		return []types.TimeString{}, nil
	}

	availableSlots := make([]types.TimeString, 0)
	for _, slot := range allSlots {
		if !slot.IsBefore(minAllowedTime) {
			availableSlots = append(availableSlots, slot)
		}
	}

	return availableSlots, nil
}

// filterAvailableSlots отбирает старты, не пересекающиеся ни с одним интервалом занятости
// Интервалы полуоткрытые: бронирование, заканчивающееся ровно на старте слота,
// слот не блокирует (back-to-back записи легальны в обе стороны)
func filterAvailableSlots(
	slots []types.TimeString,
	serviceDurationMinutes int,
	engagements []domain.Engagement,
) []domain.AvailableSlot {
	result := make([]domain.AvailableSlot, 0, len(slots))

	for _, slotStart := range slots {
		slotEnd, err := slotStart.AddMinutes(serviceDurationMinutes)
		if err != nil {
			continue
		}

		blocked := false
		for _, engagement := range engagements {
			if engagement.Overlaps(slotStart, slotEnd) {
				blocked = true
				break
			}
		}

		if !blocked {
			result = append(result, domain.AvailableSlot{
				StartTime:       slotStart,
				DurationMinutes: serviceDurationMinutes,
			})
		}
	}

	return result
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
