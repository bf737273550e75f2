package domain

import "github.com/m04kA/SMC-BarberService/pkg/types"

// Engagement is an interval during which a barber cannot take a new booking.
// It is the normalized projection of a booking or a blocking leave request
// onto the day's timeline. All durations are minutes; legacy records with a
// missing duration get DefaultEngagementDurationMinutes.
type Engagement struct {
	StartTime       types.TimeString
	DurationMinutes int
	FullDay         bool
}

// EndTime возвращает время окончания интервала
func (e *Engagement) EndTime() (types.TimeString, error) {
	return e.StartTime.AddMinutes(e.DurationMinutes)
}

// Overlaps проверяет пересечение с интервалом [start, end)
// Интервалы полуоткрытые: совпадение границ (back-to-back) пересечением не считается
func (e *Engagement) Overlaps(start, end types.TimeString) bool {
	if e.FullDay {
		return true
	}

	engEnd, err := e.EndTime()
	if err != nil {
		// Некорректный интервал не может ничего блокировать
		return false
	}

	return e.StartTime.IsBefore(end) && engEnd.IsAfter(start)
}

// EngagementsFromBookings проецирует активные бронирования на таймлайн дня.
// Записи с некорректным временем начала отбрасываются; возвращается количество
// отброшенных, чтобы вызывающий код мог это залогировать
func EngagementsFromBookings(bookings []*Booking) (engagements []Engagement, dropped int) {
	engagements = make([]Engagement, 0, len(bookings))

	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}

		if err := b.StartTime.Validate(); err != nil {
			dropped++
			continue
		}

		duration := b.DurationMinutes
		if duration <= 0 {
			duration = DefaultEngagementDurationMinutes
		}

		engagements = append(engagements, Engagement{
			StartTime:       b.StartTime,
			DurationMinutes: duration,
		})
	}

	return engagements, dropped
}

// EngagementsFromLeaves проецирует блокирующие заявки на отгул на таймлайн дня.
// full_day заявки блокируют весь день независимо от времени;
// short_break без длительности получает фоллбэк в один часовой слот
func EngagementsFromLeaves(leaves []*LeaveRequest) (engagements []Engagement, dropped int) {
	engagements = make([]Engagement, 0, len(leaves))

	for _, l := range leaves {
		if !l.BlocksSlots() {
			continue
		}

		if l.Type == LeaveFullDay {
			engagements = append(engagements, Engagement{FullDay: true})
			continue
		}

		if err := l.StartTime.Validate(); err != nil {
			dropped++
			continue
		}

		duration := DefaultEngagementDurationMinutes
		if l.DurationMinutes != nil && *l.DurationMinutes > 0 {
			duration = *l.DurationMinutes
		}

		engagements = append(engagements, Engagement{
			StartTime:       l.StartTime,
			DurationMinutes: duration,
		})
	}

	return engagements, dropped
}

// HasFullDayEngagement возвращает true, если среди интервалов есть блокировка всего дня
func HasFullDayEngagement(engagements []Engagement) bool {
	for _, e := range engagements {
		if e.FullDay {
			return true
		}
	}
	return false
}
