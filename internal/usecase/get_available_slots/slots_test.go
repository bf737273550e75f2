package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

func slotStarts(slots []types.TimeString) []string {
	result := make([]string, 0, len(slots))
	for _, s := range slots {
		result = append(result, s.String())
	}
	return result
}

func availableStarts(slots []domain.AvailableSlot) []string {
	result := make([]string, 0, len(slots))
	for _, s := range slots {
		result = append(result, s.StartTime.String())
	}
	return result
}

func TestGenerateTimeSlots_FullGrid(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	slots, err := generateTimeSlots("10:00", "21:00", 60, 60, date, now, 30)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"10:00", "11:00", "12:00", "13:00", "14:00", "15:00",
		"16:00", "17:00", "18:00", "19:00", "20:00",
	}, slotStarts(slots))
}

func TestGenerateTimeSlots_ServiceMustFitBeforeClose(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	// 90-минутная услуга не умещается после 19:30, поэтому 20:00 выпадает
	slots, err := generateTimeSlots("10:00", "21:00", 60, 90, date, now, 30)
	require.NoError(t, err)

	starts := slotStarts(slots)
	assert.Contains(t, starts, "19:00")
	assert.NotContains(t, starts, "20:00")
}

func TestGenerateTimeSlots_SameDayBuffer(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	// Сейчас 14:05, буфер 30 минут: 14:00 уже прошел, первый доступный старт - 15:00
	now := time.Date(2026, 9, 10, 14, 5, 0, 0, time.UTC)

	slots, err := generateTimeSlots("10:00", "21:00", 60, 60, date, now, 30)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"15:00", "16:00", "17:00", "18:00", "19:00", "20:00",
	}, slotStarts(slots))
}

func TestGenerateTimeSlots_SameDayBufferExactBoundary(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	// 14:30 + 30 минут = ровно 15:00, слот 15:00 остается доступным
	now := time.Date(2026, 9, 10, 14, 30, 0, 0, time.UTC)

	slots, err := generateTimeSlots("10:00", "21:00", 60, 60, date, now, 30)
	require.NoError(t, err)

	assert.Equal(t, "15:00", slots[0].String())
}

func TestGenerateTimeSlots_PastDate(t *testing.T) {
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

	slots, err := generateTimeSlots("10:00", "21:00", 60, 60, date, now, 30)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateTimeSlots_NonHourlyInterval(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	slots, err := generateTimeSlots("10:00", "12:00", 30, 45, date, now, 0)
	require.NoError(t, err)

	// 11:30 выпадает: 11:30 + 45 минут = 12:15 > 12:00
	assert.Equal(t, []string{"10:00", "10:30", "11:00"}, slotStarts(slots))
}

func TestFilterAvailableSlots_OverlapBlocks(t *testing.T) {
	slots := []types.TimeString{"10:00", "11:00", "12:00", "13:00"}

	engagements := []domain.Engagement{
		{StartTime: "11:00", DurationMinutes: 60},
	}

	available := filterAvailableSlots(slots, 60, engagements)
	assert.Equal(t, []string{"10:00", "12:00", "13:00"}, availableStarts(available))
}

func TestFilterAvailableSlots_BackToBackAllowed(t *testing.T) {
	slots := []types.TimeString{"10:00", "11:00", "12:00"}

	// Занятость 10:30-11:00: слот 10:00 пересекается, слот 11:00 граничит и остается
	engagements := []domain.Engagement{
		{StartTime: "10:30", DurationMinutes: 30},
	}

	available := filterAvailableSlots(slots, 60, engagements)
	assert.Equal(t, []string{"11:00", "12:00"}, availableStarts(available))
}

func TestFilterAvailableSlots_LongServiceCrossesIntoEngagement(t *testing.T) {
	slots := []types.TimeString{"10:00", "11:00"}

	// 90-минутная услуга со старта 10:00 заканчивается в 11:30 и цепляет занятость 11:00-12:00
	engagements := []domain.Engagement{
		{StartTime: "11:00", DurationMinutes: 60},
	}

	available := filterAvailableSlots(slots, 90, engagements)
	assert.Empty(t, available)
}

func TestFilterAvailableSlots_DuplicateEngagementsHarmless(t *testing.T) {
	slots := []types.TimeString{"10:00", "11:00"}

	// Дубли одного интервала не меняют результат - доступность бинарная
	engagements := []domain.Engagement{
		{StartTime: "10:00", DurationMinutes: 60},
		{StartTime: "10:00", DurationMinutes: 60},
	}

	available := filterAvailableSlots(slots, 60, engagements)
	assert.Equal(t, []string{"11:00"}, availableStarts(available))
}

func TestFilterAvailableSlots_NoEngagements(t *testing.T) {
	slots := []types.TimeString{"10:00", "11:00"}

	available := filterAvailableSlots(slots, 60, nil)
	assert.Equal(t, []string{"10:00", "11:00"}, availableStarts(available))
}
