package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BarberService/pkg/ptr"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

func TestEngagementsFromBookings(t *testing.T) {
	bookings := []*Booking{
		{StartTime: "10:00", DurationMinutes: 60, Status: StatusConfirmed},
		{StartTime: "12:00", DurationMinutes: 30, Status: StatusCancelledByUser}, // неактивное - пропускается
		{StartTime: "13:00", DurationMinutes: 0, Status: StatusPending},          // legacy без длительности
		{StartTime: "bad", DurationMinutes: 60, Status: StatusConfirmed},         // некорректное время - отбрасывается
	}

	engagements, dropped := EngagementsFromBookings(bookings)

	assert.Equal(t, 1, dropped)
	assert.Equal(t, []Engagement{
		{StartTime: "10:00", DurationMinutes: 60},
		{StartTime: "13:00", DurationMinutes: DefaultEngagementDurationMinutes},
	}, engagements)
}

func TestEngagementsFromLeaves(t *testing.T) {
	leaves := []*LeaveRequest{
		{Type: LeaveShortBreak, StartTime: "14:00", DurationMinutes: ptr.Ptr(90), Status: LeaveApproved},
		{Type: LeaveShortBreak, StartTime: "16:00", DurationMinutes: nil, Status: LeavePending}, // legacy - фоллбэк 60 минут
		{Type: LeaveShortBreak, StartTime: "18:00", DurationMinutes: ptr.Ptr(60), Status: LeaveRejected},
		{Type: LeaveFullDay, Status: LeaveApproved},
		{Type: LeaveShortBreak, StartTime: "25:00", DurationMinutes: ptr.Ptr(60), Status: LeaveApproved},
	}

	engagements, dropped := EngagementsFromLeaves(leaves)

	assert.Equal(t, 1, dropped)
	assert.Equal(t, []Engagement{
		{StartTime: "14:00", DurationMinutes: 90},
		{StartTime: "16:00", DurationMinutes: DefaultEngagementDurationMinutes},
		{FullDay: true},
	}, engagements)
	assert.True(t, HasFullDayEngagement(engagements))
}

func TestEngagement_Overlaps(t *testing.T) {
	tests := []struct {
		name       string
		engagement Engagement
		start      string
		end        string
		want       bool
	}{
		{
			name:       "full overlap",
			engagement: Engagement{StartTime: "10:00", DurationMinutes: 60},
			start:      "10:00", end: "11:00",
			want: true,
		},
		{
			name:       "partial overlap",
			engagement: Engagement{StartTime: "11:20", DurationMinutes: 20},
			start:      "11:30", end: "12:00",
			want: true,
		},
		{
			name:       "back to back before",
			engagement: Engagement{StartTime: "10:00", DurationMinutes: 60},
			start:      "11:00", end: "12:00",
			want: false,
		},
		{
			name:       "back to back after",
			engagement: Engagement{StartTime: "12:00", DurationMinutes: 30},
			start:      "11:30", end: "12:00",
			want: false,
		},
		{
			name:       "full day blocks everything",
			engagement: Engagement{FullDay: true},
			start:      "10:00", end: "11:00",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.engagement.Overlaps(
				types.TimeString(tt.start),
				types.TimeString(tt.end),
			)
			assert.Equal(t, tt.want, got)
		})
	}
}
