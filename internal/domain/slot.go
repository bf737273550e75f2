package domain

import "github.com/m04kA/SMC-BarberService/pkg/types"

// AvailableSlot represents a start time at which a new booking may begin
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
}
