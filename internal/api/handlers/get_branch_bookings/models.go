package get_branch_bookings

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос сервиса из path и query параметров
// Все фильтры опциональны; пустые строки игнорируются
func ToServiceRequest(
	branchID, userID int64,
	barberIDStr, statusStr, startDateStr, endDateStr, includeInactiveStr string,
) (*models.GetBranchBookingsRequest, error) {
	req := &models.GetBranchBookingsRequest{
		BranchID: branchID,
		UserID:   userID,
	}

	if barberIDStr != "" {
		barberID, err := strconv.ParseInt(barberIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.BarberID = &barberID
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
