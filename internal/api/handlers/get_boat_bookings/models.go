package get_boat_bookings

import (
	"github.com/m04kA/charter-booking-service/internal/service/bookings/models"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

// ToServiceRequest собирает запрос к сервису из query параметров
func ToServiceRequest(boatID, userID int64, dateStr, statusStr string) (*models.GetBoatBookingsRequest, error) {
	req := &models.GetBoatBookingsRequest{
		UserID: userID,
		BoatID: boatID,
	}

	if dateStr != "" {
		date, err := types.ParseDate(dateStr)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}
	if statusStr != "" {
		req.Status = &statusStr
	}

	return req, nil
}
