package check_availability

import (
	"github.com/m04kA/charter-booking-service/internal/service/bookings/models"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

// CheckAvailabilityRequest интервал для проверки
type CheckAvailabilityRequest struct {
	StartDate        string `json:"startDate" validate:"required"`
	EndDate          string `json:"endDate,omitempty"`
	StartTime        string `json:"startTime" validate:"required"`
	EndTime          string `json:"endTime" validate:"required"`
	ExcludeBookingID *int64 `json:"excludeBookingId,omitempty" validate:"omitempty,gt=0"`
}

// ToServiceRequest разбирает даты и время и конвертирует в модель сервиса
func (r *CheckAvailabilityRequest) ToServiceRequest(boatID int64) (*models.CheckAvailabilityRequest, error) {
	startDate, err := types.ParseDate(r.StartDate)
	if err != nil {
		return nil, err
	}
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	req := &models.CheckAvailabilityRequest{
		BoatID:    boatID,
		StartDate: startDate,
		StartTime: startTime,
		EndTime:   endTime,
		ExcludeID: r.ExcludeBookingID,
	}
	if r.EndDate != "" {
		endDate, err := types.ParseDate(r.EndDate)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}
	return req, nil
}
