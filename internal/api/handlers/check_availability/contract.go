package check_availability

import (
	"context"

	"github.com/m04kA/charter-booking-service/internal/service/bookings/models"
)

type BookingService interface {
	CheckAvailability(ctx context.Context, req *models.CheckAvailabilityRequest) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
