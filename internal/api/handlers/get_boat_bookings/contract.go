package get_boat_bookings

import (
	"context"

	"github.com/m04kA/charter-booking-service/internal/service/bookings/models"
)

type BookingService interface {
	GetBoatBookings(ctx context.Context, req *models.GetBoatBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
