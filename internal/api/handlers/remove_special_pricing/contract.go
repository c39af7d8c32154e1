package remove_special_pricing

import (
	"context"

	"github.com/m04kA/charter-booking-service/internal/service/boats/models"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

type BoatService interface {
	RemoveSpecialPricing(ctx context.Context, boatID int64, date types.Date, userID int64) (*models.BoatResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
