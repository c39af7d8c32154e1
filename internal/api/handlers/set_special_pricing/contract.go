package set_special_pricing

import (
	"context"

	"github.com/m04kA/charter-booking-service/internal/service/boats/models"
)

type BoatService interface {
	SetSpecialPricing(ctx context.Context, boatID int64, req *models.SpecialPricingRequest) (*models.BoatResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
