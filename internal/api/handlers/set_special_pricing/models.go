package set_special_pricing

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/charter-booking-service/internal/service/boats/models"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

// SetSpecialPricingRequest тело запроса на установку спецтарифа
// Дата берётся из пути
type SetSpecialPricingRequest struct {
	PricingType  string           `json:"pricingType" validate:"required,oneof=hourly daily"`
	PricePerHour decimal.Decimal  `json:"pricePerHour"`
	PricePerDay  decimal.Decimal  `json:"pricePerDay"`
	Name         *string          `json:"name,omitempty" validate:"omitempty,max=100"`
	StartTime    types.TimeString `json:"startTime,omitempty"`
	EndTime      types.TimeString `json:"endTime,omitempty"`
}

// ToServiceRequest конвертирует в модель сервиса
func (r *SetSpecialPricingRequest) ToServiceRequest(userID int64, date types.Date) *models.SpecialPricingRequest {
	return &models.SpecialPricingRequest{
		UserID:       userID,
		Date:         date,
		PricingType:  r.PricingType,
		PricePerHour: r.PricePerHour,
		PricePerDay:  r.PricePerDay,
		Name:         r.Name,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
	}
}
