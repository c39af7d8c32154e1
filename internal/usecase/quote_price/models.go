package quote_price

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/charter-booking-service/internal/domain"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

// Request модель запроса на расчёт стоимости
type Request struct {
	BoatID    int64            // ID лодки
	Date      types.Date       // Дата аренды
	SlotName  string           // Имя слота; пусто = выбор по интервалу
	StartTime types.TimeString // Начало произвольного интервала
	EndTime   types.TimeString // Окончание произвольного интервала
	Guests    int              // Количество гостей
	Services  []string         // Названия выбранных услуг
}

// Response модель ответа с расчётом стоимости
type Response struct {
	BoatID       int64
	Date         types.Date
	EndDate      types.Date // следующий день для ночных слотов
	SlotName     string
	StartTime    types.TimeString
	EndTime      types.TimeString
	IsCustomTime bool
	Currency     string

	RateSource        domain.RateSource
	PricingType       domain.SpecialPricingType
	Rate              decimal.Decimal
	Hours             decimal.Decimal
	BaseAmount        decimal.Decimal
	Services          []domain.BookedService
	ServicesTotal     decimal.Decimal
	Total             decimal.Decimal
	DepositPercentage int
	Deposit           decimal.Decimal
	RemainingBalance  decimal.Decimal
}
