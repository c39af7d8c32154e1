package domain

import "github.com/shopspring/decimal"

// Platform-wide business constants
const (
	// CommissionPercentage платформенная комиссия, фиксированная для всех лодок
	CommissionPercentage = 10

	// MinDownPaymentPercentage минимальная предоплата; меньшие значения поднимаются до минимума при настройке лодки
	MinDownPaymentPercentage = 10
	MaxDownPaymentPercentage = 100

	// DefaultDownPaymentPercentage предоплата для лодок, где владелец её не указал
	DefaultDownPaymentPercentage = 20

	// MoneyPlaces точность денежных сумм при публикации и хранении
	MoneyPlaces = 2
)

// Business validation constants
const (
	MaxGuestsLimit           = 500
	MaxBoatNameLength        = 200
	MaxServicesPerBoat       = 50
	MaxBlocksPerBoat         = 24
	MaxNotesLength           = 500
	MaxRejectionReasonLength = 500
)

// ExpiredRejectionReason причина отклонения заявок, дата которых прошла без решения владельца
const ExpiredRejectionReason = "expired"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

var (
	hundred = decimal.NewFromInt(100)

	// CommissionRate доля комиссии платформы (0.10)
	CommissionRate = decimal.NewFromInt(CommissionPercentage).Div(hundred)
)

// ClampDownPaymentPercentage приводит процент предоплаты к диапазону [10, 100]
func ClampDownPaymentPercentage(p int) int {
	if p < MinDownPaymentPercentage {
		return MinDownPaymentPercentage
	}
	if p > MaxDownPaymentPercentage {
		return MaxDownPaymentPercentage
	}
	return p
}

// Percent возвращает value * percentage / 100 без округления
func Percent(value decimal.Decimal, percentage int) decimal.Decimal {
	return value.Mul(decimal.NewFromInt(int64(percentage))).Div(hundred)
}

// RoundMoney округляет сумму до копеек
func RoundMoney(value decimal.Decimal) decimal.Decimal {
	return value.Round(MoneyPlaces)
}
