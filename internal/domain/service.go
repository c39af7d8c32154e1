package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidService некорректная дополнительная услуга
	ErrInvalidService = errors.New("service: invalid service")

	// ErrUnknownService у лодки нет услуги с таким названием
	ErrUnknownService = errors.New("service: unknown service")
)

// ServicePricingType defines how an add-on service is charged
type ServicePricingType string

const (
	ServicePricingFixed     ServicePricingType = "fixed"
	ServicePricingPerPerson ServicePricingType = "per_person"
	ServicePricingPerHour   ServicePricingType = "per_hour"
)

// IsValid returns true for known pricing types
func (t ServicePricingType) IsValid() bool {
	switch t {
	case ServicePricingFixed, ServicePricingPerPerson, ServicePricingPerHour:
		return true
	default:
		return false
	}
}

// Service is an add-on offered with the boat (catering, skipper, fishing gear)
type Service struct {
	Name        string
	Price       decimal.Decimal
	PricingType ServicePricingType
	Description *string
}

// Validate checks a service submitted by the owner; pricing type is mandatory
func (s *Service) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidService)
	}
	if s.Price.IsNegative() {
		return fmt.Errorf("%w: %s: price must not be negative", ErrInvalidService, s.Name)
	}
	if !s.PricingType.IsValid() {
		return fmt.Errorf("%w: %s: unknown pricing type %q", ErrInvalidService, s.Name, s.PricingType)
	}
	return nil
}

// InferServicePricingType восстанавливает тип цены по описанию.
// Используется только при чтении старых записей, где тип не был сохранён.
func InferServicePricingType(description string) ServicePricingType {
	d := strings.ToLower(description)
	switch {
	case strings.Contains(d, "per hour"):
		return ServicePricingPerHour
	case strings.Contains(d, "per person"):
		return ServicePricingPerPerson
	default:
		return ServicePricingFixed
	}
}

// BookedService is a snapshot of a service copied into a booking
type BookedService struct {
	Name        string             `json:"name"`
	Price       decimal.Decimal    `json:"price"`
	PricingType ServicePricingType `json:"pricing_type"`
	Description *string            `json:"description,omitempty"`
	Amount      decimal.Decimal    `json:"amount"`
}
