package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m04kA/charter-booking-service/pkg/types"
)

var (
	// ErrInvalidBlockTime время начала или окончания блока не разбирается как HH:MM
	ErrInvalidBlockTime = errors.New("availability block: invalid time")

	// ErrZeroBlockDuration блок нулевой длительности (начало совпадает с окончанием)
	ErrZeroBlockDuration = errors.New("availability block: duration must be greater than zero")

	// ErrInvalidSpecialPricing некорректная запись спецтарифа
	ErrInvalidSpecialPricing = errors.New("special pricing: invalid entry")
)

// AvailabilityBlock is an owner-defined recurring window, e.g. "Morning 09:00-13:00"
type AvailabilityBlock struct {
	Name      string
	StartTime types.TimeString
	EndTime   types.TimeString
}

// DurationMinutes returns (end - start) mod 24h
func (b AvailabilityBlock) DurationMinutes() (int, error) {
	return b.StartTime.MinutesUntil(b.EndTime)
}

// Validate checks that both times parse and the duration is positive.
// Invalid blocks are reported as is, never corrected.
func (b AvailabilityBlock) Validate() error {
	if err := b.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start_time %q", ErrInvalidBlockTime, b.StartTime)
	}
	if err := b.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end_time %q", ErrInvalidBlockTime, b.EndTime)
	}
	d, err := b.DurationMinutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBlockTime, err)
	}
	if d <= 0 {
		return ErrZeroBlockDuration
	}
	return nil
}

// BlockError связывает ошибку с конкретным блоком
type BlockError struct {
	Index int
	Name  string
	Err   error
}

func (e BlockError) Error() string {
	return fmt.Sprintf("block #%d (%s): %v", e.Index+1, e.Name, e.Err)
}

func (e BlockError) Unwrap() error {
	return e.Err
}

// BlockErrors ошибки по отдельным блокам; остальные блоки при этом валидны
type BlockErrors []BlockError

func (e BlockErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, be := range e {
		parts = append(parts, be.Error())
	}
	return strings.Join(parts, "; ")
}

// Messages возвращает сообщения по каждому блоку
func (e BlockErrors) Messages() []string {
	msgs := make([]string, 0, len(e))
	for _, be := range e {
		msgs = append(msgs, be.Error())
	}
	return msgs
}

// ValidateBlocks проверяет каждый блок независимо и возвращает nil, если ошибок нет
func ValidateBlocks(blocks []AvailabilityBlock) BlockErrors {
	var errs BlockErrors
	for i, b := range blocks {
		if err := b.Validate(); err != nil {
			errs = append(errs, BlockError{Index: i, Name: b.Name, Err: err})
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// SpecialPricingType defines how a special pricing entry charges
type SpecialPricingType string

const (
	SpecialPricingHourly SpecialPricingType = "hourly"
	SpecialPricingDaily  SpecialPricingType = "daily"
)

// IsValid returns true for known pricing types
func (t SpecialPricingType) IsValid() bool {
	return t == SpecialPricingHourly || t == SpecialPricingDaily
}

// SpecialPricingEntry overrides the boat rate for one calendar date.
// A daily entry also replaces the bookable blocks with its own window.
type SpecialPricingEntry struct {
	Date         types.Date
	PricingType  SpecialPricingType
	PricePerHour decimal.Decimal
	PricePerDay  decimal.Decimal
	Name         *string
	StartTime    types.TimeString
	EndTime      types.TimeString
}

// IsDaily returns true for flat per-day pricing
func (e *SpecialPricingEntry) IsDaily() bool {
	return e.PricingType == SpecialPricingDaily
}

// Rate returns the rate that applies for the entry's pricing type
func (e *SpecialPricingEntry) Rate() decimal.Decimal {
	if e.IsDaily() {
		return e.PricePerDay
	}
	return e.PricePerHour
}

// Window returns the entry's time range as a slot
func (e *SpecialPricingEntry) Window() (Slot, error) {
	d, err := e.StartTime.MinutesUntil(e.EndTime)
	if err != nil {
		return Slot{}, err
	}
	if d == 0 {
		return Slot{}, ErrZeroBlockDuration
	}
	name := "Special"
	if e.Name != nil && *e.Name != "" {
		name = *e.Name
	}
	return Slot{
		Name:            name,
		StartTime:       e.StartTime,
		EndTime:         e.EndTime,
		DurationMinutes: d,
		Synthetic:       true,
	}, nil
}

// Validate checks the entry before it is stored
func (e *SpecialPricingEntry) Validate() error {
	if e.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidSpecialPricing)
	}
	if !e.PricingType.IsValid() {
		return fmt.Errorf("%w: unknown pricing type %q", ErrInvalidSpecialPricing, e.PricingType)
	}
	if e.Rate().IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidSpecialPricing)
	}
	if e.IsDaily() || !e.StartTime.IsZero() || !e.EndTime.IsZero() {
		if _, err := e.Window(); err != nil {
			return fmt.Errorf("%w: time window: %v", ErrInvalidSpecialPricing, err)
		}
	}
	return nil
}
