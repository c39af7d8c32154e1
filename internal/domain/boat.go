package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/charter-booking-service/pkg/types"
)

// BoatStatus represents the listing status of a boat
type BoatStatus string

const (
	BoatStatusDraft    BoatStatus = "draft"
	BoatStatusActive   BoatStatus = "active"
	BoatStatusInactive BoatStatus = "inactive"
)

// IsValid returns true for known statuses
func (s BoatStatus) IsValid() bool {
	return s == BoatStatusDraft || s == BoatStatusActive || s == BoatStatusInactive
}

// CalendarIntegration links a boat to an external calendar
type CalendarIntegration struct {
	Enabled    bool
	CalendarID string
}

// Boat represents a charter listing with its availability and pricing configuration
type Boat struct {
	ID                    int64
	OwnerID               int64
	Name                  string
	Description           *string
	Location              *string
	Status                BoatStatus
	MaxGuests             int
	PricePerHour          decimal.Decimal
	WeekendPrice          *decimal.Decimal // nil = в выходные действует базовая цена
	DownPaymentPercentage int
	Calendar              CalendarIntegration
	AvailabilityBlocks    []AvailabilityBlock
	SpecialPricing        []SpecialPricingEntry
	Services              []Service

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the boat accepts bookings
func (b *Boat) IsActive() bool {
	return b.Status == BoatStatusActive
}

// IsOwnedBy returns true if the user owns the boat
func (b *Boat) IsOwnedBy(userID int64) bool {
	return b.OwnerID == userID
}

// UsesCalendar returns true if external busy periods must be taken into account
func (b *Boat) UsesCalendar() bool {
	return b.Calendar.Enabled && b.Calendar.CalendarID != ""
}

// SpecialPricingFor returns the special pricing entry for the date, if any
func (b *Boat) SpecialPricingFor(date types.Date) (*SpecialPricingEntry, bool) {
	for i := range b.SpecialPricing {
		if b.SpecialPricing[i].Date == date {
			return &b.SpecialPricing[i], true
		}
	}
	return nil, false
}

// SetSpecialPricing stores the entry, replacing an existing one for the same date
func (b *Boat) SetSpecialPricing(entry SpecialPricingEntry) {
	for i := range b.SpecialPricing {
		if b.SpecialPricing[i].Date == entry.Date {
			b.SpecialPricing[i] = entry
			return
		}
	}
	b.SpecialPricing = append(b.SpecialPricing, entry)
}

// RemoveSpecialPricing deletes the entry for the date and reports whether it existed
func (b *Boat) RemoveSpecialPricing(date types.Date) bool {
	for i := range b.SpecialPricing {
		if b.SpecialPricing[i].Date == date {
			b.SpecialPricing = append(b.SpecialPricing[:i], b.SpecialPricing[i+1:]...)
			return true
		}
	}
	return false
}

// FindService returns the boat's service by name
func (b *Boat) FindService(name string) (*Service, bool) {
	for i := range b.Services {
		if b.Services[i].Name == name {
			return &b.Services[i], true
		}
	}
	return nil, false
}

// SelectServices находит услуги лодки по названиям; повторы учитываются один раз
func (b *Boat) SelectServices(names []string) ([]Service, error) {
	services := make([]Service, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		s, ok := b.FindService(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownService, name)
		}
		services = append(services, *s)
	}
	return services, nil
}

// BoatFilter фильтр списка лодок; пустой фильтр возвращает все лодки
type BoatFilter struct {
	ID      *int64
	OwnerID *int64
	Status  *BoatStatus
}

// Matches returns true if the boat satisfies every set field of the filter
func (f BoatFilter) Matches(b *Boat) bool {
	if f.ID != nil && b.ID != *f.ID {
		return false
	}
	if f.OwnerID != nil && b.OwnerID != *f.OwnerID {
		return false
	}
	if f.Status != nil && b.Status != *f.Status {
		return false
	}
	return true
}
