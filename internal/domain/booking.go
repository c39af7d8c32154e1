package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/charter-booking-service/pkg/types"
)

// BookingStatus represents the approval status of a booking
type BookingStatus string

const (
	StatusPendingApproval BookingStatus = "pending_approval"
	StatusConfirmed       BookingStatus = "confirmed"
	StatusRejected        BookingStatus = "rejected"
)

// IsValid returns true for known statuses
func (s BookingStatus) IsValid() bool {
	return s == StatusPendingApproval || s == StatusConfirmed || s == StatusRejected
}

// CanTransitionTo returns true for the one-way transitions pending_approval -> confirmed | rejected
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return s == StatusPendingApproval && (next == StatusConfirmed || next == StatusRejected)
}

// PaymentStatus tracks the deposit independently of the approval status
type PaymentStatus string

const (
	PaymentPending     PaymentStatus = "pending"
	PaymentDepositPaid PaymentStatus = "deposit_paid"
	PaymentFailed      PaymentStatus = "failed"
)

// IsValid returns true for known statuses
func (s PaymentStatus) IsValid() bool {
	return s == PaymentPending || s == PaymentDepositPaid || s == PaymentFailed
}

// CanTransitionTo returns true for pending -> deposit_paid | failed
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	return s == PaymentPending && (next == PaymentDepositPaid || next == PaymentFailed)
}

// RateSource tells which rule produced the booking rate
type RateSource string

const (
	RateSourceSpecial RateSource = "special"
	RateSourceWeekend RateSource = "weekend"
	RateSourceBase    RateSource = "base"
)

// Booking represents a charter request. Once created it keeps a frozen price
// breakdown and is only status-transitioned, never deleted.
type Booking struct {
	ID           int64
	BoatID       int64
	CustomerID   int64
	StartDate    types.Date
	EndDate      types.Date // следующий день для ночных слотов
	StartTime    types.TimeString
	EndTime      types.TimeString
	SlotName     string
	IsCustomTime bool
	Guests       int

	// Price breakdown snapshot
	TotalHours            decimal.Decimal
	Rate                  decimal.Decimal
	RateSource            RateSource
	PricingType           SpecialPricingType
	BasePrice             decimal.Decimal
	AdditionalServices    []BookedService
	TotalAmount           decimal.Decimal
	CommissionAmount      decimal.Decimal
	DownPaymentPercentage int
	DownPayment           decimal.Decimal
	RemainingBalance      decimal.Decimal
	Currency              string

	Status          BookingStatus
	PaymentStatus   PaymentStatus
	PaymentIntentID *string

	// Denormalized data for history
	BoatName      string
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	Notes         *string

	RejectionReason *string
	ConfirmedAt     *time.Time
	RejectedAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsConfirmed returns true if the owner approved the booking
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// IsPending returns true while the booking awaits the owner's decision
func (b *Booking) IsPending() bool {
	return b.Status == StatusPendingApproval
}

// OverlapsRange reports whether the booking strictly overlaps [start, end), given in
// minutes from the start of date. Bookings starting more than a day away never overlap.
func (b *Booking) OverlapsRange(date types.Date, start, end int) bool {
	offset, ok := DayOffsetMinutes(date, b.StartDate)
	if !ok {
		return false
	}
	bs, be, err := MinuteRange(b.StartTime, b.EndTime)
	if err != nil {
		return false
	}
	return RangesOverlap(bs+offset, be+offset, start, end)
}

// OverlappingBookings returns the bookings that strictly overlap [start, end) on date
func OverlappingBookings(bookings []*Booking, date types.Date, start, end int) []*Booking {
	var out []*Booking
	for _, b := range bookings {
		if b != nil && b.OverlapsRange(date, start, end) {
			out = append(out, b)
		}
	}
	return out
}

// BookingFilter фильтр списка бронирований; пустой фильтр возвращает все бронирования
type BookingFilter struct {
	BoatID     *int64
	BoatIDs    []int64 // бронирования любой из лодок (лодки владельца)
	CustomerID *int64
	Date       *types.Date // по дате начала
	DateFrom   *types.Date // дата начала не раньше (включительно)
	DateTo     *types.Date // дата начала не позже (включительно)
	Status     *BookingStatus
	ExcludeID  *int64
}

// Matches returns true if the booking satisfies every set field of the filter
func (f BookingFilter) Matches(b *Booking) bool {
	if f.BoatID != nil && b.BoatID != *f.BoatID {
		return false
	}
	if f.BoatIDs != nil && !containsID(f.BoatIDs, b.BoatID) {
		return false
	}
	if f.CustomerID != nil && b.CustomerID != *f.CustomerID {
		return false
	}
	if f.Date != nil && b.StartDate != *f.Date {
		return false
	}
	if f.DateFrom != nil && b.StartDate.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && b.StartDate.After(*f.DateTo) {
		return false
	}
	if f.Status != nil && b.Status != *f.Status {
		return false
	}
	if f.ExcludeID != nil && b.ID == *f.ExcludeID {
		return false
	}
	return true
}

// HasDateBounds returns true if the filter restricts the start date
func (f BookingFilter) HasDateBounds() bool {
	return f.Date != nil || f.DateFrom != nil || f.DateTo != nil
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
