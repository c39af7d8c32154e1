package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/charter-booking-service/internal/domain"
	bookingRepo "github.com/m04kA/charter-booking-service/internal/infra/storage/booking"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

// BookingRepository in-memory репозиторий бронирований.
// Каждая операция атомарна под мьютексом.
type BookingRepository struct {
	mu       sync.RWMutex
	nextID   int64
	bookings map[int64]*domain.Booking
	now      func() time.Time
}

// NewBookingRepository создает пустой репозиторий бронирований
func NewBookingRepository() *BookingRepository {
	return &BookingRepository{
		bookings: make(map[int64]*domain.Booking),
		now:      time.Now,
	}
}

// Create сохраняет копию бронирования и присваивает ему ID
func (r *BookingRepository) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := r.now()

	stored := copyBooking(booking)
	stored.ID = r.nextID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.bookings[stored.ID] = stored

	return copyBooking(stored), nil
}

// GetByID возвращает копию бронирования
func (r *BookingRepository) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return copyBooking(b), nil
}

// GetByPaymentIntent ищет бронирование по идентификатору платежа
func (r *BookingRepository) GetByPaymentIntent(_ context.Context, intentID string) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bookings {
		if b.PaymentIntentID != nil && *b.PaymentIntentID == intentID {
			return copyBooking(b), nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

// List возвращает бронирования по фильтру в том же порядке, что и PostgreSQL-репозиторий
func (r *BookingRepository) List(_ context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bookings := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if filter.Matches(b) {
			bookings = append(bookings, copyBooking(b))
		}
	}

	if filter.HasDateBounds() {
		sort.Slice(bookings, func(i, j int) bool {
			if c := bookings[i].StartDate.Compare(bookings[j].StartDate); c != 0 {
				return c < 0
			}
			if bookings[i].StartTime != bookings[j].StartTime {
				return bookings[i].StartTime.IsBefore(bookings[j].StartTime)
			}
			return bookings[i].ID < bookings[j].ID
		})
	} else {
		sort.Slice(bookings, func(i, j int) bool {
			a, b := bookings[i], bookings[j]
			if c := a.StartDate.Compare(b.StartDate); c != 0 {
				return c > 0
			}
			if a.StartTime != b.StartTime {
				return a.StartTime.IsAfter(b.StartTime)
			}
			return a.ID > b.ID
		})
	}

	return bookings, nil
}

// UpdateStatus переводит бронирование из статуса from в статус to (compare-and-swap)
func (r *BookingRepository) UpdateStatus(
	_ context.Context,
	id int64,
	from, to domain.BookingStatus,
	reason *string,
) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	if b.Status != from {
		return nil, bookingRepo.ErrStatusConflict
	}

	now := r.now()
	b.Status = to
	b.UpdatedAt = now
	switch to {
	case domain.StatusConfirmed:
		b.ConfirmedAt = &now
	case domain.StatusRejected:
		b.RejectedAt = &now
		b.RejectionReason = copyString(reason)
	}

	return copyBooking(b), nil
}

// UpdatePaymentStatus переводит статус оплаты из from в to (compare-and-swap)
func (r *BookingRepository) UpdatePaymentStatus(_ context.Context, id int64, from, to domain.PaymentStatus) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	if b.PaymentStatus != from {
		return nil, bookingRepo.ErrStatusConflict
	}

	b.PaymentStatus = to
	b.UpdatedAt = r.now()

	return copyBooking(b), nil
}

// SetPaymentIntent сохраняет идентификатор платежа за депозит
func (r *BookingRepository) SetPaymentIntent(_ context.Context, id int64, intentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.PaymentIntentID = &intentID
	b.UpdatedAt = r.now()

	return nil
}

// RejectExpired отклоняет ожидающие заявки с датой начала раньше before
func (r *BookingRepository) RejectExpired(_ context.Context, before types.Date, reason string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	var count int64
	for _, b := range r.bookings {
		if b.Status != domain.StatusPendingApproval || !b.StartDate.Before(before) {
			continue
		}
		b.Status = domain.StatusRejected
		b.RejectionReason = copyString(&reason)
		b.RejectedAt = &now
		b.UpdatedAt = now
		count++
	}

	return count, nil
}

func copyBooking(b *domain.Booking) *domain.Booking {
	c := *b
	c.AdditionalServices = append([]domain.BookedService{}, b.AdditionalServices...)
	c.PaymentIntentID = copyString(b.PaymentIntentID)
	c.CustomerPhone = copyString(b.CustomerPhone)
	c.Notes = copyString(b.Notes)
	c.RejectionReason = copyString(b.RejectionReason)
	return &c
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
