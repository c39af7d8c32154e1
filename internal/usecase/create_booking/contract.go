package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/charter-booking-service/internal/domain"
	"github.com/m04kA/charter-booking-service/internal/integrations/payment"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	SetPaymentIntent(ctx context.Context, id int64, intentID string) error
	UpdatePaymentStatus(ctx context.Context, id int64, from, to domain.PaymentStatus) (*domain.Booking, error)
}

// BoatRepository интерфейс репозитория лодок
type BoatRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Boat, error)
}

// BusyTimeProvider источник занятости во внешнем календаре
type BusyTimeProvider interface {
	BusyPeriods(ctx context.Context, boat *domain.Boat, date types.Date) ([]domain.BusyPeriod, error)
}

// PaymentClient интерфейс клиента платёжного процессора
type PaymentClient interface {
	TokenizeCard(ctx context.Context, number, expiry, cvv string) (string, error)
	CreatePaymentIntent(ctx context.Context, req payment.IntentRequest) (*payment.Intent, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	IncBookingsCreated()
	IncPaymentIntent(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
