package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/m04kA/charter-booking-service/internal/config"
	"github.com/m04kA/charter-booking-service/internal/domain"
	boatRepo "github.com/m04kA/charter-booking-service/internal/infra/storage/boat"
	bookingRepo "github.com/m04kA/charter-booking-service/internal/infra/storage/booking"
	"github.com/m04kA/charter-booking-service/internal/infra/storage/memory"
	"github.com/m04kA/charter-booking-service/internal/infra/storage/migrations"
	"github.com/m04kA/charter-booking-service/pkg/dbmetrics"
	"github.com/m04kA/charter-booking-service/pkg/logger"
	"github.com/m04kA/charter-booking-service/pkg/metrics"
	"github.com/m04kA/charter-booking-service/pkg/txmanager"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

type boatStore interface {
	Create(ctx context.Context, boat *domain.Boat) (*domain.Boat, error)
	GetByID(ctx context.Context, id int64) (*domain.Boat, error)
	List(ctx context.Context, filter domain.BoatFilter) ([]*domain.Boat, error)
	Update(ctx context.Context, boat *domain.Boat) (*domain.Boat, error)
}

type bookingStore interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByPaymentIntent(ctx context.Context, intentID string) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus, reason *string) (*domain.Booking, error)
	UpdatePaymentStatus(ctx context.Context, id int64, from, to domain.PaymentStatus) (*domain.Booking, error)
	SetPaymentIntent(ctx context.Context, id int64, intentID string) error
	RejectExpired(ctx context.Context, before types.Date, reason string) (int64, error)
}

type txManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage репозитории и менеджер транзакций выбранного драйвера
type storage struct {
	boats    boatStore
	bookings bookingStore
	tx       txManager
	close    func() error
}

// openStorage подключает PostgreSQL (с миграциями) или хранилище в памяти
func openStorage(cfg *config.Config, m *metrics.Metrics, stop <-chan struct{}, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == "memory" {
		log.Warn("Using in-memory storage, data will be lost on restart")
		return &storage{
			boats:    memory.NewBoatRepository(),
			bookings: memory.NewBookingRepository(),
			tx:       txmanager.NewMutexManager(),
			close:    func() error { return nil },
		}, nil
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if err := migrations.Up(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	log.Info("Database migrations applied")

	// С nil-метриками обёртка работает как обычный *sql.DB
	wrapped := dbmetrics.WrapWithDefault(db, m, stop)

	return &storage{
		boats:    boatRepo.NewRepository(wrapped),
		bookings: bookingRepo.NewRepository(wrapped),
		tx:       txmanager.NewTransactionManager(wrapped),
		close:    db.Close,
	}, nil
}
