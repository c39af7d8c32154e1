package boats

import (
	"context"

	"github.com/m04kA/charter-booking-service/internal/domain"
)

// BoatRepository интерфейс репозитория лодок
type BoatRepository interface {
	Create(ctx context.Context, boat *domain.Boat) (*domain.Boat, error)
	GetByID(ctx context.Context, id int64) (*domain.Boat, error)
	List(ctx context.Context, filter domain.BoatFilter) ([]*domain.Boat, error)
	Update(ctx context.Context, boat *domain.Boat) (*domain.Boat, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
