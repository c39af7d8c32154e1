package list_boats

import (
	"context"

	"github.com/m04kA/charter-booking-service/internal/service/boats/models"
)

type BoatService interface {
	List(ctx context.Context, req *models.ListBoatsRequest) ([]*models.BoatResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
