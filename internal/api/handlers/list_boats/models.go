package list_boats

import "github.com/m04kA/charter-booking-service/internal/service/boats/models"

// ListBoatsResponse список лодок
type ListBoatsResponse struct {
	Boats []*models.BoatResponse `json:"boats"`
	Total int                    `json:"total"`
}
