package update_booking_status

import "github.com/m04kA/charter-booking-service/internal/service/bookings/models"

// UpdateStatusRequest решение владельца по заявке
type UpdateStatusRequest struct {
	Status string  `json:"status" validate:"required,oneof=confirmed rejected"`
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// ToServiceRequest конвертирует в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(userID int64) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		UserID: userID,
		Status: r.Status,
		Reason: r.Reason,
	}
}
