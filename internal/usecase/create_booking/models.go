package create_booking

import (
	"github.com/m04kA/charter-booking-service/internal/domain"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64            // ID клиента (из X-User-ID)
	BoatID    int64            // ID лодки
	Date      types.Date       // Дата начала аренды
	SlotName  string           // Имя слота; пусто = выбор по интервалу
	StartTime types.TimeString // Начало интервала
	EndTime   types.TimeString // Окончание интервала
	Guests    int              // Количество гостей
	Services  []string         // Названия выбранных услуг

	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	Notes         *string

	// Способ оплаты: идентификатор платёжного метода процессора или данные карты
	PaymentMethodID string
	CardNumber      string
	CardExpiry      string // MM/YY
	CardCVV         string
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking

	// ClientSecret передаётся клиенту, если платёж требует подтверждения (3-D Secure)
	ClientSecret *string
}
