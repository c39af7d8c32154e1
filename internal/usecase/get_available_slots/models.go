package get_available_slots

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/charter-booking-service/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BoatID int64      // ID лодки
	Date   types.Date // Дата
}

// Response модель ответа со списком доступных слотов
type Response struct {
	BoatID           int64      // ID лодки
	Date             types.Date // Дата, на которую запрашивались слоты
	Currency         string     // Валюта цен
	CalendarDegraded bool       // Календарь не ответил, занятость в нём не учтена
	Slots            []Slot     // Свободные слоты в порядке блоков лодки
}

// Slot модель свободного слота
type Slot struct {
	Name            string           // Название блока ("Morning")
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время окончания (может быть на следующий день)
	DurationMinutes int              // Длительность в минутах
	Special         bool             // Окно дневного спецтарифа
	Price           decimal.Decimal  // Стоимость аренды без услуг
}
