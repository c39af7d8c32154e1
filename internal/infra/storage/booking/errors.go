package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrStatusConflict возвращается, когда текущий статус не совпал с ожидаемым (бронирование уже обработано)
	ErrStatusConflict = errors.New("booking.repository: booking status has already changed")

	// ErrConflict возвращается, когда транзакция проиграла конкурентной (serialization failure)
	ErrConflict = errors.New("booking.repository: concurrent update conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")

	// ErrEncode возвращается при ошибке сериализации JSONB-полей
	ErrEncode = errors.New("booking.repository: failed to encode jsonb column")
)
