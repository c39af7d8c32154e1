package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrBoatNotFound возвращается, когда лодка не найдена
	ErrBoatNotFound = errors.New("boat not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition возвращается, когда решение по бронированию уже принято
	ErrInvalidTransition = errors.New("booking status cannot be changed")

	// ErrSlotTaken возвращается, когда слот уже занят подтверждённым бронированием
	ErrSlotTaken = errors.New("slot is already taken by a confirmed booking")

	// ErrConcurrentUpdate возвращается, когда параллельная транзакция изменила те же данные
	ErrConcurrentUpdate = errors.New("booking was modified concurrently, retry the request")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
