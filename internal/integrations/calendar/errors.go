package calendar

import "errors"

var (
	// ErrCalendarNotFound возвращается, когда календарь не найден или недоступен по токену
	ErrCalendarNotFound = errors.New("calendar client: calendar not found")

	// ErrEventNotFound возвращается, когда событие не найдено
	ErrEventNotFound = errors.New("calendar client: event not found")

	// ErrUnauthorized возвращается при недействительном токене доступа
	ErrUnauthorized = errors.New("calendar client: unauthorized")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("calendar client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от провайдера
	ErrInvalidResponse = errors.New("calendar client: invalid response")
)
