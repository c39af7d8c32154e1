package create_booking

import (
	"errors"
	"strings"
)

var (
	// ErrBoatNotFound возвращается, когда лодка не найдена
	ErrBoatNotFound = errors.New("create_booking: boat not found")

	// ErrBoatNotBookable возвращается, когда лодка не опубликована
	ErrBoatNotBookable = errors.New("create_booking: boat is not available for booking")

	// ErrInvalidDate возвращается, когда дата бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrSlotNotFound возвращается, когда слот с таким именем не найден или интервал некорректен
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrServiceNotFound возвращается, когда у лодки нет выбранной услуги
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrSlotNotAvailable возвращается, когда слот уже занят подтверждённым бронированием или в календаре
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrCardDeclined возвращается, когда процессор отклонил карту при токенизации
	ErrCardDeclined = errors.New("create_booking: card declined")

	// ErrValidation возвращается вместе с ValidationError
	ErrValidation = errors.New("create_booking: validation failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// ValidationError содержит все нарушенные правила заявки
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + strings.Join(e.Errors, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
