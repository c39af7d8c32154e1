package boats

import "errors"

var (
	// ErrBoatNotFound возвращается, когда лодка не найдена
	ErrBoatNotFound = errors.New("boat not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец лодки
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrSpecialPricingNotFound возвращается, когда на дату нет спецтарифа
	ErrSpecialPricingNotFound = errors.New("special pricing not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
