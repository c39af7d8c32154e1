package quote_price

import "errors"

var (
	// ErrBoatNotFound возвращается, когда лодка не найдена
	ErrBoatNotFound = errors.New("quote_price: boat not found")

	// ErrBoatNotBookable возвращается, когда лодка не опубликована
	ErrBoatNotBookable = errors.New("quote_price: boat is not available for booking")

	// ErrSlotNotFound возвращается, когда слот с таким именем не найден или интервал некорректен
	ErrSlotNotFound = errors.New("quote_price: slot not found")

	// ErrServiceNotFound возвращается, когда у лодки нет выбранной услуги
	ErrServiceNotFound = errors.New("quote_price: service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_price: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_price: internal error")
)
