package payment

import "errors"

var (
	// ErrCardDeclined возвращается, когда процессор отклонил карту
	ErrCardDeclined = errors.New("payment client: card declined")

	// ErrUnauthorized возвращается при неверном секретном ключе
	ErrUnauthorized = errors.New("payment client: unauthorized")

	// ErrInvalidCallbackToken возвращается при несовпадении токена уведомления
	ErrInvalidCallbackToken = errors.New("payment client: invalid callback token")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("payment client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от процессора
	ErrInvalidResponse = errors.New("payment client: invalid response")
)
