package busytime

import "errors"

var (
	// ErrCalendarUnavailable возвращается, когда ни календарь, ни кэш не дали ответа
	ErrCalendarUnavailable = errors.New("busytime: calendar unavailable")
)
