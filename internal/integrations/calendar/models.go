package calendar

import "time"

// CalendarListEntry календарь, доступный по токену
type CalendarListEntry struct {
	ID       string `json:"id"`
	Summary  string `json:"summary"`
	Primary  bool   `json:"primary,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

type calendarListResponse struct {
	Items []CalendarListEntry `json:"items"`
}

// BusyRange занятый интервал во внешнем календаре
type BusyRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type freeBusyRequest struct {
	TimeMin time.Time          `json:"timeMin"`
	TimeMax time.Time          `json:"timeMax"`
	Items   []freeBusyCalendar `json:"items"`
}

type freeBusyCalendar struct {
	ID string `json:"id"`
}

type freeBusyResponse struct {
	Calendars map[string]struct {
		Busy   []BusyRange `json:"busy"`
		Errors []struct {
			Domain string `json:"domain"`
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"calendars"`
}

// EventTime начало или окончание события
type EventTime struct {
	DateTime time.Time `json:"dateTime"`
	TimeZone string    `json:"timeZone,omitempty"`
}

// Event событие календаря
type Event struct {
	ID          string    `json:"id,omitempty"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Start       EventTime `json:"start"`
	End         EventTime `json:"end"`
	Status      string    `json:"status,omitempty"`
}
