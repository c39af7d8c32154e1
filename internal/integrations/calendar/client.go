package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент внешнего календаря (REST API в формате Google Calendar v3).
// Запросы авторизуются OAuth2 bearer-токеном.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает клиента с постоянным токеном доступа
func NewClient(baseURL, accessToken string, timeout time.Duration, log Logger) *Client {
	return NewClientWithTokenSource(baseURL, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}), timeout, log)
}

// NewClientWithTokenSource создает клиента с произвольным источником токенов (обновляемые токены)
func NewClientWithTokenSource(baseURL string, ts oauth2.TokenSource, timeout time.Duration, log Logger) *Client {
	httpClient := oauth2.NewClient(context.Background(), ts)
	httpClient.Timeout = timeout

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		log:        log,
	}
}

// GetCalendarList возвращает календари, доступные по токену
func (c *Client) GetCalendarList(ctx context.Context) ([]CalendarListEntry, error) {
	var out calendarListResponse
	if err := c.do(ctx, http.MethodGet, "/users/me/calendarList", nil, &out, ErrInvalidResponse); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// CheckAvailability возвращает занятые интервалы календаря в [timeMin, timeMax)
func (c *Client) CheckAvailability(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]BusyRange, error) {
	req := freeBusyRequest{
		TimeMin: timeMin,
		TimeMax: timeMax,
		Items:   []freeBusyCalendar{{ID: calendarID}},
	}

	var out freeBusyResponse
	if err := c.do(ctx, http.MethodPost, "/freeBusy", req, &out, ErrInvalidResponse); err != nil {
		return nil, err
	}

	cal, ok := out.Calendars[calendarID]
	if !ok {
		return nil, fmt.Errorf("%w: calendar %s missing in freeBusy response", ErrInvalidResponse, calendarID)
	}
	if len(cal.Errors) > 0 {
		if cal.Errors[0].Reason == "notFound" {
			return nil, ErrCalendarNotFound
		}
		return nil, fmt.Errorf("%w: freeBusy error for %s: %s", ErrInvalidResponse, calendarID, cal.Errors[0].Reason)
	}

	busy := make([]BusyRange, 0, len(cal.Busy))
	busy = append(busy, cal.Busy...)
	return busy, nil
}

// CreateEvent создает событие в календаре
func (c *Client) CreateEvent(ctx context.Context, calendarID string, event Event) (*Event, error) {
	var out Event
	if err := c.do(ctx, http.MethodPost, eventsPath(calendarID, ""), event, &out, ErrCalendarNotFound); err != nil {
		return nil, err
	}
	c.log.Info("Calendar: created event id=%s in calendar=%s", out.ID, calendarID)
	return &out, nil
}

// UpdateEvent заменяет событие календаря
func (c *Client) UpdateEvent(ctx context.Context, calendarID, eventID string, event Event) (*Event, error) {
	var out Event
	if err := c.do(ctx, http.MethodPut, eventsPath(calendarID, eventID), event, &out, ErrEventNotFound); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteEvent удаляет событие; уже удалённое событие не считается ошибкой
func (c *Client) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	err := c.do(ctx, http.MethodDelete, eventsPath(calendarID, eventID), nil, nil, ErrEventNotFound)
	if errors.Is(err, ErrEventNotFound) {
		c.log.Warn("Calendar: event id=%s already deleted", eventID)
		return nil
	}
	return err
}

func eventsPath(calendarID, eventID string) string {
	p := "/calendars/" + url.PathEscape(calendarID) + "/events"
	if eventID != "" {
		p += "/" + url.PathEscape(eventID)
	}
	return p
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, notFound error) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusNoContent:
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound, http.StatusGone:
		return notFound
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}
