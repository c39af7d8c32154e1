package payment

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент платёжного процессора.
// Авторизация по секретному ключу (basic auth), тело запросов в JSON.
type Client struct {
	baseURL       string
	secretKey     string
	callbackToken string
	httpClient    *http.Client
	log           Logger
}

// NewClient создает новый экземпляр клиента платёжного процессора
func NewClient(baseURL, secretKey, callbackToken string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:       baseURL,
		secretKey:     secretKey,
		callbackToken: callbackToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// TokenizeCard обменивает данные карты на идентификатор платёжного метода
func (c *Client) TokenizeCard(ctx context.Context, number, expiry, cvv string) (string, error) {
	month, year, ok := splitExpiry(expiry)
	if !ok {
		return "", fmt.Errorf("%w: malformed expiry", ErrCardDeclined)
	}

	var out tokenizeResponse
	err := c.post(ctx, "/v1/payment_methods", uuid.NewString(), tokenizeRequest{
		Number:   number,
		ExpMonth: month,
		ExpYear:  year,
		CVC:      cvv,
	}, &out)
	if err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("%w: empty payment method id", ErrInvalidResponse)
	}
	return out.ID, nil
}

// CreatePaymentIntent создает платёж на сумму депозита.
// Ключ идемпотентности выводится из номера бронирования, повторный вызов не создаёт второй платёж.
func (c *Client) CreatePaymentIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	body := intentRequest{
		Amount:          MinorUnits(req.Amount),
		Currency:        strings.ToLower(req.Currency),
		PaymentMethodID: req.PaymentMethodID,
		Description:     req.Description,
		Metadata: map[string]string{
			"booking_id": strconv.FormatInt(req.BookingID, 10),
		},
	}

	var out Intent
	if err := c.post(ctx, "/v1/payment_intents", IdempotencyKey(req.BookingID), body, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, fmt.Errorf("%w: empty payment intent id", ErrInvalidResponse)
	}

	c.log.Info("Payment: created intent id=%s for booking_id=%d", out.ID, req.BookingID)
	return &out, nil
}

// VerifyCallbackToken сверяет токен уведомления с настроенным
func (c *Client) VerifyCallbackToken(token string) error {
	if c.callbackToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(c.callbackToken)) != 1 {
		return ErrInvalidCallbackToken
	}
	return nil
}

// ParseCallback разбирает тело уведомления о платеже
func ParseCallback(body []byte) (*Callback, error) {
	var cb Callback
	if err := json.Unmarshal(body, &cb); err != nil {
		return nil, fmt.Errorf("%w: failed to decode callback: %v", ErrInvalidResponse, err)
	}
	if cb.IntentID == "" || cb.Status == "" {
		return nil, fmt.Errorf("%w: callback without id or status", ErrInvalidResponse)
	}
	return &cb, nil
}

// MinorUnits переводит сумму в минимальные единицы валюты (центы)
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

var idempotencyNamespace = uuid.MustParse("6f1c1f4e-3a53-4c55-9a57-0c7a2c1a8b10")

// IdempotencyKey детерминированный ключ идемпотентности для депозита бронирования
func IdempotencyKey(bookingID int64) string {
	return uuid.NewSHA1(idempotencyNamespace, []byte("deposit:"+strconv.FormatInt(bookingID, 10))).String()
}

func splitExpiry(expiry string) (string, string, bool) {
	parts := strings.Split(strings.TrimSpace(expiry), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}

func (c *Client) post(ctx context.Context, path, idempotencyKey string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.SetBasicAuth(c.secretKey, "")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", idempotencyKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", ErrInvalidResponse, err)
	}

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusPaymentRequired:
		return fmt.Errorf("%w: %s", ErrCardDeclined, errorMessage(respBody))
	case resp.StatusCode >= 300:
		c.log.Error("Payment: %s returned %d: %s", path, resp.StatusCode, string(respBody))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, errorMessage(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}

func errorMessage(body []byte) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error.Message != "" {
		return er.Error.Message
	}
	return string(body)
}
