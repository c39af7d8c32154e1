package payment

import "github.com/shopspring/decimal"

// CallbackTokenHeader заголовок, которым процессор подписывает уведомления
const CallbackTokenHeader = "X-Callback-Token"

// Статусы платежа на стороне процессора
const (
	IntentStatusRequiresAction = "requires_action"
	IntentStatusProcessing     = "processing"
	IntentStatusSucceeded      = "succeeded"
	IntentStatusFailed         = "failed"
)

type tokenizeRequest struct {
	Number   string `json:"number"`
	ExpMonth string `json:"exp_month"`
	ExpYear  string `json:"exp_year"`
	CVC      string `json:"cvc"`
}

type tokenizeResponse struct {
	ID string `json:"id"`
}

// IntentRequest параметры создания платежа за депозит
type IntentRequest struct {
	Amount          decimal.Decimal
	Currency        string
	PaymentMethodID string
	BookingID       int64
	Description     string
}

type intentRequest struct {
	Amount          int64             `json:"amount"`
	Currency        string            `json:"currency"`
	PaymentMethodID string            `json:"payment_method"`
	Description     string            `json:"description,omitempty"`
	Metadata        map[string]string `json:"metadata"`
}

// Intent созданный платёж
type Intent struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	ClientSecret string `json:"client_secret,omitempty"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// Callback уведомление процессора о результате платежа
type Callback struct {
	IntentID string            `json:"id"`
	Status   string            `json:"status"`
	Metadata map[string]string `json:"metadata"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
