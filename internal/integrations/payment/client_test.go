package payment

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/charter-booking-service/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "sk_test", "cb-token", 2*time.Second, logger.Discard())
}

func TestClient_CreatePaymentIntent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		user, _, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "sk_test", user)
		assert.Equal(t, IdempotencyKey(42), r.Header.Get("Idempotency-Key"))

		var body intentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(12345), body.Amount)
		assert.Equal(t, "usd", body.Currency)
		assert.Equal(t, "pm_1", body.PaymentMethodID)
		assert.Equal(t, "42", body.Metadata["booking_id"])

		_, _ = w.Write([]byte(`{"id":"pi_1","status":"requires_action","client_secret":"sec","amount":12345,"currency":"usd"}`))
	})

	intent, err := client.CreatePaymentIntent(t.Context(), IntentRequest{
		Amount:          decimal.RequireFromString("123.45"),
		Currency:        "USD",
		PaymentMethodID: "pm_1",
		BookingID:       42,
	})
	require.NoError(t, err)
	assert.Equal(t, "pi_1", intent.ID)
	assert.Equal(t, IntentStatusRequiresAction, intent.Status)
}

func TestClient_CreatePaymentIntent_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "declined", status: http.StatusPaymentRequired, body: `{"error":{"code":"card_declined","message":"insufficient funds"}}`, wantErr: ErrCardDeclined},
		{name: "bad key", status: http.StatusUnauthorized, body: `{}`, wantErr: ErrUnauthorized},
		{name: "server error", status: http.StatusInternalServerError, body: `oops`, wantErr: ErrInvalidResponse},
		{name: "empty id", status: http.StatusOK, body: `{"status":"processing"}`, wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.CreatePaymentIntent(t.Context(), IntentRequest{Amount: decimal.NewFromInt(10), Currency: "USD", BookingID: 1})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_TokenizeCard(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_methods", r.URL.Path)

		var body tokenizeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "12", body.ExpMonth)
		assert.Equal(t, "27", body.ExpYear)

		_, _ = w.Write([]byte(`{"id":"pm_card"}`))
	})

	handle, err := client.TokenizeCard(t.Context(), "4242424242424242", "12/27", "123")
	require.NoError(t, err)
	assert.Equal(t, "pm_card", handle)

	_, err = client.TokenizeCard(t.Context(), "4242424242424242", "1227", "123")
	assert.ErrorIs(t, err, ErrCardDeclined)
}

func TestClient_VerifyCallbackToken(t *testing.T) {
	client := NewClient("http://unused", "sk", "cb-token", time.Second, logger.Discard())
	assert.NoError(t, client.VerifyCallbackToken("cb-token"))
	assert.ErrorIs(t, client.VerifyCallbackToken("other"), ErrInvalidCallbackToken)

	unconfigured := NewClient("http://unused", "sk", "", time.Second, logger.Discard())
	assert.ErrorIs(t, unconfigured.VerifyCallbackToken(""), ErrInvalidCallbackToken)
}

func TestParseCallback(t *testing.T) {
	cb, err := ParseCallback([]byte(`{"id":"pi_1","status":"succeeded","metadata":{"booking_id":"7"}}`))
	require.NoError(t, err)
	assert.Equal(t, "pi_1", cb.IntentID)
	assert.Equal(t, IntentStatusSucceeded, cb.Status)

	_, err = ParseCallback([]byte(`{"status":"succeeded"}`))
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestIdempotencyKey_Deterministic(t *testing.T) {
	assert.Equal(t, IdempotencyKey(5), IdempotencyKey(5))
	assert.NotEqual(t, IdempotencyKey(5), IdempotencyKey(6))
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(1000), MinorUnits(decimal.NewFromInt(10)))
	assert.Equal(t, int64(1), MinorUnits(decimal.RequireFromString("0.005")))
}
