package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/charter-booking-service/internal/usecase/get_available_slots"
	"github.com/m04kA/charter-booking-service/pkg/logger"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*getAvailableSlots.Response)
	return resp, args.Error(1)
}

func get(uc *mockUseCase, boatID, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/boats/"+boatID+"/available-slots"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"boatId": boatID})
	w := httptest.NewRecorder()
	NewHandler(uc, logger.Discard()).Handle(w, req)
	return w
}

func TestHandle_ReturnsSlots(t *testing.T) {
	uc := &mockUseCase{}
	date := types.NewDate(2025, 6, 14)
	uc.On("Execute", mock.Anything, &getAvailableSlots.Request{BoatID: 7, Date: date}).
		Return(&getAvailableSlots.Response{
			BoatID:           7,
			Date:             date,
			Currency:         "EUR",
			CalendarDegraded: true,
			Slots: []getAvailableSlots.Slot{
				{Name: "Night", StartTime: "22:00", EndTime: "02:00", DurationMinutes: 240, Price: decimal.NewFromInt(960)},
			},
		}, nil)

	w := get(uc, "7", "?date=2025-06-14")

	require.Equal(t, http.StatusOK, w.Code)
	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.CalendarDegraded)
	require.Len(t, body.Slots, 1)
	assert.Equal(t, "Night", body.Slots[0].Name)
	assert.Equal(t, types.TimeString("02:00"), body.Slots[0].EndTime)
	assert.True(t, decimal.NewFromInt(960).Equal(body.Slots[0].Price))
}

func TestHandle_BadInput(t *testing.T) {
	uc := &mockUseCase{}

	assert.Equal(t, http.StatusBadRequest, get(uc, "x", "?date=2025-06-14").Code)
	assert.Equal(t, http.StatusBadRequest, get(uc, "7", "").Code)
	assert.Equal(t, http.StatusBadRequest, get(uc, "7", "?date=2025-13-40").Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandle_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", getAvailableSlots.ErrBoatNotFound, http.StatusNotFound},
		{"draft", getAvailableSlots.ErrBoatNotBookable, http.StatusNotFound},
		{"past", getAvailableSlots.ErrInvalidDate, http.StatusBadRequest},
		{"internal", getAvailableSlots.ErrInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tc.err)

			assert.Equal(t, tc.status, get(uc, "7", "?date=2025-06-14").Code)
		})
	}
}
