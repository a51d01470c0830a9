package get_day_schedule

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/evilazio/barbershop-booking/internal/domain"
	getDaySchedule "github.com/evilazio/barbershop-booking/internal/usecase/get_day_schedule"
	"github.com/evilazio/barbershop-booking/pkg/logger"
	"github.com/evilazio/barbershop-booking/pkg/types"
)

type useCaseMock struct {
	mock.Mock
}

func (m *useCaseMock) Execute(ctx context.Context, req *getDaySchedule.Request) (*getDaySchedule.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getDaySchedule.Response), args.Error(1)
}

func schedule() *getDaySchedule.Response {
	return &getDaySchedule.Response{
		Day: "20",
		Slots: []domain.ScheduleSlot{
			{Time: types.TimeString("08:00"), Status: domain.SlotAvailable},
			{
				Time:   types.TimeString("09:00"),
				Status: domain.SlotConfirmed,
				Booking: &domain.Booking{
					ID:              5,
					DisplayName:     "Joao",
					Username:        "joao",
					Service:         "Corte",
					Phone:           "119",
					StartTime:       types.TimeString("09:00"),
					DurationMinutes: 30,
				},
			},
		},
	}
}

func get(h *Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_ClientView(t *testing.T) {
	uc := new(useCaseMock)
	uc.On("Execute", mock.Anything, &getDaySchedule.Request{Day: "20"}).Return(schedule(), nil)

	rec := get(NewHandler(uc, logger.Nop()), "/api/schedule/day?day=20")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"day":"20","slots":[
		{"time":"08:00","status":"available"},
		{"time":"09:00","status":"confirmed","booking":{"id":5,"displayName":"Joao","username":"joao","service":"Corte","phone":"119"}}
	]}`, rec.Body.String())
}

func TestHandle_AdminViewIncludesDuration(t *testing.T) {
	uc := new(useCaseMock)
	uc.On("Execute", mock.Anything, mock.Anything).Return(schedule(), nil)

	rec := get(NewAdminHandler(uc, logger.Nop()), "/api/admin/schedule?day=20")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"durationMinutes":30`)
	assert.Contains(t, rec.Body.String(), `"endTime":"09:30"`)
}

func TestHandle_InvalidDay(t *testing.T) {
	uc := new(useCaseMock)
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, getDaySchedule.ErrInvalidDay)

	rec := get(NewHandler(uc, logger.Nop()), "/api/schedule/day?day=99")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Dia invalido para este mes."}`, rec.Body.String())
}
