package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/evilazio/barbershop-booking/internal/api/middleware"
	"github.com/evilazio/barbershop-booking/internal/domain"
	"github.com/evilazio/barbershop-booking/internal/service/bookings"
	"github.com/evilazio/barbershop-booking/internal/service/bookings/models"
	"github.com/evilazio/barbershop-booking/pkg/logger"
)

type serviceMock struct {
	mock.Mock
}

func (m *serviceMock) AdminCancel(ctx context.Context, id int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

var admin = &domain.User{ID: 1, Username: "admin", Role: domain.RoleAdmin}

func cancel(svc *serviceMock, id, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/admin/bookings/"+id+"/cancel", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": id})
	req = req.WithContext(middleware.WithUser(req.Context(), admin, "token"))

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, req)
	return rec
}

func TestHandle_Cancels(t *testing.T) {
	svc := new(serviceMock)
	svc.On("AdminCancel", mock.Anything, int64(9), &models.CancelBookingRequest{AdminUsername: "admin", Reason: "cliente faltou"}).
		Return(&models.BookingResponse{ID: 9, Status: "cancelled"}, nil)

	rec := cancel(svc, "9", `{"reason":"cliente faltou"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), msgCancelled)
	svc.AssertExpectations(t)
}

func TestHandle_EmptyBodyUsesDefaultReason(t *testing.T) {
	svc := new(serviceMock)
	svc.On("AdminCancel", mock.Anything, int64(9), &models.CancelBookingRequest{AdminUsername: "admin"}).
		Return(&models.BookingResponse{ID: 9, Status: "cancelled"}, nil)

	rec := cancel(svc, "9", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		err    error
		status int
	}{
		{"invalid id", "abc", nil, http.StatusBadRequest},
		{"not found", "9", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"not cancellable", "9", bookings.ErrNotCancellable, http.StatusConflict},
		{"internal", "9", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(serviceMock)
			if tt.err != nil {
				svc.On("AdminCancel", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			rec := cancel(svc, tt.id, "")

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
