package get_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

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

func (m *serviceMock) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingListResponse), args.Error(1)
}

func list(svc *serviceMock, user *domain.User, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/bookings"+query, nil)
	req = req.WithContext(middleware.WithUser(req.Context(), user, "token"))
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, req)
	return rec
}

func TestHandle_ClientSeesOwnBookings(t *testing.T) {
	svc := new(serviceMock)
	svc.On("List", mock.Anything, mock.MatchedBy(func(req *models.ListBookingsRequest) bool {
		return req.UserID == 7 && !req.IsAdmin && req.Status == nil
	})).Return(&models.BookingListResponse{Bookings: []models.BookingResponse{{ID: 1}, {ID: 2}}}, nil)

	rec := list(svc, &domain.User{ID: 7, Role: domain.RoleUser}, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":1`)
	assert.Contains(t, rec.Body.String(), `"id":2`)
	svc.AssertExpectations(t)
}

func TestHandle_AdminWithStatusFilter(t *testing.T) {
	svc := new(serviceMock)
	svc.On("List", mock.Anything, mock.MatchedBy(func(req *models.ListBookingsRequest) bool {
		return req.IsAdmin && req.Status != nil && *req.Status == "confirmed"
	})).Return(&models.BookingListResponse{Bookings: []models.BookingResponse{}}, nil)

	rec := list(svc, &domain.User{ID: 1, Role: domain.RoleAdmin}, "?status=confirmed")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid status", bookings.ErrInvalidInput, http.StatusBadRequest},
		{"internal", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(serviceMock)
			svc.On("List", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := list(svc, &domain.User{ID: 7, Role: domain.RoleUser}, "?status=foo")

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_NoSession(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(new(serviceMock), logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/bookings", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
