package register

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/evilazio/barbershop-booking/internal/service/users"
	"github.com/evilazio/barbershop-booking/internal/service/users/models"
	"github.com/evilazio/barbershop-booking/pkg/logger"
)

type serviceMock struct {
	mock.Mock
}

func (m *serviceMock) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserResponse), args.Error(1)
}

func register(svc *serviceMock, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body)))
	return rec
}

func TestHandle_Created(t *testing.T) {
	svc := new(serviceMock)
	svc.On("Register", mock.Anything, &models.RegisterRequest{
		Username: "joao", DisplayName: "Joao", Phone: "119", Password: "secret1",
	}).Return(&models.UserResponse{ID: 7, Username: "joao"}, nil)

	rec := register(svc, `{"username":"joao","displayName":"Joao","phone":"119","password":"secret1"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), msgRegistered)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"missing fields", users.ErrMissingFields, http.StatusBadRequest, msgMissingFields},
		{"short password", users.ErrPasswordTooShort, http.StatusBadRequest, msgPasswordTooShort},
		{"reserved", users.ErrUsernameReserved, http.StatusConflict, msgUsernameReserved},
		{"taken", users.ErrUsernameTaken, http.StatusConflict, msgUsernameTaken},
		{"internal", users.ErrInternal, http.StatusInternalServerError, msgInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(serviceMock)
			svc.On("Register", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := register(svc, `{"username":"joao"}`)

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.msg)
		})
	}
}
