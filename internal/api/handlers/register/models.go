package register

import "github.com/evilazio/barbershop-booking/internal/service/users/models"

// RegisterRequest HTTP request model
type RegisterRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Phone       string `json:"phone"`
	Password    string `json:"password"`
}

// RegisterResponse HTTP response model
type RegisterResponse struct {
	Message string               `json:"message"`
	User    *models.UserResponse `json:"user"`
}

func (r *RegisterRequest) ToServiceRequest() *models.RegisterRequest {
	return &models.RegisterRequest{
		Username:    r.Username,
		DisplayName: r.DisplayName,
		Phone:       r.Phone,
		Password:    r.Password,
	}
}
