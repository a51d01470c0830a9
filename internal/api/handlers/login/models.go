package login

import "github.com/evilazio/barbershop-booking/internal/service/users/models"

// LoginRequest HTTP request model
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse HTTP response model
type LoginResponse struct {
	Message string               `json:"message"`
	Token   string               `json:"token"`
	User    *models.UserResponse `json:"user"`
}
