package update_profile

import "github.com/evilazio/barbershop-booking/internal/service/users/models"

// UpdateProfileRequest HTTP request model
type UpdateProfileRequest struct {
	DisplayName string `json:"displayName"`
	Phone       string `json:"phone"`
	Password    string `json:"password,omitempty"`
}

// UpdateProfileResponse HTTP response model
type UpdateProfileResponse struct {
	Message string               `json:"message"`
	User    *models.UserResponse `json:"user"`
}

func (r *UpdateProfileRequest) ToServiceRequest() *models.UpdateProfileRequest {
	return &models.UpdateProfileRequest{
		DisplayName: r.DisplayName,
		Phone:       r.Phone,
		Password:    r.Password,
	}
}
