package handler

import "time"

type updateProfileRequest struct {
	FullName    *string    `json:"full_name"    validate:"omitempty,min=1"`
	Age         *int       `json:"age"          validate:"omitempty,gte=0,lte=120"`
	WeightKg    *float64   `json:"weight_kg"    validate:"omitempty,gte=0"`
	HeightCm    *float64   `json:"height_cm"    validate:"omitempty,gte=0"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	HealthGoals []string   `json:"health_goals"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8"`
}

type pinRequest struct {
	Pin string `json:"pin" validate:"required,len=6,numeric"`
}

type profileResponse struct {
	User userView `json:"user"`
}
