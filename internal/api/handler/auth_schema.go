package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the ack envelope for operations with no payload.
type messageResponse struct {
	Message string `json:"message"`
}

type registerRequest struct {
	FullName string  `json:"full_name" validate:"required"`
	Email    string  `json:"email"     validate:"required,email"`
	Password string  `json:"password"  validate:"required,min=8"`
	Age      int     `json:"age"       validate:"omitempty,gte=0,lte=120"`
	WeightKg float64 `json:"weight_kg" validate:"omitempty,gte=0"`
}

type verifyOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
	Otp   string `json:"otp"   validate:"required,len=6,numeric"`
}

type emailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	Otp         string `json:"otp"          validate:"required,len=6,numeric"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// userView is the sanitized user representation returned to clients. It is
// built from domain.User, whose hash fields are already json:"-"; keeping a
// transport-owned type here decouples the JSON contract from the domain.
type userView struct {
	ID             string   `json:"id"`
	FullName       string   `json:"full_name"`
	Email          string   `json:"email"`
	Role           string   `json:"role"`
	Age            int      `json:"age,omitempty"`
	WeightKg       float64  `json:"weight_kg,omitempty"`
	HeightCm       float64  `json:"height_cm,omitempty"`
	HealthGoals    []string `json:"health_goals,omitempty"`
	AvatarURL      string   `json:"avatar_url"`
	AccountStatus  string   `json:"account_status"`
	AppLockEnabled bool     `json:"app_lock_enabled"`
}

type loginResponse struct {
	AccessToken string   `json:"access_token"`
	User        userView `json:"user"`
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
}

type registeredResponse struct {
	Message string   `json:"message"`
	User    userView `json:"user"`
}
