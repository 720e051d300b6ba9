package payload

import (
	"time"

	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/model"
)

type SignUpRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=6"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name"  validate:"omitempty,max=100"`
}

type SignInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleSignInRequest carries either the popup tokens or the popup error code.
type GoogleSignInRequest struct {
	IDToken     string `json:"id_token"     validate:"required_without=Error"`
	AccessToken string `json:"access_token"`
	Error       string `json:"error"`
}

type FacebookSignInRequest struct {
	AccessToken string `json:"access_token" validate:"required_without=Error"`
	Error       string `json:"error"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type SessionResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type UserResponse struct {
	UID         string `json:"uid"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
}

type AuthResponse struct {
	Session      SessionResponse `json:"session"`
	User         UserResponse    `json:"user"`
	Role         model.Role      `json:"role"`
	RedirectPath string          `json:"redirect_path"`
}
