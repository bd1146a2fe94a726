package dto

import "time"

type RegisterRequest struct {
	Email      string `json:"email" validate:"required,email" example:"user@example.com"`
	Username   string `json:"username" validate:"required,min=3,max=30,alphanum" example:"janedev"`
	Password   string `json:"password" validate:"required,strong_password" example:"SecurePass123!"`
	FullName   string `json:"full_name,omitempty" example:"Jane Developer"`
	TargetRole string `json:"target_role,omitempty" example:"Backend Engineer"`
}

func (r RegisterRequest) Validate() error {
	return GetValidator().Struct(r)
}

type RegisterResponse struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type LoginRequest struct {
	EmailOrUsername string `json:"email_or_username" validate:"required" example:"user@example.com"`
	Password        string `json:"password" validate:"required" example:"SecurePass123!"`
}

func (l LoginRequest) Validate() error {
	return GetValidator().Struct(l)
}

type LoginResponse struct {
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (r RefreshTokenRequest) Validate() error {
	return GetValidator().Struct(r)
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserProfileResponse struct {
	UserID      string     `json:"user_id"`
	Email       string     `json:"email"`
	Username    string     `json:"username"`
	FullName    string     `json:"full_name,omitempty"`
	TargetRole  string     `json:"target_role,omitempty"`
	JoinedAt    time.Time  `json:"joined_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

type UpdateProfileRequest struct {
	FullName   string `json:"full_name,omitempty"`
	TargetRole string `json:"target_role,omitempty"`
}
