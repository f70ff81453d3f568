package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	Id            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	FullName      string     `json:"full_name"`
	Role          string     `json:"role"`
	Status        string     `json:"status"`
	Plan          string     `json:"plan"`
	EmailVerified bool       `json:"email_verified"`
	AvatarURL     string     `json:"avatar_url,omitempty"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type UpdateProfileRequest struct {
	FullName  string `json:"full_name" validate:"omitempty,min=3"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}

type DeleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}
