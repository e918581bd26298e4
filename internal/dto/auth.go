package dto

import (
	"time"

	"gold-ledger/internal/models"
)

// Auth Request DTOs

// RegisterRequest contains admin registration data
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest contains login credentials
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Auth Response DTOs

// AuthResponse is returned by register and login. The token itself travels in the
// HttpOnly cookie; AccessToken is only set for bearer clients that ask for it.
type AuthResponse struct {
	Admin       models.AdminProfile `json:"admin"`
	AccessToken string              `json:"accessToken,omitempty"`
	ExpiresAt   time.Time           `json:"expiresAt"`
}
