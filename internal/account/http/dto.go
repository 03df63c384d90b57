package http

import (
	"time"

	"github.com/PabloST8/xcorte-sub001/internal/account"
)

// LoginRequest defines the payload for enterprise sign-in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AccountResponse is the shape of account data returned in API responses.
type AccountResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName *string    `json:"display_name"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

func NewAccountResponse(a *account.Account) AccountResponse {
	return AccountResponse{
		ID:          a.ID,
		Email:       a.Email,
		DisplayName: a.DisplayName,
		CreatedAt:   a.CreatedAt,
		LastLoginAt: a.LastLoginAt,
	}
}

// LoginResponse returns the token and account info.
type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	ExpiresIn   int64           `json:"expires_in"`
	Account     AccountResponse `json:"account"`
}

// MeResponse returns the current account.
type MeResponse struct {
	Account AccountResponse `json:"account"`
}
