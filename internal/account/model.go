package account

import (
	"net/http"
	"time"

	"github.com/PabloST8/xcorte-sub001/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "account not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrInactiveAccount    = apperror.New(http.StatusForbidden, "account is inactive")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "password is too short")
	ErrUnavailable        = apperror.New(http.StatusServiceUnavailable, "account store unavailable")
)

// Account is the administrator login of one enterprise. Its email is the
// enterprise key that partitions bookings.
type Account struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	DisplayName  *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time
}
