package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PabloST8/xcorte-sub001/internal/account"
	"github.com/PabloST8/xcorte-sub001/internal/auth"
)

// RequireActiveAccount rejects tokens whose account was deactivated or
// removed after the token was issued. When the account store cannot be
// reached the signed token alone is trusted.
// It MUST be used after auth.AuthRequired middleware.
func RequireActiveAccount(accountService account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID := auth.GetAccountID(c)
		if accountID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		a, err := accountService.GetByID(c.Request.Context(), accountID)
		if err != nil {
			if errors.Is(err, account.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "account not found"})
				return
			}
			// The token is still valid; keep bookings manageable during an outage.
			log.Printf("WARN api: account check for %s skipped: %v", accountID, err)
			c.Next()
			return
		}

		if !a.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account is inactive"})
			return
		}

		c.Next()
	}
}
