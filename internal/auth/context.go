package auth

import "github.com/gin-gonic/gin"

const (
	ctxAccountID = "accountID"
	ctxEmail     = "accountEmail"
)

// GetAccountID returns the authenticated account's ID or empty string.
func GetAccountID(c *gin.Context) string {
	return c.GetString(ctxAccountID)
}

// GetUserEmail returns the authenticated enterprise email or empty string.
func GetUserEmail(c *gin.Context) string {
	return c.GetString(ctxEmail)
}
