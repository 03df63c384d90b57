package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/PabloST8/xcorte-sub001/internal/account"
	"github.com/PabloST8/xcorte-sub001/internal/auth"
	"github.com/PabloST8/xcorte-sub001/internal/pkg/response"
)

type Handler struct {
	service    account.Service
	jwtManager *auth.JWTManager
}

func NewHandler(service account.Service, jwtManager *auth.JWTManager) *Handler {
	return &Handler{
		service:    service,
		jwtManager: jwtManager,
	}
}

// Login authenticates an enterprise administrator and issues an access token
// scoped to the enterprise email.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	a, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, account.ErrInactiveAccount) {
			// Do not reveal which condition failed
			err = account.ErrInvalidCredentials
		}
		response.Error(c, err)
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(a.ID, a.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(h.jwtManager.TTL().Seconds()),
		Account:     NewAccountResponse(a),
	})
}

func (h *Handler) Me(c *gin.Context) {
	accountID := auth.GetAccountID(c)
	if _, err := uuid.Parse(accountID); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "account not found"})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, MeResponse{Account: NewAccountResponse(a)})
}
