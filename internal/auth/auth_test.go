package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const accountID = "7f1c2f4e-7d38-4a5c-9f55-0e9a3b6c2d11"

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, err := m.GenerateAccessToken(accountID, "shop@mail.com")
	require.NoError(t, err)

	claims, err := m.ParseAndValidate(token)
	require.NoError(t, err)
	assert.Equal(t, accountID, claims.Subject)
	assert.Equal(t, "shop@mail.com", claims.Email)
	assert.Equal(t, issuer, claims.Issuer)
}

func TestJWTRejects(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	other, err := NewJWTManager("other", time.Hour).GenerateAccessToken(accountID, "shop@mail.com")
	require.NoError(t, err)
	_, err = m.ParseAndValidate(other)
	assert.Error(t, err, "wrong secret")

	expired, err := NewJWTManager("secret", -time.Minute).GenerateAccessToken(accountID, "shop@mail.com")
	require.NoError(t, err)
	_, err = m.ParseAndValidate(expired)
	assert.Error(t, err, "expired")

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Email: "shop@mail.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := noSubject.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = m.ParseAndValidate(signed)
	assert.Error(t, err, "missing subject")

	_, err = m.ParseAndValidate("not-a-token")
	assert.Error(t, err)
}

func newProtectedRouter(m *JWTManager) *gin.Engine {
	r := gin.New()
	r.GET("/enterprises/:email/bookings", AuthRequired(m), RequireEnterprise("email"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"account": GetAccountID(c), "email": GetUserEmail(c)})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	r := newProtectedRouter(m)
	token, err := m.GenerateAccessToken(accountID, "Shop@Mail.com")
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"missing header", "/enterprises/shop@mail.com/bookings", "", http.StatusUnauthorized},
		{"wrong scheme", "/enterprises/shop@mail.com/bookings", "Basic " + token, http.StatusUnauthorized},
		{"garbage token", "/enterprises/shop@mail.com/bookings", "Bearer xyz", http.StatusUnauthorized},
		{"other enterprise", "/enterprises/other@mail.com/bookings", "Bearer " + token, http.StatusForbidden},
		{"own enterprise", "/enterprises/shop@mail.com/bookings", "Bearer " + token, http.StatusOK},
		{"case insensitive", "/enterprises/SHOP@mail.com/bookings", "bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NoError(t, h.Compare(hash, "s3cret-pass"))
	assert.ErrorIs(t, h.Compare(hash, "wrong"), ErrPasswordMismatch)
	assert.Error(t, h.Compare("not-a-hash", "s3cret-pass"))

	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(100).cost)
}

func TestSessions(t *testing.T) {
	ctx := context.Background()
	assert.True(t, StaticSession(true).HasSession(ctx))
	assert.False(t, StaticSession(false).HasSession(ctx))

	s := NewPoolSession(nil, 0)
	assert.False(t, s.HasSession(ctx))
	assert.False(t, s.LastKnown())
	assert.Equal(t, 2*time.Second, s.timeout)
}
