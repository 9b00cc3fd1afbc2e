package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jan-server/services/messaging-api/internal/config"
)

func newEngine(t *testing.T, v *Validator) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(v.Middleware())
	engine.GET("/users", func(c *gin.Context) {
		_, ok := c.Get(ContextKeyToken)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok})
	})
	return engine
}

func TestMiddleware_DisabledPassesThrough(t *testing.T) {
	v, err := NewValidator(t.Context(), &config.Config{}, zerolog.Nop())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	newEngine(t, v).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMiddleware_Enabled(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	cfg := &config.Config{AuthEnabled: true, AuthIssuer: "https://issuer.test", AuthAudience: "messaging"}
	v := NewValidatorWithKeyfunc(cfg, zerolog.Nop(), func(*jwt.Token) (any, error) {
		return &key.PublicKey, nil
	})
	engine := newEngine(t, v)

	sign := func(claims jwt.MapClaims) string {
		token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}
	valid := sign(jwt.MapClaims{"iss": "https://issuer.test", "aud": "messaging", "exp": time.Now().Add(time.Hour).Unix()})
	wrongIssuer := sign(jwt.MapClaims{"iss": "https://other.test", "aud": "messaging", "exp": time.Now().Add(time.Hour).Unix()})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"wrong issuer", "Bearer " + wrongIssuer, http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusUnauthorized {
				assert.Contains(t, w.Body.String(), `"status":401`)
			}
		})
	}
}
