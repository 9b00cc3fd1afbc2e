package auth

import (
	"context"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"jan-server/services/messaging-api/internal/config"
	"jan-server/services/messaging-api/internal/utils/platformerrors"
)

// ContextKeyToken is the gin context key holding the validated token.
const ContextKeyToken = "auth_token"

// Validator validates JWTs using JWKS.
type Validator struct {
	cfg     *config.Config
	log     zerolog.Logger
	keyfunc jwt.Keyfunc
}

// NewValidator initializes JWKS fetching when auth is enabled.
func NewValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Validator, error) {
	if !cfg.AuthEnabled {
		return &Validator{cfg: cfg, log: log}, nil
	}

	options := keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			log.Error().Err(err).Msg("jwks refresh error")
		},
	}

	jwks, err := keyfunc.Get(cfg.AuthJWKSURL, options)
	if err != nil {
		return nil, err
	}

	return NewValidatorWithKeyfunc(cfg, log, jwks.Keyfunc), nil
}

// NewValidatorWithKeyfunc builds a validator around an existing key source.
func NewValidatorWithKeyfunc(cfg *config.Config, log zerolog.Logger, kf jwt.Keyfunc) *Validator {
	return &Validator{cfg: cfg, log: log, keyfunc: kf}
}

// Middleware enforces JWT auth when enabled.
func (v *Validator) Middleware() gin.HandlerFunc {
	if v == nil || !v.cfg.AuthEnabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithIssuer(v.cfg.AuthIssuer),
		jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}),
	}
	if v.cfg.AuthAudience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(v.cfg.AuthAudience))
	}

	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			platformerrors.WriteUnauthorized(c, "missing bearer token")
			return
		}

		token, err := jwt.Parse(tokenString, v.keyfunc, parserOpts...)
		if err != nil || !token.Valid {
			v.log.Debug().Err(err).Msg("rejecting bearer token")
			platformerrors.WriteUnauthorized(c, "invalid token")
			return
		}

		c.Set(ContextKeyToken, token)
		c.Next()
	}
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
