package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jan-server/services/messaging-api/internal/infrastructure/auth"
	"jan-server/services/messaging-api/internal/interfaces/httpserver/handlers"
	"jan-server/services/messaging-api/internal/interfaces/httpserver/requests"
	"jan-server/services/messaging-api/internal/interfaces/httpserver/responses"
)

// Provider holds all route providers.
type Provider struct {
	handlers      *handlers.Provider
	authValidator *auth.Validator
}

// NewProvider creates a new route provider.
func NewProvider(handlerProvider *handlers.Provider, authValidator *auth.Validator) *Provider {
	return &Provider{
		handlers:      handlerProvider,
		authValidator: authValidator,
	}
}

// Register registers the API routes on the engine. Auth applies to API routes only.
func (p *Provider) Register(engine *gin.Engine) {
	api := engine.Group("")
	if p.authValidator != nil {
		api.Use(p.authValidator.Middleware())
	}
	RegisterUserRoutes(api, p.handlers)
	RegisterThreadRoutes(api, p.handlers)
}

// pathUUID parses a path parameter, writing a 400 when it is not a UUID.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		responses.HandleValidationError(c, fmt.Sprintf("Invalid %s: %s", name, raw))
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		responses.HandleValidationError(c, requests.Message(err))
		return false
	}
	return true
}

func bindPage(c *gin.Context) (requests.PageQuery, bool) {
	var page requests.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		responses.HandleValidationError(c, requests.Message(err))
		return page, false
	}
	return page, true
}
