package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	"jan-server/services/messaging-api/internal/config"
	"jan-server/services/messaging-api/internal/domain/thread"
	"jan-server/services/messaging-api/internal/domain/user"
	"jan-server/services/messaging-api/internal/interfaces/httpserver/responses"
)

// Provider holds all HTTP handlers.
type Provider struct {
	User   *UserHandler
	Thread *ThreadHandler

	links responses.LinkSettings
}

// NewProvider creates a new handler provider.
func NewProvider(cfg *config.Config, userHandler *UserHandler, threadHandler *ThreadHandler) *Provider {
	return &Provider{
		User:   userHandler,
		Thread: threadHandler,
		links: responses.LinkSettings{
			PublicBaseURL:         cfg.PublicBaseURL,
			TrustForwardedHeaders: cfg.TrustForwardedHeaders,
		},
	}
}

// NewProviderFromServices builds every handler from the domain services.
func NewProviderFromServices(cfg *config.Config, userService user.Service, threadService thread.Service) *Provider {
	return NewProvider(cfg, NewUserHandler(cfg, userService), NewThreadHandler(cfg, threadService))
}

// Links returns the HAL link builder for the current request.
func (p *Provider) Links(c *gin.Context) responses.LinkBuilder {
	return responses.NewLinkBuilder(c, p.links)
}

// HandlerProvider provides all handlers for wire.
var HandlerProvider = wire.NewSet(
	NewUserHandler,
	NewThreadHandler,
	NewProvider,
)
