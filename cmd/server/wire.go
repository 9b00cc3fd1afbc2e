//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"

	"jan-server/services/messaging-api/internal/config"
	"jan-server/services/messaging-api/internal/infrastructure/auth"
	"jan-server/services/messaging-api/internal/infrastructure/logger"
	"jan-server/services/messaging-api/internal/infrastructure/observability"
	"jan-server/services/messaging-api/internal/interfaces/httpserver"
)

var messagingSet = wire.NewSet(
	OpenStorage,
	newUserService,
	newThreadService,
	newReadinessCheck,
)

// BuildApplication assembles the messaging service with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		observability.Setup,
		messagingSet,
		newAuthValidator,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newAuthValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*auth.Validator, error) {
	return auth.NewValidator(ctx, cfg, log)
}
