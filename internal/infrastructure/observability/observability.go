package observability

import (
	"context"

	"github.com/rs/zerolog"

	"jan-server/services/messaging-api/internal/config"
	pkgobservability "jan-server/services/messaging-api/pkg/observability"
)

// Setup configures OpenTelemetry tracing and metrics export from service config.
// Disabled signals yield no-op instruments.
func Setup(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*pkgobservability.Provider, error) {
	otelCfg := pkgobservability.DefaultConfig(cfg.ServiceName)
	otelCfg.Environment = cfg.Environment
	otelCfg.TracingEnabled = cfg.EnableTracing && cfg.OTLPEndpoint != ""
	otelCfg.MetricsEnabled = cfg.EnableOTELMetrics && cfg.OTLPEndpoint != ""
	otelCfg.OTLPEndpoint = cfg.OTLPEndpoint
	otelCfg.PIILevel = cfg.LogPIILevel

	provider, err := pkgobservability.Init(ctx, otelCfg)
	if err != nil {
		return nil, err
	}

	if otelCfg.TracingEnabled || otelCfg.MetricsEnabled {
		log.Info().
			Str("endpoint", cfg.OTLPEndpoint).
			Bool("tracing", otelCfg.TracingEnabled).
			Bool("metrics", otelCfg.MetricsEnabled).
			Msg("OpenTelemetry export enabled")
	} else {
		log.Info().Msg("Tracing disabled")
	}
	return provider, nil
}
