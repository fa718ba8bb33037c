package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/inspire/pkg/log"
)

type HTTPConfig struct {
	Addr            string        `env:"INSPIRE_HTTP_ADDR" envDefault:"127.0.0.1:8080"`
	ShutdownTimeout time.Duration `env:"INSPIRE_HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Requests without X-User-ID share this identity.
	DefaultUserID string `env:"INSPIRE_HTTP_DEFAULT_USER" envDefault:"anonymous"`
}

func NewHTTPConfig(ctx context.Context) *HTTPConfig {
	c := &HTTPConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse HTTP config")
	}
	return c
}
