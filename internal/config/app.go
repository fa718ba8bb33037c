package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/inspire/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"INSPIRE_RUNTIME_PATH" envDefault:".inspire"`

	// Transport Flags
	EnableTelegram bool `env:"INSPIRE_ENABLE_TELEGRAM" envDefault:"false"`
	EnableHTTP     bool `env:"INSPIRE_ENABLE_HTTP" envDefault:"true"`

	// Optional override of the built-in routing table
	RoutingFile string `env:"INSPIRE_ROUTING_FILE"`

	// Seed the catalog with the bundled tools when it is empty
	SeedCatalog bool `env:"INSPIRE_SEED_CATALOG" envDefault:"true"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "inspire.db")
}

// GetSecretsFilePath points at the legacy key file. Keys found there
// are still honoured but should move to the environment.
func (c AppConfig) GetSecretsFilePath() string {
	return filepath.Join(c.RuntimePath, "secrets.env")
}

func (c AppConfig) GetEnvFilePath() string {
	return filepath.Join(c.RuntimePath, ".env")
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}

func (c AppConfig) IsHTTPSelected() bool {
	return c.EnableHTTP
}
