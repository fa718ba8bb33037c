package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/inspire/pkg/log"
)

type ResponderConfig struct {
	RequestTimeout     time.Duration `env:"INSPIRE_REQUEST_TIMEOUT" envDefault:"30s"`
	SimulationDelay    time.Duration `env:"INSPIRE_SIMULATION_DELAY" envDefault:"1s"`
	OpenAIBaseURL      string        `env:"INSPIRE_OPENAI_BASE_URL" envDefault:"https://api.openai.com"`
	HuggingFaceBaseURL string        `env:"INSPIRE_HUGGINGFACE_BASE_URL" envDefault:"https://api-inference.huggingface.co"`

	// Token counting downloads the BPE tables on first use.
	CountTokens bool `env:"INSPIRE_COUNT_TOKENS" envDefault:"false"`
}

func NewResponderConfig(ctx context.Context) *ResponderConfig {
	c := &ResponderConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Responder config")
	}
	return c
}

func (c ResponderConfig) GetRequestTimeout() time.Duration {
	return c.RequestTimeout
}

func (c ResponderConfig) GetSimulationDelay() time.Duration {
	return c.SimulationDelay
}

func (c ResponderConfig) GetOpenAIBaseURL() string {
	return c.OpenAIBaseURL
}

func (c ResponderConfig) GetHuggingFaceBaseURL() string {
	return c.HuggingFaceBaseURL
}

func (c ResponderConfig) IsTokenCountEnabled() bool {
	return c.CountTokens
}
