package responder

import (
	"context"
	"errors"

	"github.com/sandevgo/inspire/internal/core"
	"github.com/sandevgo/inspire/internal/providers/llm"
	"github.com/sandevgo/inspire/internal/providers/secrets"
	"github.com/sandevgo/inspire/pkg/log"
)

// BackendFactory creates a real provider client for one request.
type BackendFactory interface {
	NewBackend(kind core.ProviderKind, endpoint, apiKey string) (core.Backend, error)
}

// Engine turns a prompt and a tool's service configuration into a
// reply. Provider failures are reported in the response and never
// returned as errors.
type Engine struct {
	secrets   core.Secrets
	backends  BackendFactory
	simulator *Simulator
}

func NewEngine(secrets core.Secrets, backends BackendFactory, simulator *Simulator) *Engine {
	return &Engine{
		secrets:   secrets,
		backends:  backends,
		simulator: simulator,
	}
}

func (e *Engine) Send(ctx context.Context, prompt string, cfg core.ServiceConfig) core.ServiceResponse {
	switch cfg.APIType {
	case core.ProviderOpenAI:
		if key, ok := e.secrets.Get(secrets.OpenAIAPIKey); ok {
			return e.call(ctx, cfg, key, modelOrDefault(cfg.APIModel, llm.DefaultOpenAIModel), prompt)
		}
		return e.simulate(ctx, "openai", prompt, "api key missing")
	case core.ProviderHuggingFace:
		if key, ok := e.secrets.Get(secrets.HuggingFaceAPIKey); ok {
			return e.call(ctx, cfg, key, modelOrDefault(cfg.APIModel, llm.DefaultHuggingFaceModel), prompt)
		}
		return e.simulate(ctx, "huggingface", prompt, "api key missing")
	case core.ProviderCustom:
		return e.simulate(ctx, "custom", prompt, "custom integrations are simulated")
	case core.ProviderNone:
		return e.simulate(ctx, "generic", prompt, "tool has no integration")
	default:
		return e.simulate(ctx, "generic", prompt, "unknown provider")
	}
}

func (e *Engine) call(ctx context.Context, cfg core.ServiceConfig, apiKey, model, prompt string) core.ServiceResponse {
	logger := log.FromCtx(ctx)

	backend, err := e.backends.NewBackend(cfg.APIType, cfg.APIEndpoint, apiKey)
	if err != nil {
		logger.Error().Err(err).Str("provider", string(cfg.APIType)).Msg("failed to create backend")
		return core.Failed("Exception: " + err.Error())
	}

	text, err := backend.Complete(ctx, model, prompt)
	if err != nil {
		var apiErr *llm.APIError
		if errors.As(err, &apiErr) {
			logger.Warn().
				Str("provider", string(cfg.APIType)).
				Str("model", model).
				Int("status", apiErr.StatusCode).
				Msg("provider rejected request")
			return core.Failed("API Error: " + apiErr.Message)
		}
		logger.Error().Err(err).
			Str("provider", string(cfg.APIType)).
			Str("model", model).
			Msg("provider request failed")
		return core.Failed("Exception: " + err.Error())
	}

	return core.Succeeded(text)
}

func (e *Engine) simulate(ctx context.Context, serviceType, prompt, reason string) core.ServiceResponse {
	log.FromCtx(ctx).Debug().
		Str("service", serviceType).
		Str("reason", reason).
		Msg("simulating response")
	return e.simulator.Simulate(ctx, serviceType, prompt)
}

func modelOrDefault(model, fallback string) string {
	if model == "" {
		return fallback
	}
	return model
}
