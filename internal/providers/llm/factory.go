package llm

import (
	"fmt"

	"github.com/sandevgo/inspire/internal/core"
)

// Factory builds backends for tools that talk to a real provider.
type Factory struct {
	cfg core.ResponderConfig
}

func NewFactory(cfg core.ResponderConfig) *Factory {
	return &Factory{cfg: cfg}
}

// NewBackend returns the backend for kind. A non-empty endpoint replaces
// the provider's default base URL.
func (f *Factory) NewBackend(kind core.ProviderKind, endpoint, apiKey string) (core.Backend, error) {
	switch kind {
	case core.ProviderOpenAI:
		if endpoint == "" {
			endpoint = f.cfg.GetOpenAIBaseURL()
		}
		return NewOpenAI(endpoint, apiKey, f.cfg.GetRequestTimeout(), f.cfg.IsTokenCountEnabled()), nil
	case core.ProviderHuggingFace:
		if endpoint == "" {
			endpoint = f.cfg.GetHuggingFaceBaseURL()
		}
		return NewHuggingFace(endpoint, apiKey, f.cfg.GetRequestTimeout()), nil
	default:
		return nil, fmt.Errorf("no backend for provider %q", kind)
	}
}
