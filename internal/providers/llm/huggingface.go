package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const DefaultHuggingFaceModel = "google/flan-t5-base"

// HuggingFace talks to the hosted Inference API.
type HuggingFace struct {
	baseProvider
}

func NewHuggingFace(baseURL, apiKey string, timeout time.Duration) *HuggingFace {
	return &HuggingFace{
		baseProvider: newBaseProvider("HuggingFace", baseURL, apiKey, timeout),
	}
}

func (h *HuggingFace) Complete(ctx context.Context, model, prompt string) (string, error) {
	if model == "" {
		model = DefaultHuggingFaceModel
	}

	payload := map[string]any{
		"inputs": prompt,
		"parameters": map[string]any{
			"temperature": temperature,
		},
	}

	resp, err := h.post(ctx, "/models/"+model, payload)
	if err != nil {
		return "", err
	}
	if resp.status != http.StatusOK {
		return "", newAPIError(resp)
	}

	type generation struct {
		GeneratedText string `json:"generated_text"`
	}

	// Text generation pipelines answer with a list, a few models with a
	// single object.
	var list []generation
	if err := json.Unmarshal(resp.body, &list); err == nil {
		if len(list) == 0 {
			return "", fmt.Errorf("empty generation: %s", truncate(string(resp.body)))
		}
		return list[0].GeneratedText, nil
	}

	var single generation
	if err := json.Unmarshal(resp.body, &single); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	return single.GeneratedText, nil
}
