package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sandevgo/inspire/pkg/log"
)

const (
	DefaultOpenAIModel = "gpt-3.5-turbo"
	openAIChatPath     = "/v1/chat/completions"
	temperature        = 0.7
)

// OpenAI talks to the chat completions API.
type OpenAI struct {
	baseProvider
	countTokens bool
}

func NewOpenAI(baseURL, apiKey string, timeout time.Duration, countTokens bool) *OpenAI {
	return &OpenAI{
		baseProvider: newBaseProvider("OpenAI", baseURL, apiKey, timeout),
		countTokens:  countTokens,
	}
}

func (o *OpenAI) Complete(ctx context.Context, model, prompt string) (string, error) {
	if model == "" {
		model = DefaultOpenAIModel
	}

	if o.countTokens {
		if n, err := countTokens(prompt); err == nil {
			log.FromCtx(ctx).Debug().Str("model", model).Int("prompt_tokens", n).Msg("prompt size")
		} else {
			log.FromCtx(ctx).Warn().Err(err).Msg("failed to count prompt tokens")
		}
	}

	type msg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	payload := map[string]any{
		"model":       model,
		"messages":    []msg{{Role: "user", Content: prompt}},
		"temperature": temperature,
	}

	resp, err := o.post(ctx, openAIChatPath, payload)
	if err != nil {
		return "", err
	}
	if resp.status != http.StatusOK {
		return "", newAPIError(resp)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(resp.body, &result); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("empty choices: %s", truncate(string(resp.body)))
	}
	return result.Choices[0].Message.Content, nil
}
