package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sandevgo/inspire/internal/core"
	"github.com/sandevgo/inspire/pkg/log"
)

// maxResponseSize caps how much of a provider response is read.
const maxResponseSize = 4 << 20

type baseProvider struct {
	client  *http.Client
	name    string
	baseURL string
	apiKey  string
}

func newBaseProvider(name, baseURL, apiKey string, timeout time.Duration) baseProvider {
	return baseProvider{
		client: &http.Client{
			Timeout: timeout,
		},
		name:    name,
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

type rawResponse struct {
	status      int
	contentType string
	body        []byte
}

func (b *baseProvider) doRequest(ctx context.Context, method, path string, body any, headers map[string]string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", core.AppUserAgent)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	return resp, nil
}

// post sends one JSON request with bearer auth and reads the whole
// response. Every call is logged with its status and latency.
func (b *baseProvider) post(ctx context.Context, path string, payload any) (rawResponse, error) {
	logger := log.FromCtx(ctx)
	start := time.Now()

	headers := map[string]string{
		"Authorization": "Bearer " + b.apiKey,
	}

	resp, err := b.doRequest(ctx, http.MethodPost, path, payload, headers)
	if err != nil {
		logger.Error().Err(err).
			Str("service", b.name).
			Str("endpoint", path).
			Dur("elapsed", time.Since(start)).
			Msg("api request failed")
		return rawResponse{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return rawResponse{}, fmt.Errorf("read body: %w", err)
	}

	logger.Info().
		Str("service", b.name).
		Str("method", http.MethodPost).
		Str("endpoint", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api request")

	return rawResponse{
		status:      resp.StatusCode,
		contentType: resp.Header.Get("Content-Type"),
		body:        data,
	}, nil
}
