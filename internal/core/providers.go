package core

import "context"

// Backend is a real AI provider reachable over HTTP.
type Backend interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
}

// Secrets resolves API keys by name.
type Secrets interface {
	Get(key string) (string, bool)
}

// Responder produces a reply for a prompt. Failures are reported inside
// the ServiceResponse, never as an error.
type Responder interface {
	Send(ctx context.Context, prompt string, cfg ServiceConfig) ServiceResponse
}
