// Package llm runs articles through the editorial model chain.
package llm

import "context"

// Result is the editorial output for one article.
type Result struct {
	Cleaned  string `json:"cleaned"`
	Summary  string `json:"summary"`
	Headline string `json:"headline"`
	TTSText  string `json:"tts_text"`
}

// Provider is an LLM backend answering a single completion request.
type Provider interface {
	// Complete sends a system and user message and returns the raw
	// model response.
	Complete(ctx context.Context, system, user string) (string, error)
	// Name identifies the backend in logs.
	Name() string
}
