// Package generator provides LLM-backed site content generation.
package generator

import (
	"context"
)

// TextGenerator defines the interface for site generation calls.
// Use this interface for dependency injection to enable mocking in tests.
type TextGenerator interface {
	// GenerateSite sends the prompt and returns the raw model output. The
	// output is near-JSON at best and must go through sanitization and
	// validation before use.
	GenerateSite(ctx context.Context, prompt string, systemMessage string, temperature float64) (string, error)

	// GetModel returns the configured model name.
	GetModel() string

	// GetEndpoint returns the configured endpoint.
	GetEndpoint() string
}

// Config holds configuration for creating a generator client.
type Config struct {
	Provider string // "openai" or "anthropic"
	Endpoint string // Base URL; empty means the provider default
	Model    string // Model name, e.g. "gpt-4o"
	APIKey   string
}
