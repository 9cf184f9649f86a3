package generator

import (
	"context"
)

// MockGenerator is a configurable mock for testing generation flows.
// Set the function fields to control behavior in tests.
type MockGenerator struct {
	// GenerateSiteFunc is called when GenerateSite is invoked.
	// If nil, returns an empty string and nil error.
	GenerateSiteFunc func(ctx context.Context, prompt string, systemMessage string, temperature float64) (string, error)

	// Model is returned by GetModel. Defaults to "mock-model".
	Model string

	// Endpoint is returned by GetEndpoint. Defaults to "http://mock-endpoint".
	Endpoint string

	// Call tracking for verification
	GenerateSiteCalls int
}

// NewMockGenerator creates a new mock with sensible defaults.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{
		Model:    "mock-model",
		Endpoint: "http://mock-endpoint",
	}
}

// GenerateSite implements TextGenerator.
func (m *MockGenerator) GenerateSite(ctx context.Context, prompt string, systemMessage string, temperature float64) (string, error) {
	m.GenerateSiteCalls++
	if m.GenerateSiteFunc != nil {
		return m.GenerateSiteFunc(ctx, prompt, systemMessage, temperature)
	}
	return "", nil
}

// GetModel implements TextGenerator.
func (m *MockGenerator) GetModel() string {
	if m.Model == "" {
		return "mock-model"
	}
	return m.Model
}

// GetEndpoint implements TextGenerator.
func (m *MockGenerator) GetEndpoint() string {
	if m.Endpoint == "" {
		return "http://mock-endpoint"
	}
	return m.Endpoint
}

// Reset clears call tracking counters.
func (m *MockGenerator) Reset() {
	m.GenerateSiteCalls = 0
}

var _ TextGenerator = (*MockGenerator)(nil)
