package generator

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// NewGenerator creates the TextGenerator selected by cfg.Provider. The
// "openai" provider also serves OpenAI-compatible local endpoints through
// the Endpoint override.
func NewGenerator(cfg *Config, logger *zap.Logger) (TextGenerator, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "openai":
		return NewOpenAIGenerator(cfg, logger)
	case "anthropic":
		return NewAnthropicGenerator(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown generator provider %q", cfg.Provider)
	}
}
