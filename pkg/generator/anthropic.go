package generator

import (
	"context"
	"fmt"
	"strings"
	"time"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"
)

const anthropicMaxTokens = 8192

// AnthropicGenerator calls the Anthropic Messages API.
type AnthropicGenerator struct {
	client   *anthropic.Client
	endpoint string
	model    string
	logger   *zap.Logger
}

// NewAnthropicGenerator creates a generator backed by the Anthropic API. An
// empty endpoint selects the public API.
func NewAnthropicGenerator(cfg *Config, logger *zap.Logger) (*AnthropicGenerator, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}

	var opts []anthropic.ClientOption
	endpoint := cfg.Endpoint
	if endpoint != "" {
		opts = append(opts, anthropic.WithBaseURL(strings.TrimSuffix(endpoint, "/")))
	} else {
		endpoint = "https://api.anthropic.com/v1"
	}

	return &AnthropicGenerator{
		client:   anthropic.NewClient(cfg.APIKey, opts...),
		endpoint: endpoint,
		model:    cfg.Model,
		logger:   logger.Named("generator.anthropic"),
	}, nil
}

// GenerateSite implements TextGenerator.
func (g *AnthropicGenerator) GenerateSite(ctx context.Context, prompt string, systemMessage string, temperature float64) (string, error) {
	g.logger.Debug("generation request",
		zap.String("model", g.model),
		zap.Int("prompt_len", len(prompt)),
		zap.Float64("temperature", temperature))

	start := time.Now()
	temp := float32(temperature)

	resp, err := g.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:       anthropic.Model(g.model),
		System:      systemMessage,
		MaxTokens:   anthropicMaxTokens,
		Temperature: &temp,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(prompt),
		},
	})
	if err != nil {
		g.logger.Error("generation request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		genErr := ClassifyError(err)
		genErr.Model = g.model
		return "", genErr
	}

	text := ""
	for _, block := range resp.Content {
		if block.Type == anthropic.MessagesContentTypeText && block.Text != nil {
			text = *block.Text
			break
		}
	}
	if text == "" {
		return "", NewError(ErrorTypeUnknown, "no text content in response", true, nil)
	}

	g.logger.Info("generation request completed",
		zap.Int("input_tokens", resp.Usage.InputTokens),
		zap.Int("output_tokens", resp.Usage.OutputTokens),
		zap.Duration("elapsed", time.Since(start)))

	return text, nil
}

// GetModel implements TextGenerator.
func (g *AnthropicGenerator) GetModel() string {
	return g.model
}

// GetEndpoint implements TextGenerator.
func (g *AnthropicGenerator) GetEndpoint() string {
	return g.endpoint
}

var _ TextGenerator = (*AnthropicGenerator)(nil)
