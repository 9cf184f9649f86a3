package generator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIGenerator calls OpenAI-compatible chat completion endpoints.
type OpenAIGenerator struct {
	client   *openai.Client
	endpoint string
	model    string
	logger   *zap.Logger
}

// NewOpenAIGenerator creates a generator backed by an OpenAI-compatible
// endpoint. An empty endpoint selects the public OpenAI API.
func NewOpenAIGenerator(cfg *Config, logger *zap.Logger) (*OpenAIGenerator, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	endpoint := cfg.Endpoint
	if endpoint != "" {
		clientConfig.BaseURL = strings.TrimSuffix(endpoint, "/")
	} else {
		endpoint = clientConfig.BaseURL
	}

	return &OpenAIGenerator{
		client:   openai.NewClientWithConfig(clientConfig),
		endpoint: endpoint,
		model:    cfg.Model,
		logger:   logger.Named("generator.openai"),
	}, nil
}

// GenerateSite implements TextGenerator. JSON response mode is requested so
// the model skips prose preambles, though the output still goes through the
// sanitizer because local deployments ignore the response format hint.
func (g *OpenAIGenerator) GenerateSite(ctx context.Context, prompt string, systemMessage string, temperature float64) (string, error) {
	g.logger.Debug("generation request",
		zap.String("model", g.model),
		zap.Int("prompt_len", len(prompt)),
		zap.Float64("temperature", temperature))

	start := time.Now()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: float32(temperature),
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
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

	if len(resp.Choices) == 0 {
		return "", NewError(ErrorTypeUnknown, "no choices in response", true, nil)
	}

	g.logger.Info("generation request completed",
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("elapsed", time.Since(start)))

	return resp.Choices[0].Message.Content, nil
}

// GetModel implements TextGenerator.
func (g *OpenAIGenerator) GetModel() string {
	return g.model
}

// GetEndpoint implements TextGenerator.
func (g *OpenAIGenerator) GetEndpoint() string {
	return g.endpoint
}

var _ TextGenerator = (*OpenAIGenerator)(nil)
