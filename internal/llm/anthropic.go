package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"yechat/internal/logger"
	"yechat/pkg/chattypes"
)

// AnthropicClient implements the chattypes.Generator interface for
// Anthropic's API. It provides lazy initialization of the Anthropic client
// and handles all Anthropic-specific conversion logic.
type AnthropicClient struct {
	apiKey string
	client *anthropic.Client
}

// NewAnthropicClient creates a new Anthropic client with lazy initialization.
// The actual Anthropic client is created only when the first request is made.
func NewAnthropicClient(apiKey string) *AnthropicClient {
	return &AnthropicClient{
		apiKey: apiKey,
		client: nil, // Will be initialized lazily
	}
}

// Name returns the provider name for this client.
func (c *AnthropicClient) Name() string {
	return "anthropic"
}

// IsConfigured returns true if the client has a valid API key.
func (c *AnthropicClient) IsConfigured() bool {
	return c.apiKey != ""
}

// initializeClientIfNeeded initializes the Anthropic client if it hasn't
// been initialized yet.
func (c *AnthropicClient) initializeClientIfNeeded() error {
	if c.client != nil {
		return nil // Already initialized
	}

	if c.apiKey == "" {
		return fmt.Errorf("anthropic API key not configured")
	}

	client := anthropic.NewClient(option.WithAPIKey(c.apiKey))
	c.client = &client

	logger.Debug("Anthropic client initialized", "provider", "anthropic")
	return nil
}

// Generate sends the conversation to Anthropic and returns the complete
// reply.
func (c *AnthropicClient) Generate(ctx context.Context, p chattypes.Persona, log chattypes.Log) (string, error) {
	logger.GeneratorCall("anthropic", p.Model, len(log))

	if err := c.initializeClientIfNeeded(); err != nil {
		return "", fmt.Errorf("failed to initialize Anthropic client: %w", err)
	}

	params := c.buildParams(p, log)

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		logger.Error("Anthropic request failed", "error", err)
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}

	if len(message.Content) == 0 {
		logger.Error("No response content returned", "provider", "anthropic")
		return "", fmt.Errorf("no response content returned")
	}

	// Concatenate all text blocks
	var content string
	for _, block := range message.Content {
		content += block.Text
	}

	if content == "" {
		logger.Error("Empty response content", "provider", "anthropic")
		return "", fmt.Errorf("empty response content")
	}

	logger.Debug("Anthropic response received", "content_length", len(content))
	return content, nil
}

// Stream sends the conversation to Anthropic and emits the reply. For now
// it performs a regular completion and returns the reply as a single chunk.
func (c *AnthropicClient) Stream(ctx context.Context, p chattypes.Persona, log chattypes.Log) <-chan chattypes.StreamChunk {
	responseChan := make(chan chattypes.StreamChunk, 2)

	go func() {
		defer close(responseChan)

		content, err := c.Generate(ctx, p, log)
		if err != nil {
			responseChan <- chattypes.StreamChunk{Error: err}
			return
		}

		responseChan <- chattypes.StreamChunk{Content: content}
		responseChan <- chattypes.StreamChunk{Done: true}
	}()

	return responseChan
}

// buildParams converts the persona and conversation into Anthropic message
// parameters. The persona system prompt rides in the system field.
func (c *AnthropicClient) buildParams(p chattypes.Persona, log chattypes.Log) anthropic.MessageNewParams {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.Model),
		MaxTokens: int64(p.MaxOutputTokens),
		Messages:  c.convertLog(log),
	}

	if p.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: p.SystemPrompt},
		}
	}

	params.Temperature = anthropic.Float(float64(p.Temperature))
	params.TopP = anthropic.Float(float64(p.TopP))
	params.TopK = anthropic.Int(int64(p.TopK))

	return params
}

// convertLog converts conversation turns to Anthropic message parameters.
func (c *AnthropicClient) convertLog(log chattypes.Log) []anthropic.MessageParam {
	messages := make([]anthropic.MessageParam, 0, len(log))

	for _, turn := range log {
		switch turn.Role {
		case chattypes.RoleUser:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(turn.Content)))
		case chattypes.RoleAssistant:
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(turn.Content)))
		default:
			// Skip unknown roles
			continue
		}
	}

	return messages
}
