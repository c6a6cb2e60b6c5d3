package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"yechat/internal/logger"
	"yechat/pkg/chattypes"
)

// OpenAIClient implements the chattypes.Generator interface for OpenAI's
// API. It provides lazy initialization of the OpenAI client and handles
// all OpenAI-specific conversion logic.
type OpenAIClient struct {
	apiKey string
	client *openai.Client
}

// NewOpenAIClient creates a new OpenAI client with lazy initialization.
// The actual OpenAI client is created only when the first request is made.
func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{
		apiKey: apiKey,
		client: nil, // Will be initialized lazily
	}
}

// Name returns the provider name for this client.
func (c *OpenAIClient) Name() string {
	return "openai"
}

// IsConfigured returns true if the client has a valid API key.
func (c *OpenAIClient) IsConfigured() bool {
	return c.apiKey != ""
}

// initializeClientIfNeeded initializes the OpenAI client if it hasn't been
// initialized yet.
func (c *OpenAIClient) initializeClientIfNeeded() error {
	if c.client != nil {
		return nil // Already initialized
	}

	if c.apiKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}

	client := openai.NewClient(option.WithAPIKey(c.apiKey))
	c.client = &client

	logger.Debug("OpenAI client initialized", "provider", "openai")
	return nil
}

// Generate sends the conversation to OpenAI and returns the complete reply.
func (c *OpenAIClient) Generate(ctx context.Context, p chattypes.Persona, log chattypes.Log) (string, error) {
	logger.GeneratorCall("openai", p.Model, len(log))

	if err := c.initializeClientIfNeeded(); err != nil {
		return "", fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}

	params := c.buildParams(p, log)

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		logger.Error("OpenAI request failed", "error", err)
		return "", fmt.Errorf("openai request failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		logger.Error("No response choices returned", "provider", "openai")
		return "", fmt.Errorf("no response choices returned")
	}

	content := completion.Choices[0].Message.Content
	if content == "" {
		logger.Error("Empty response content", "provider", "openai")
		return "", fmt.Errorf("empty response content")
	}

	logger.Debug("OpenAI response received", "content_length", len(content))
	return content, nil
}

// Stream sends the conversation to OpenAI and emits the reply incrementally.
func (c *OpenAIClient) Stream(ctx context.Context, p chattypes.Persona, log chattypes.Log) <-chan chattypes.StreamChunk {
	responseChan := make(chan chattypes.StreamChunk, 10)

	go func() {
		defer close(responseChan)

		logger.GeneratorCall("openai", p.Model, len(log))

		if err := c.initializeClientIfNeeded(); err != nil {
			responseChan <- chattypes.StreamChunk{
				Error: fmt.Errorf("failed to initialize OpenAI client: %w", err),
			}
			return
		}

		params := c.buildParams(p, log)

		stream := c.client.Chat.Completions.NewStreaming(ctx, params)
		defer func() { _ = stream.Close() }()

		for stream.Next() {
			chunk := stream.Current()
			if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
				responseChan <- chattypes.StreamChunk{Content: chunk.Choices[0].Delta.Content}
			}
		}

		if err := stream.Err(); err != nil {
			logger.Error("OpenAI stream failed", "error", err)
			responseChan <- chattypes.StreamChunk{
				Error: fmt.Errorf("openai request failed: %w", err),
			}
			return
		}

		responseChan <- chattypes.StreamChunk{Done: true}
	}()

	return responseChan
}

// buildParams converts the persona and conversation into OpenAI completion
// parameters. The persona system prompt is prepended as a system message.
func (c *OpenAIClient) buildParams(p chattypes.Persona, log chattypes.Log) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(log)+1)

	if p.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(p.SystemPrompt))
	}

	for _, turn := range log {
		switch turn.Role {
		case chattypes.RoleUser:
			messages = append(messages, openai.UserMessage(turn.Content))
		case chattypes.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(turn.Content))
		default:
			// Skip unknown roles
			continue
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.Model),
		Messages: messages,
	}
	params.Temperature = openai.Float(float64(p.Temperature))
	params.TopP = openai.Float(float64(p.TopP))
	params.MaxTokens = openai.Int(int64(p.MaxOutputTokens))

	return params
}
