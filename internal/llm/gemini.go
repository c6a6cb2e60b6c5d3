package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"yechat/internal/logger"
	"yechat/pkg/chattypes"
)

// GeminiClient implements the chattypes.Generator interface for Google's
// Gemini API. It provides lazy initialization of the underlying genai client
// and handles all Gemini-specific conversion logic.
type GeminiClient struct {
	apiKey string
	client *genai.Client
}

// NewGeminiClient creates a new Gemini client with lazy initialization.
// The actual genai client is created only when the first request is made.
func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{
		apiKey: apiKey,
		client: nil, // Will be initialized lazily
	}
}

// Name returns the provider name for this client.
func (c *GeminiClient) Name() string {
	return "gemini"
}

// IsConfigured returns true if the client has a valid API key.
func (c *GeminiClient) IsConfigured() bool {
	return c.apiKey != ""
}

// initializeClientIfNeeded initializes the genai client if it hasn't been
// initialized yet.
func (c *GeminiClient) initializeClientIfNeeded(ctx context.Context) error {
	if c.client != nil {
		return nil // Already initialized
	}

	if c.apiKey == "" {
		return fmt.Errorf("gemini API key not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: c.apiKey,
	})
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c.client = client

	logger.Debug("Gemini client initialized", "provider", "gemini")
	return nil
}

// Generate sends the conversation to Gemini and returns the complete reply.
func (c *GeminiClient) Generate(ctx context.Context, p chattypes.Persona, log chattypes.Log) (string, error) {
	logger.GeneratorCall("gemini", p.Model, len(log))

	if err := c.initializeClientIfNeeded(ctx); err != nil {
		return "", fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	contents := c.convertLog(log)
	config := c.buildGenerationConfig(p)

	result, err := c.client.Models.GenerateContent(ctx, p.Model, contents, config)
	if err != nil {
		logger.Error("Gemini request failed", "error", err)
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	reply := c.extractText(result)
	if reply == "" {
		logger.Error("Empty response content", "provider", "gemini")
		return "", fmt.Errorf("empty response content")
	}

	logger.Debug("Gemini response received", "content_length", len(reply))
	return reply, nil
}

// Stream sends the conversation to Gemini and emits the reply incrementally.
func (c *GeminiClient) Stream(ctx context.Context, p chattypes.Persona, log chattypes.Log) <-chan chattypes.StreamChunk {
	responseChan := make(chan chattypes.StreamChunk, 10)

	go func() {
		defer close(responseChan)

		logger.GeneratorCall("gemini", p.Model, len(log))

		if err := c.initializeClientIfNeeded(ctx); err != nil {
			responseChan <- chattypes.StreamChunk{
				Error: fmt.Errorf("failed to initialize Gemini client: %w", err),
			}
			return
		}

		contents := c.convertLog(log)
		config := c.buildGenerationConfig(p)

		for result, err := range c.client.Models.GenerateContentStream(ctx, p.Model, contents, config) {
			if err != nil {
				logger.Error("Gemini stream failed", "error", err)
				responseChan <- chattypes.StreamChunk{
					Error: fmt.Errorf("gemini request failed: %w", err),
				}
				return
			}

			if text := c.extractText(result); text != "" {
				responseChan <- chattypes.StreamChunk{Content: text}
			}
		}

		responseChan <- chattypes.StreamChunk{Done: true}
	}()

	return responseChan
}

// convertLog converts conversation turns to Gemini contents with proper role
// mapping. Gemini uses "model" instead of "assistant".
func (c *GeminiClient) convertLog(log chattypes.Log) []*genai.Content {
	contents := make([]*genai.Content, 0, len(log))

	for _, turn := range log {
		var role string
		switch turn.Role {
		case chattypes.RoleUser:
			role = "user"
		case chattypes.RoleAssistant:
			role = "model"
		default:
			// Skip unknown roles
			continue
		}

		contents = append(contents, &genai.Content{
			Parts: []*genai.Part{{Text: turn.Content}},
			Role:  role,
		})
	}

	// Gemini rejects an empty contents list, so fall back to a single empty
	// user message.
	if len(contents) == 0 {
		contents = append(contents, &genai.Content{
			Parts: []*genai.Part{{Text: ""}},
			Role:  "user",
		})
	}

	return contents
}

// buildGenerationConfig creates a Gemini generation config from the persona.
func (c *GeminiClient) buildGenerationConfig(p chattypes.Persona) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}

	if p.SystemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(p.SystemPrompt, genai.RoleUser)
	}

	temperature := p.Temperature
	config.Temperature = &temperature
	topP := p.TopP
	config.TopP = &topP
	topK := float32(p.TopK)
	config.TopK = &topK
	config.MaxOutputTokens = p.MaxOutputTokens
	if p.ResponseMIMEType != "" {
		config.ResponseMIMEType = p.ResponseMIMEType
	}
	config.SafetySettings = safetySettings(p.Safety)

	return config
}

// extractText concatenates the text parts of a Gemini response, skipping
// thought summaries.
func (c *GeminiClient) extractText(result *genai.GenerateContentResponse) string {
	var contentBuilder strings.Builder

	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}

		for _, part := range candidate.Content.Parts {
			if part.Text == "" || part.Thought {
				continue
			}
			contentBuilder.WriteString(part.Text)
		}
	}

	return contentBuilder.String()
}

// safetySettings maps a persona safety level onto thresholds for the four
// adjustable Gemini harm categories.
func safetySettings(level chattypes.SafetyLevel) []*genai.SafetySetting {
	threshold := genai.HarmBlockThresholdBlockNone
	if level == chattypes.SafetyMedium {
		threshold = genai.HarmBlockThresholdBlockMediumAndAbove
	}

	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}

	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, category := range categories {
		settings = append(settings, &genai.SafetySetting{
			Category:  category,
			Threshold: threshold,
		})
	}

	return settings
}
