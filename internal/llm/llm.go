// Package llm provides chat reply generators backed by the Gemini, OpenAI,
// and Anthropic APIs, plus a deterministic mock for offline use. All clients
// implement the chattypes.Generator interface and initialize their
// underlying SDK clients lazily on first use.
package llm

import (
	"fmt"

	"yechat/pkg/chattypes"
)

// New returns the generator for the named provider. The mock provider needs
// no API key; the real providers accept one here and fail on first use if
// it is empty.
func New(provider string, apiKey string) (chattypes.Generator, error) {
	switch provider {
	case "gemini":
		return NewGeminiClient(apiKey), nil
	case "openai":
		return NewOpenAIClient(apiKey), nil
	case "anthropic":
		return NewAnthropicClient(apiKey), nil
	case "mock":
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
