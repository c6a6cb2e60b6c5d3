// Package persona defines the character the application role-plays: its
// system prompt, display strings, and generation parameters. The built-in
// defaults are the Ye persona; a YAML file can override any field.
package persona

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"yechat/pkg/chattypes"
)

// Default returns the built-in Ye persona with the generation parameters
// the application has always shipped.
func Default() chattypes.Persona {
	return chattypes.Persona{
		Name:    "Ye",
		Title:   "Kanye West GPT 🤔",
		Caption: "Ask Kanye anything and get his unfiltered thoughts!",
		SystemPrompt: "You are Kanye West. You are confident, creative, and sometimes controversial. " +
			"Respond like Kanye would.",
		Greeting:      "What's good? It's Ye. What do you wanna know?",
		FallbackReply: "My bad, I can't get my thoughts together right now. Ask me again in a minute.",

		Model:            "gemini-2.5-flash",
		Temperature:      0.9,
		TopP:             0.95,
		TopK:             64,
		MaxOutputTokens:  8192,
		ResponseMIMEType: "text/plain",
		Safety:           chattypes.SafetyPermissive,
	}
}

// Load returns the default persona overlaid with any fields set in the YAML
// file at path. Zero-valued fields keep their defaults, so an override file
// only needs the fields it changes. An empty path returns the defaults.
func Load(path string) (chattypes.Persona, error) {
	p := Default()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return chattypes.Persona{}, fmt.Errorf("failed to read persona file: %w", err)
	}

	if err := yaml.Unmarshal(data, &p); err != nil {
		return chattypes.Persona{}, fmt.Errorf("failed to parse persona file: %w", err)
	}

	if err := Validate(p); err != nil {
		return chattypes.Persona{}, fmt.Errorf("persona file %s: %w", path, err)
	}

	return p, nil
}

// Validate rejects personas with missing text or parameter values outside
// the ranges the providers accept.
func Validate(p chattypes.Persona) error {
	if p.SystemPrompt == "" {
		return fmt.Errorf("system prompt must not be empty")
	}
	if p.Greeting == "" {
		return fmt.Errorf("greeting must not be empty")
	}
	if p.FallbackReply == "" {
		return fmt.Errorf("fallback reply must not be empty")
	}
	if p.Model == "" {
		return fmt.Errorf("model must not be empty")
	}
	if p.Temperature < 0 || p.Temperature > 2 {
		return fmt.Errorf("temperature %v outside [0, 2]", p.Temperature)
	}
	if p.TopP < 0 || p.TopP > 1 {
		return fmt.Errorf("top_p %v outside [0, 1]", p.TopP)
	}
	if p.TopK < 0 {
		return fmt.Errorf("top_k %d must not be negative", p.TopK)
	}
	if p.MaxOutputTokens <= 0 {
		return fmt.Errorf("max_output_tokens %d must be positive", p.MaxOutputTokens)
	}
	if !p.Safety.Valid() {
		return fmt.Errorf("unknown safety level %q", p.Safety)
	}
	return nil
}
