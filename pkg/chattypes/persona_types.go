// Package chattypes defines the shared conversation types for yechat.
// This file contains the persona configuration carried to every generator call.
package chattypes

// SafetyLevel selects how aggressively the provider filters generated
// content. Only providers with native safety controls (Gemini) act on it.
type SafetyLevel string

// Supported safety levels. Permissive disables provider-side filtering as
// far as the API allows; Medium keeps the provider's middle thresholds.
const (
	SafetyPermissive SafetyLevel = "permissive"
	SafetyMedium     SafetyLevel = "medium"
)

// Valid reports whether s is a recognized safety level.
func (s SafetyLevel) Valid() bool {
	return s == SafetyPermissive || s == SafetyMedium
}

// Persona bundles the system prompt, display strings, and generation
// parameters for the character the application role-plays. A Persona value
// is assembled once at startup and treated as read-only afterwards.
type Persona struct {
	// Name is the short display name of the character (e.g. "Ye").
	Name string `yaml:"name" json:"name"`

	// Title is the page title shown in the chat UI.
	Title string `yaml:"title" json:"title"`

	// Caption is the one-line tagline rendered under the title.
	Caption string `yaml:"caption" json:"caption"`

	// SystemPrompt is the instruction that frames every generation.
	SystemPrompt string `yaml:"system_prompt" json:"-"`

	// Greeting seeds every fresh conversation log as the first assistant turn.
	Greeting string `yaml:"greeting" json:"-"`

	// FallbackReply is appended as a normal assistant turn whenever the
	// generator fails, so the conversation never shows a hole.
	FallbackReply string `yaml:"fallback_reply" json:"-"`

	// Model is the provider model identifier (e.g. "gemini-2.5-flash").
	Model string `yaml:"model" json:"-"`

	// Temperature controls randomness of the output.
	Temperature float32 `yaml:"temperature" json:"-"`

	// TopP is the nucleus-sampling cutoff.
	TopP float32 `yaml:"top_p" json:"-"`

	// TopK limits sampling to the K most likely tokens (Gemini only).
	TopK int32 `yaml:"top_k" json:"-"`

	// MaxOutputTokens caps the reply length.
	MaxOutputTokens int32 `yaml:"max_output_tokens" json:"-"`

	// ResponseMIMEType is the output format requested from Gemini.
	ResponseMIMEType string `yaml:"response_mime_type" json:"-"`

	// Safety is the content-filtering level passed to the provider.
	Safety SafetyLevel `yaml:"safety" json:"-"`
}
