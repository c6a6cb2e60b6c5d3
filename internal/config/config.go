// Package config loads yechat settings from the process environment.
// A .env file in the working directory is honored for local development;
// real environment variables always take precedence over file values.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"yechat/internal/logger"
	"yechat/pkg/chattypes"
)

// Provider identifies which hosted LLM backend serves generations.
type Provider string

// Supported providers. Mock serves canned replies and needs no credential.
const (
	ProviderGemini    Provider = "gemini"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderMock      Provider = "mock"
)

// HistoryFormat selects the on-disk encoding for conversation logs.
type HistoryFormat string

// Supported history encodings. None keeps logs in process memory only.
const (
	FormatJSON HistoryFormat = "json"
	FormatText HistoryFormat = "text"
	FormatNone HistoryFormat = "none"
)

// Settings holds everything the application reads from its environment.
type Settings struct {
	Addr          string                // YECHAT_ADDR, listen address
	DataDir       string                // YECHAT_DATA_DIR, conversation log directory
	HistoryFormat HistoryFormat         // YECHAT_HISTORY_FORMAT, json|text|none
	Provider      Provider              // YECHAT_PROVIDER, gemini|openai|anthropic|mock
	Model         string                // YECHAT_MODEL, overrides the persona's model
	PersonaFile   string                // YECHAT_PERSONA_FILE, optional YAML override
	Safety        chattypes.SafetyLevel // YECHAT_SAFETY, permissive|medium; empty keeps the persona's level

	GeminiAPIKey    string // GEMINI_API_KEY
	OpenAIAPIKey    string // OPENAI_API_KEY
	AnthropicAPIKey string // ANTHROPIC_API_KEY

	LogLevel string // YECHAT_LOG_LEVEL
	LogFile  string // YECHAT_LOG_FILE
}

// Load reads settings from the environment, loading a .env file first when
// one exists in the working directory.
func Load() Settings {
	if err := godotenv.Load(); err == nil {
		logger.Debug("Loaded .env file")
	}

	return Settings{
		Addr:          getenv("YECHAT_ADDR", ":8080"),
		DataDir:       getenv("YECHAT_DATA_DIR", "./data"),
		HistoryFormat: HistoryFormat(strings.ToLower(getenv("YECHAT_HISTORY_FORMAT", "json"))),
		Provider:      Provider(strings.ToLower(getenv("YECHAT_PROVIDER", "gemini"))),
		Model:         os.Getenv("YECHAT_MODEL"),
		PersonaFile:   os.Getenv("YECHAT_PERSONA_FILE"),
		Safety:        chattypes.SafetyLevel(strings.ToLower(os.Getenv("YECHAT_SAFETY"))),

		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),

		LogLevel: os.Getenv("YECHAT_LOG_LEVEL"),
		LogFile:  os.Getenv("YECHAT_LOG_FILE"),
	}
}

// Validate reports configuration errors that must halt startup: unknown
// enum values or a missing credential for the selected provider.
func (s Settings) Validate() error {
	switch s.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderMock:
	default:
		return fmt.Errorf("unknown provider %q (expected gemini, openai, anthropic, or mock)", s.Provider)
	}

	switch s.HistoryFormat {
	case FormatJSON, FormatText, FormatNone:
	default:
		return fmt.Errorf("unknown history format %q (expected json, text, or none)", s.HistoryFormat)
	}

	if s.Safety != "" && !s.Safety.Valid() {
		return fmt.Errorf("unknown safety level %q (expected permissive or medium)", s.Safety)
	}

	if s.Provider != ProviderMock && s.APIKey() == "" {
		return fmt.Errorf("%s not set (required for provider %s)", s.credentialName(), s.Provider)
	}

	return nil
}

// APIKey returns the credential for the selected provider, empty when unset.
func (s Settings) APIKey() string {
	switch s.Provider {
	case ProviderGemini:
		return s.GeminiAPIKey
	case ProviderOpenAI:
		return s.OpenAIAPIKey
	case ProviderAnthropic:
		return s.AnthropicAPIKey
	default:
		return ""
	}
}

func (s Settings) credentialName() string {
	switch s.Provider {
	case ProviderGemini:
		return "GEMINI_API_KEY"
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}

// getenv returns the value of key or fallback when key is unset or blank.
func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
