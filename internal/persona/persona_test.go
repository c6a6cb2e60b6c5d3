package persona

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yechat/pkg/chattypes"
)

// TestDefault tests the built-in persona constants
func TestDefault(t *testing.T) {
	p := Default()

	assert.Equal(t, "Ye", p.Name)
	assert.Equal(t, "Kanye West GPT 🤔", p.Title)
	assert.Equal(t, "Ask Kanye anything and get his unfiltered thoughts!", p.Caption)
	assert.Equal(t, "What's good? It's Ye. What do you wanna know?", p.Greeting)
	assert.Contains(t, p.SystemPrompt, "You are Kanye West.")
	assert.Contains(t, p.SystemPrompt, "Respond like Kanye would.")
	assert.NotEmpty(t, p.FallbackReply)

	assert.Equal(t, float32(0.9), p.Temperature)
	assert.Equal(t, float32(0.95), p.TopP)
	assert.Equal(t, int32(64), p.TopK)
	assert.Equal(t, int32(8192), p.MaxOutputTokens)
	assert.Equal(t, "text/plain", p.ResponseMIMEType)
	assert.Equal(t, chattypes.SafetyPermissive, p.Safety)

	require.NoError(t, Validate(p))
}

// TestLoad tests YAML override files
func TestLoad(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		p, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), p)
	})

	t.Run("partial override keeps defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "persona.yaml")
		require.NoError(t, os.WriteFile(path, []byte(
			"name: Tester\ngreeting: \"Sup.\"\ntemperature: 0.2\n"), 0644))

		p, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "Tester", p.Name)
		assert.Equal(t, "Sup.", p.Greeting)
		assert.Equal(t, float32(0.2), p.Temperature)
		// Untouched fields keep the Ye defaults.
		assert.Equal(t, Default().SystemPrompt, p.SystemPrompt)
		assert.Equal(t, Default().Model, p.Model)
		assert.Equal(t, Default().MaxOutputTokens, p.MaxOutputTokens)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read persona file")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("greeting: [unterminated"), 0644))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse persona file")
	})

	t.Run("invalid parameter rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "hot.yaml")
		require.NoError(t, os.WriteFile(path, []byte("temperature: 3.5\n"), 0644))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "temperature")
	})
}

// TestValidate tests parameter range checks
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*chattypes.Persona)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*chattypes.Persona) {}},
		{name: "empty system prompt", mutate: func(p *chattypes.Persona) { p.SystemPrompt = "" }, wantErr: "system prompt"},
		{name: "empty greeting", mutate: func(p *chattypes.Persona) { p.Greeting = "" }, wantErr: "greeting"},
		{name: "empty fallback", mutate: func(p *chattypes.Persona) { p.FallbackReply = "" }, wantErr: "fallback reply"},
		{name: "empty model", mutate: func(p *chattypes.Persona) { p.Model = "" }, wantErr: "model"},
		{name: "temperature too high", mutate: func(p *chattypes.Persona) { p.Temperature = 2.5 }, wantErr: "temperature"},
		{name: "negative temperature", mutate: func(p *chattypes.Persona) { p.Temperature = -0.1 }, wantErr: "temperature"},
		{name: "top_p too high", mutate: func(p *chattypes.Persona) { p.TopP = 1.5 }, wantErr: "top_p"},
		{name: "negative top_k", mutate: func(p *chattypes.Persona) { p.TopK = -1 }, wantErr: "top_k"},
		{name: "zero max tokens", mutate: func(p *chattypes.Persona) { p.MaxOutputTokens = 0 }, wantErr: "max_output_tokens"},
		{name: "bad safety level", mutate: func(p *chattypes.Persona) { p.Safety = "nuclear" }, wantErr: "safety"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(&p)

			err := Validate(p)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
