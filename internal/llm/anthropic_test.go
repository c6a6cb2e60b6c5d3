package llm

import (
	"context"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yechat/internal/persona"
	"yechat/pkg/chattypes"
)

func TestNewAnthropicClient(t *testing.T) {
	client := NewAnthropicClient("test-api-key")

	assert.Equal(t, "test-api-key", client.apiKey)
	assert.Nil(t, client.client) // Should be nil due to lazy initialization
}

func TestAnthropicClient_Name(t *testing.T) {
	client := NewAnthropicClient("test-api-key")
	assert.Equal(t, "anthropic", client.Name())
}

func TestAnthropicClient_IsConfigured(t *testing.T) {
	assert.True(t, NewAnthropicClient("test-api-key").IsConfigured())
	assert.False(t, NewAnthropicClient("").IsConfigured())
}

func TestAnthropicClient_ConvertLog(t *testing.T) {
	client := NewAnthropicClient("test-api-key")

	log := chattypes.Log{
		{Role: chattypes.RoleUser, Content: "User message"},
		{Role: chattypes.RoleAssistant, Content: "Assistant message"},
		{Role: chattypes.Role("narrator"), Content: "Skipped"},
	}

	messages := client.convertLog(log)

	require.Len(t, messages, 2)

	userCount := 0
	assistantCount := 0
	for _, msg := range messages {
		switch msg.Role {
		case "user":
			userCount++
		case "assistant":
			assistantCount++
		}
	}
	assert.Equal(t, 1, userCount)
	assert.Equal(t, 1, assistantCount)
}

func TestAnthropicClient_BuildParams(t *testing.T) {
	client := NewAnthropicClient("test-api-key")
	p := persona.Default()

	log := chattypes.Log{
		{Role: chattypes.RoleAssistant, Content: p.Greeting},
		{Role: chattypes.RoleUser, Content: "Hello"},
	}

	params := client.buildParams(p, log)

	assert.Equal(t, anthropic.Model(p.Model), params.Model)
	assert.Equal(t, int64(8192), params.MaxTokens)
	require.Len(t, params.System, 1)
	assert.Equal(t, p.SystemPrompt, params.System[0].Text)
	assert.Len(t, params.Messages, 2)
}

func TestAnthropicClient_BuildParamsWithoutSystemPrompt(t *testing.T) {
	client := NewAnthropicClient("test-api-key")
	p := persona.Default()
	p.SystemPrompt = ""

	params := client.buildParams(p, chattypes.Log{})

	assert.Empty(t, params.System)
}

func TestAnthropicClient_StreamWithoutCredentials(t *testing.T) {
	client := NewAnthropicClient("")

	chunks := collectChunks(t, client.Stream(context.Background(), persona.Default(), chattypes.Log{}))

	require.Len(t, chunks, 1)
	require.Error(t, chunks[0].Error)
	assert.False(t, chunks[0].Done)
}
