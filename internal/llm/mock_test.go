package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yechat/internal/persona"
	"yechat/pkg/chattypes"
)

func TestMockClient_GenerateCycles(t *testing.T) {
	client := NewMockClient()

	reply, err := client.Generate(context.Background(), persona.Default(), chattypes.Log{})
	require.NoError(t, err)
	assert.Equal(t, defaultMockReply, reply)

	client.SetReplies("first", "second")

	reply, err = client.Generate(context.Background(), persona.Default(), chattypes.Log{})
	require.NoError(t, err)
	assert.Equal(t, "first", reply)

	reply, err = client.Generate(context.Background(), persona.Default(), chattypes.Log{})
	require.NoError(t, err)
	assert.Equal(t, "second", reply)

	reply, err = client.Generate(context.Background(), persona.Default(), chattypes.Log{})
	require.NoError(t, err)
	assert.Equal(t, "first", reply)

	assert.Equal(t, 3, client.Calls())
}

func TestMockClient_StreamReassembles(t *testing.T) {
	client := NewMockClient()
	client.SetReplies("I'm Ye. What else you need to know?")

	chunks := collectChunks(t, client.Stream(context.Background(), persona.Default(), chattypes.Log{}))

	require.NotEmpty(t, chunks)

	last := chunks[len(chunks)-1]
	assert.True(t, last.Done)
	assert.NoError(t, last.Error)

	var assembled strings.Builder
	for _, chunk := range chunks[:len(chunks)-1] {
		assert.False(t, chunk.Done)
		assembled.WriteString(chunk.Content)
	}
	assert.Equal(t, "I'm Ye. What else you need to know?", assembled.String())

	// The reply arrives in several pieces, not one blob.
	assert.Greater(t, len(chunks), 2)
}

func TestMockClient_Error(t *testing.T) {
	client := NewMockClient()
	client.SetError(errors.New("provider offline"))

	_, err := client.Generate(context.Background(), persona.Default(), chattypes.Log{})
	require.Error(t, err)

	chunks := collectChunks(t, client.Stream(context.Background(), persona.Default(), chattypes.Log{}))
	require.Len(t, chunks, 1)
	assert.Error(t, chunks[0].Error)
	assert.False(t, chunks[0].Done)

	client.SetError(nil)
	_, err = client.Generate(context.Background(), persona.Default(), chattypes.Log{})
	assert.NoError(t, err)
}

func TestMockClient_LastLog(t *testing.T) {
	client := NewMockClient()

	log := chattypes.Log{
		{Role: chattypes.RoleAssistant, Content: "greeting"},
		{Role: chattypes.RoleUser, Content: "question"},
	}

	_, err := client.Generate(context.Background(), persona.Default(), log)
	require.NoError(t, err)

	assert.Equal(t, log, client.LastLog())
}
