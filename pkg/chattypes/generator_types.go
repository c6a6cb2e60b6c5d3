// Package chattypes defines the shared conversation types for yechat.
// This file contains the generator abstraction and its streaming chunk type.
package chattypes

import "context"

// StreamChunk represents a single chunk of a streamed reply.
type StreamChunk struct {
	Content string // The text content of this chunk
	Done    bool   // Whether this is the final chunk
	Error   error  // Any error that occurred during streaming
}

// Generator defines the interface for LLM provider implementations.
// Implementations receive the full conversation log and the active persona
// and produce the assistant's next reply.
type Generator interface {
	// Name returns the provider name (e.g. "gemini", "openai").
	Name() string

	// Generate returns the complete reply to the conversation so far.
	Generate(ctx context.Context, p Persona, log Log) (string, error)

	// Stream sends the conversation and emits the reply incrementally.
	// The returned channel is always terminated by exactly one chunk with
	// either Done or Error set; Content on that chunk may be empty.
	Stream(ctx context.Context, p Persona, log Log) <-chan StreamChunk
}
