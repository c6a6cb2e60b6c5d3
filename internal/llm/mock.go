package llm

import (
	"context"
	"strings"
	"sync"

	"yechat/pkg/chattypes"
)

// defaultMockReply is handed out when no canned replies are configured.
const defaultMockReply = "This is a mock reply."

// MockClient provides a deterministic Generator that never touches the
// network. It backs the mock provider for offline demos and the server
// handler tests.
type MockClient struct {
	mu      sync.Mutex
	replies []string
	err     error
	calls   int
	lastLog chattypes.Log
}

// NewMockClient creates a new MockClient with the default canned reply.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Name returns the provider name for this client.
func (c *MockClient) Name() string {
	return "mock"
}

// IsConfigured always returns true; the mock needs no credentials.
func (c *MockClient) IsConfigured() bool {
	return true
}

// SetReplies replaces the canned replies. Successive generations cycle
// through them in order.
func (c *MockClient) SetReplies(replies ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replies = replies
	c.calls = 0
}

// SetError makes every subsequent generation fail with err. Pass nil to
// restore normal behavior.
func (c *MockClient) SetError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// Calls reports how many replies have been handed out.
func (c *MockClient) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// LastLog returns a copy of the conversation most recently passed in.
func (c *MockClient) LastLog() chattypes.Log {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastLog.Clone()
}

// Generate returns the next canned reply.
func (c *MockClient) Generate(_ context.Context, _ chattypes.Persona, log chattypes.Log) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastLog = log.Clone()

	if c.err != nil {
		return "", c.err
	}

	if len(c.replies) == 0 {
		c.calls++
		return defaultMockReply, nil
	}

	reply := c.replies[c.calls%len(c.replies)]
	c.calls++
	return reply, nil
}

// Stream replays the next canned reply as word-sized chunks followed by a
// terminal Done chunk, mimicking provider streaming closely enough for the
// web UI.
func (c *MockClient) Stream(ctx context.Context, p chattypes.Persona, log chattypes.Log) <-chan chattypes.StreamChunk {
	responseChan := make(chan chattypes.StreamChunk, 10)

	go func() {
		defer close(responseChan)

		content, err := c.Generate(ctx, p, log)
		if err != nil {
			responseChan <- chattypes.StreamChunk{Error: err}
			return
		}

		// SplitAfter keeps the separators, so concatenating the chunks
		// reproduces the reply exactly.
		for _, piece := range strings.SplitAfter(content, " ") {
			if piece == "" {
				continue
			}
			responseChan <- chattypes.StreamChunk{Content: piece}
		}

		responseChan <- chattypes.StreamChunk{Done: true}
	}()

	return responseChan
}
