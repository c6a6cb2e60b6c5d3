// Package testutils provides deterministic generators and golden-file
// helpers for yechat tests. Deterministic tokens keep store fixtures and
// golden transcripts stable across runs while staying in the production
// token format.
package testutils

import (
	"fmt"
	"sync"

	"yechat/internal/session"
	"yechat/pkg/chattypes"
)

var (
	// Thread-safe counter for deterministic token generation
	tokenCounter uint64
	tokenMutex   sync.Mutex
)

// NextToken returns a deterministic session token in UUID format:
// 00000001-0000-4000-8000-000000000001, 00000002-0000-4000-8000-000000000002,
// and so on. Tokens are valid inputs to session.Parse.
func NextToken() string {
	tokenMutex.Lock()
	defer tokenMutex.Unlock()

	tokenCounter++
	return fmt.Sprintf("%08d-0000-4000-8000-%012d", tokenCounter, tokenCounter)
}

// NextIdentity returns a session identity carrying the next deterministic
// token.
func NextIdentity() session.Identity {
	id, err := session.Parse(NextToken())
	if err != nil {
		// Unreachable: NextToken only emits the minted alphabet.
		panic(fmt.Sprintf("deterministic token rejected: %v", err))
	}
	return id
}

// ResetCounters resets the deterministic counters. Call at the start of a
// test that asserts on exact token values.
func ResetCounters() {
	tokenMutex.Lock()
	defer tokenMutex.Unlock()
	tokenCounter = 0
}

// SampleConversation returns a fixed conversation of n turns: the greeting,
// then alternating user/assistant turns with predictable content. Useful
// wherever a test needs a log and does not care what is in it.
func SampleConversation(greeting string, n int) chattypes.Log {
	conv := chattypes.Log{{Role: chattypes.RoleAssistant, Content: greeting}}
	for i := 1; i < n; i++ {
		if i%2 == 1 {
			conv = append(conv, chattypes.Turn{Role: chattypes.RoleUser, Content: fmt.Sprintf("user message %d", i)})
		} else {
			conv = append(conv, chattypes.Turn{Role: chattypes.RoleAssistant, Content: fmt.Sprintf("assistant reply %d", i)})
		}
	}
	return conv
}
