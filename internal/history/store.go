// Package history persists per-session conversation logs.
// A Store maps a session identity to one durable location, loads and
// validates whatever is there, and rewrites the full log after every
// append. Three encodings exist: structured JSON (default), line-delimited
// text, and a memory-only store with no durability at all.
package history

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"yechat/internal/session"
	"yechat/pkg/chattypes"
)

// ErrNoTranscript is returned by Export when nothing has been persisted yet
// for the session.
var ErrNoTranscript = errors.New("no transcript persisted for session")

// historyFilePrefix is the fixed file-name prefix carried over from the
// historical data files; keeping it makes old logs loadable in place.
const historyFilePrefix = "chat_history_"

// Store is the persistence contract for conversation logs. Implementations
// assume a single writer per identity at a time; concurrent tabs sharing a
// session are not defended against.
type Store interface {
	// Locate returns the durable location for the identity's log. Distinct
	// identities always map to distinct locations.
	Locate(id session.Identity) string

	// Load returns the ordered log for the identity. When nothing usable is
	// stored — no file, unreadable file, or a document the encoding rejects —
	// Load degrades to a fresh log seeded with the greeting. It never fails.
	Load(id session.Identity) chattypes.Log

	// Persist writes the full log to the identity's location, replacing any
	// prior content. The write is atomic: a concurrent reader sees either
	// the old document or the new one, never a torn file.
	Persist(id session.Identity, conv chattypes.Log) error

	// Append loads the identity's log, adds one turn, persists the result,
	// and returns the updated log. Persist failures are logged and
	// swallowed; the returned log always carries the appended turn.
	Append(id session.Identity, turn chattypes.Turn) chattypes.Log

	// Health returns the most recent persist error, or nil once a later
	// persist has succeeded. It lets an operator notice silent write
	// failures that the chat surface deliberately hides.
	Health() error
}

// Exporter is implemented by stores whose raw persisted bytes are suitable
// for direct download. Only the line-delimited encoding offers this.
type Exporter interface {
	// Export returns the raw persisted file contents for the identity, or
	// ErrNoTranscript when no file exists yet.
	Export(id session.Identity) ([]byte, error)
}

// Seed returns the log every fresh session starts from: exactly one
// assistant turn carrying the greeting. Loaded logs are never empty.
func Seed(greeting string) chattypes.Log {
	return chattypes.Log{{Role: chattypes.RoleAssistant, Content: greeting}}
}

// health records the most recent persist failure for Store.Health.
type health struct {
	mu      sync.Mutex
	lastErr error
}

func (h *health) record(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastErr = err
}

// Health returns the most recent persist error, nil after a later success.
func (h *health) Health() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastErr
}

// writeFileAtomic writes data next to path and renames it into place, so a
// crash mid-write leaves the previous file intact.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		// Clean up temp file if rename fails
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace history file: %w", err)
	}

	return nil
}
