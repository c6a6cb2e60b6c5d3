package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"

	"yechat/internal/logger"
	"yechat/internal/session"
	"yechat/pkg/chattypes"
)

// JSONStore keeps each session's log as one pretty-printed JSON document:
// an array of {role, content} records. Parsing is all-or-nothing — a document
// that cannot be decoded, has no turns, or carries an unknown role
// invalidates the whole log and the session restarts from the greeting.
type JSONStore struct {
	health
	dir      string
	greeting string
	logger   *charmlog.Logger
}

// NewJSONStore returns a Store keeping one JSON document per session under dir.
func NewJSONStore(dir, greeting string) *JSONStore {
	return &JSONStore{
		dir:      dir,
		greeting: greeting,
		logger:   logger.NewStyledLogger("History"),
	}
}

// Locate returns the history file path for the identity.
func (s *JSONStore) Locate(id session.Identity) string {
	return filepath.Join(s.dir, historyFilePrefix+id.Token()+".json")
}

// Load returns the stored log, reseeding with the greeting when the file is
// missing or the document is rejected.
func (s *JSONStore) Load(id session.Identity) chattypes.Log {
	path := s.Locate(id)

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("History file unreadable, reseeding", "path", path, "error", err)
		}
		logger.StoreOperation("json", "seed", "session", id.Token())
		return Seed(s.greeting)
	}

	conv, err := decodeConversation(data)
	if err != nil {
		s.logger.Warn("History document rejected, reseeding", "path", path, "error", err)
		return Seed(s.greeting)
	}

	return conv
}

// Persist writes the full log as an indented JSON array, atomically.
func (s *JSONStore) Persist(id session.Identity, conv chattypes.Log) error {
	data, err := json.MarshalIndent(conv, "", "  ")
	if err != nil {
		err = fmt.Errorf("failed to marshal history: %w", err)
		s.record(err)
		return err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		err = fmt.Errorf("failed to create history directory: %w", err)
		s.record(err)
		return err
	}

	if err := writeFileAtomic(s.Locate(id), data); err != nil {
		s.record(err)
		return err
	}

	s.record(nil)
	return nil
}

// Append adds one turn and persists the result. A failed persist is logged
// and swallowed; only durability is lost, not the returned turn.
func (s *JSONStore) Append(id session.Identity, turn chattypes.Turn) chattypes.Log {
	conv := append(s.Load(id), turn)
	if err := s.Persist(id, conv); err != nil {
		s.logger.Error("Failed to persist appended turn", "session", id.Token(), "error", err)
	}
	return conv
}

// decodeConversation parses a stored JSON document. Recovery is at file
// granularity: any defect rejects the whole document.
func decodeConversation(data []byte) (chattypes.Log, error) {
	var raw []chattypes.Turn
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse history document: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("history document has no turns")
	}

	conv := make(chattypes.Log, 0, len(raw))
	for i, turn := range raw {
		role, ok := chattypes.ParseRole(string(turn.Role))
		if !ok {
			return nil, fmt.Errorf("turn %d has unknown role %q", i, turn.Role)
		}
		conv = append(conv, chattypes.Turn{Role: role, Content: turn.Content})
	}
	return conv, nil
}
