package history

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"

	"yechat/internal/logger"
	"yechat/internal/session"
	"yechat/pkg/chattypes"
)

// TextStore keeps each session's log as line-delimited text: one
// "<Role>: <content>" line per turn, blank-line separated. Parsing is
// per-line tolerant — lines without the ": " separator or with an unknown
// role are silently dropped, so partial corruption loses single turns
// rather than the whole log.
//
// The format has no escaping: content containing newlines or a leading
// "<word>: " sequence will not round-trip. The JSON encoding is the safe
// choice for such content; this one exists for its greppable transcripts.
type TextStore struct {
	health
	dir      string
	greeting string
	logger   *charmlog.Logger
}

// NewTextStore returns a Store keeping one line-delimited transcript per
// session under dir.
func NewTextStore(dir, greeting string) *TextStore {
	return &TextStore{
		dir:      dir,
		greeting: greeting,
		logger:   logger.NewStyledLogger("History"),
	}
}

// Locate returns the transcript file path for the identity.
func (s *TextStore) Locate(id session.Identity) string {
	return filepath.Join(s.dir, historyFilePrefix+id.Token()+".txt")
}

// Load returns the stored log, dropping unparseable lines. A missing file,
// an unreadable file, or a file with no recoverable turns reseeds with the
// greeting.
func (s *TextStore) Load(id session.Identity) chattypes.Log {
	path := s.Locate(id)

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("Transcript unreadable, reseeding", "path", path, "error", err)
		}
		logger.StoreOperation("text", "seed", "session", id.Token())
		return Seed(s.greeting)
	}

	conv, dropped := parseTranscript(data)
	if dropped > 0 {
		s.logger.Warn("Transcript has unparseable lines", "path", path, "dropped", dropped)
	}
	if len(conv) == 0 {
		s.logger.Warn("Transcript has no recoverable turns, reseeding", "path", path)
		return Seed(s.greeting)
	}

	return conv
}

// Persist writes the full log as a transcript, atomically.
func (s *TextStore) Persist(id session.Identity, conv chattypes.Log) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		err = fmt.Errorf("failed to create history directory: %w", err)
		s.record(err)
		return err
	}

	if err := writeFileAtomic(s.Locate(id), []byte(encodeTranscript(conv))); err != nil {
		s.record(err)
		return err
	}

	s.record(nil)
	return nil
}

// Append adds one turn and persists the result. A failed persist is logged
// and swallowed; only durability is lost, not the returned turn.
func (s *TextStore) Append(id session.Identity, turn chattypes.Turn) chattypes.Log {
	conv := append(s.Load(id), turn)
	if err := s.Persist(id, conv); err != nil {
		s.logger.Error("Failed to persist appended turn", "session", id.Token(), "error", err)
	}
	return conv
}

// Export returns the raw persisted transcript for download.
func (s *TextStore) Export(id session.Identity) ([]byte, error) {
	data, err := os.ReadFile(s.Locate(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoTranscript
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}
	return data, nil
}

// encodeTranscript renders the log in the historical on-disk form: the
// capitalized role, a colon-space separator, the content, and a blank line.
func encodeTranscript(conv chattypes.Log) string {
	var b strings.Builder
	for _, turn := range conv {
		b.WriteString(turn.Role.Title())
		b.WriteString(": ")
		b.WriteString(turn.Content)
		b.WriteString("\n\n")
	}
	return b.String()
}

// parseTranscript recovers turns line by line. Empty lines are separators;
// anything without the ": " separator or with an unrecognized role counts
// as dropped.
func parseTranscript(data []byte) (conv chattypes.Log, dropped int) {
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}

		roleStr, content, found := strings.Cut(line, ": ")
		if !found {
			dropped++
			continue
		}

		role, ok := chattypes.ParseRole(roleStr)
		if !ok {
			dropped++
			continue
		}

		conv = append(conv, chattypes.Turn{Role: role, Content: content})
	}
	return conv, dropped
}
