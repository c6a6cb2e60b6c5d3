package history

import (
	"sync"

	"yechat/internal/session"
	"yechat/pkg/chattypes"
)

// MemStore keeps logs in process memory only: every session starts from the
// seeded greeting and its history vanishes when the process ends. It is the
// baseline the durable encodings must reproduce — seed-if-absent, append-only
// ordering — and doubles as the store for tests and demo runs.
type MemStore struct {
	health
	greeting string

	mu   sync.Mutex
	logs map[session.Identity]chattypes.Log
}

// NewMemStore returns a Store with no durability at all.
func NewMemStore(greeting string) *MemStore {
	return &MemStore{
		greeting: greeting,
		logs:     make(map[session.Identity]chattypes.Log),
	}
}

// Locate returns the identity's token; the in-memory map needs no path.
func (s *MemStore) Locate(id session.Identity) string {
	return id.Token()
}

// Load returns a copy of the identity's log, seeded when absent.
func (s *MemStore) Load(id session.Identity) chattypes.Log {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.logs[id]
	if !ok {
		return Seed(s.greeting)
	}
	return conv.Clone()
}

// Persist replaces the identity's log. It cannot fail.
func (s *MemStore) Persist(id session.Identity, conv chattypes.Log) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logs[id] = conv.Clone()
	return nil
}

// Append adds one turn to the identity's log and returns the updated log.
func (s *MemStore) Append(id session.Identity, turn chattypes.Turn) chattypes.Log {
	conv := append(s.Load(id), turn)
	_ = s.Persist(id, conv)
	return conv
}
