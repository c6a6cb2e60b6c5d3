// Package session derives the stable identifiers that key conversation logs.
// Every persistence operation takes an explicit Identity value; nothing in
// this package or its callers keeps ambient per-session state.
package session

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// Token length bounds accepted from the outside. Freshly minted tokens are
// 36 characters (UUID) and seed digests are 64 (SHA-256 hex).
const (
	minTokenLen = 16
	maxTokenLen = 64
)

// Identity is the stable token that keys one conversation log. The zero
// value is invalid; obtain an Identity from New, FromSeed, or Parse.
type Identity struct {
	token string
}

// New mints an identity with a random unguessable token. Randomness stands
// in for the historical timestamp-plus-digest scheme: once the token cannot
// be guessed, hashing it adds nothing.
func New() Identity {
	return Identity{token: uuid.NewString()}
}

// FromSeed derives an identity deterministically from an opaque seed value;
// the same seed always yields the same token. This keeps sessions reachable
// whose cookie still carries the raw seed from older deployments.
func FromSeed(seed string) Identity {
	sum := sha256.Sum256([]byte(seed))
	return Identity{token: hex.EncodeToString(sum[:])}
}

// Parse validates an externally supplied token. Tokens travel in cookies,
// and the token becomes part of a file name, so anything outside the minted
// alphabet is rejected before it can reach the filesystem.
func Parse(token string) (Identity, error) {
	if len(token) < minTokenLen || len(token) > maxTokenLen {
		return Identity{}, fmt.Errorf("session token length %d outside [%d, %d]", len(token), minTokenLen, maxTokenLen)
	}
	for _, c := range token {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c == '-':
		default:
			return Identity{}, fmt.Errorf("session token contains invalid character %q", c)
		}
	}
	return Identity{token: token}, nil
}

// Token returns the stable token string. Identical across calls for the
// same Identity value.
func (id Identity) Token() string {
	return id.token
}

// IsZero reports whether id is the invalid zero value.
func (id Identity) IsZero() bool {
	return id.token == ""
}

// String implements fmt.Stringer for log output.
func (id Identity) String() string {
	return id.token
}
