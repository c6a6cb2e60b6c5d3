package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew tests random identity minting
func TestNew(t *testing.T) {
	t.Run("minted tokens are stable and non-zero", func(t *testing.T) {
		id := New()
		assert.False(t, id.IsZero())
		assert.Equal(t, id.Token(), id.Token())
		assert.Equal(t, id.Token(), id.String())
	})

	t.Run("minted tokens pass Parse", func(t *testing.T) {
		id := New()
		parsed, err := Parse(id.Token())
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
	})

	t.Run("no collisions over a large sample", func(t *testing.T) {
		const sample = 10000
		seen := make(map[string]bool, sample)
		for i := 0; i < sample; i++ {
			token := New().Token()
			if seen[token] {
				t.Fatalf("duplicate token %q after %d mints", token, i)
			}
			seen[token] = true
		}
	})
}

// TestFromSeed tests deterministic legacy seed upgrade
func TestFromSeed(t *testing.T) {
	t.Run("same seed same token", func(t *testing.T) {
		a := FromSeed("1717171717.123456")
		b := FromSeed("1717171717.123456")
		assert.Equal(t, a, b)
	})

	t.Run("different seeds different tokens", func(t *testing.T) {
		seen := make(map[string]bool)
		seeds := []string{"a", "b", "ab", "ba", "", "1717171717.1", "1717171717.2"}
		for _, seed := range seeds {
			token := FromSeed(seed).Token()
			assert.False(t, seen[token], "seed %q collided", seed)
			seen[token] = true
		}
	})

	t.Run("digest tokens pass Parse", func(t *testing.T) {
		id := FromSeed("legacy-cookie-value")
		parsed, err := Parse(id.Token())
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
		assert.Len(t, id.Token(), 64)
	})
}

// TestParse tests token validation at the trust boundary
func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{name: "uuid token", token: "a2f1c6de-0a8b-4d4e-9c51-20cf49c979a1", wantErr: false},
		{name: "hex digest token", token: "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08", wantErr: false},
		{name: "empty", token: "", wantErr: true},
		{name: "too short", token: "abc123", wantErr: true},
		{name: "too long", token: "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08ff", wantErr: true},
		{name: "uppercase rejected", token: "A2F1C6DE-0A8B-4D4E-9C51-20CF49C979A1", wantErr: true},
		{name: "path traversal rejected", token: "../../../etc/passwd", wantErr: true},
		{name: "slash rejected", token: "abcdef0123456789/0", wantErr: true},
		{name: "whitespace rejected", token: "abcdef0123 456789", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := Parse(tt.token)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, id.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.token, id.Token())
		})
	}
}
