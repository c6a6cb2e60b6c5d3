// Package chattypes defines the shared conversation types for yechat.
// This file contains the core types for conversation turns and per-session logs.
package chattypes

import "strings"

// Role identifies the author of a conversation turn.
type Role string

// The two roles a turn can carry. The persona only ever speaks as the
// assistant; everything typed into the chat box is the user.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the recognized roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Title returns the capitalized form of the role used by the line-delimited
// transcript format ("User", "Assistant").
func (r Role) Title() string {
	if len(r) == 0 {
		return ""
	}
	return strings.ToUpper(string(r[:1])) + string(r[1:])
}

// ParseRole normalizes a serialized role back to its canonical lowercase
// form. The second return is false for anything that is not a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

// Turn represents a single message in the conversation history.
// Turns are immutable once created; ordering within a log is significant.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Log is the ordered conversation history for one session. A log is never
// empty once loaded: stores seed a fresh log with the persona's greeting
// before any user interaction.
type Log []Turn

// Clone returns an independent copy of the log so callers can append
// without aliasing the original backing array.
func (l Log) Clone() Log {
	if l == nil {
		return nil
	}
	out := make(Log, len(l))
	copy(out, l)
	return out
}

// Last returns the final turn of the log, if any.
func (l Log) Last() (Turn, bool) {
	if len(l) == 0 {
		return Turn{}, false
	}
	return l[len(l)-1], true
}
