package users

import (
	"encoding/json"
)

// User represents a user record held by the store.
// Name holds whatever JSON value the caller sent, untouched. A nil Name means the
// field was never sent and is left out of the encoded user; a JSON null is kept
// and encoded as null.
type User struct {
	ID   int             `json:"id"`
	Name json.RawMessage `json:"name,omitempty"`
}

// Clone returns a copy that shares no memory with the receiver
func (u *User) Clone() *User {
	return &User{ID: u.ID, Name: copyName(u.Name)}
}

// CreateUserRequest represents the request to create a user
type CreateUserRequest struct {
	Name json.RawMessage `json:"name"`
}

// UpdateUserRequest represents the request to rename a user
type UpdateUserRequest struct {
	Name json.RawMessage `json:"name"`
}

// IDStrategy selects how ids are assigned to new users
type IDStrategy string

const (
	// IDStrategyLength assigns len(collection)+1. Ids can repeat after a delete.
	IDStrategyLength IDStrategy = "length"
	// IDStrategySequence assigns ids from a counter that never goes backwards.
	IDStrategySequence IDStrategy = "sequence"
)

// Valid reports whether s names a known strategy
func (s IDStrategy) Valid() bool {
	switch s {
	case IDStrategyLength, IDStrategySequence:
		return true
	}
	return false
}

// StringName encodes s as a JSON string name
func StringName(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

func copyName(name json.RawMessage) json.RawMessage {
	if len(name) == 0 {
		return nil
	}
	return append(json.RawMessage(nil), name...)
}
