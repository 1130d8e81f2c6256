package users

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
)

// InMemoryStore implements UserStore over an ordered slice held in process memory.
// The collection lives as long as the store and is never persisted.
type InMemoryStore struct {
	mu       sync.RWMutex
	users    []*User
	strategy IDStrategy
	nextID   int
}

// NewInMemoryStore creates a store seeded with a single user {id: 1, name: seedName}
func NewInMemoryStore(seedName string, strategy IDStrategy) *InMemoryStore {
	if !strategy.Valid() {
		strategy = IDStrategyLength
	}
	return &InMemoryStore{
		users:    []*User{{ID: 1, Name: StringName(seedName)}},
		strategy: strategy,
		nextID:   2,
	}
}

// ListUsers returns copies of all users in collection order
func (s *InMemoryStore) ListUsers(ctx context.Context) ([]*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.Clone())
	}
	return out, nil
}

// CreateUser appends a user with the next id and returns a copy of it
func (s *InMemoryStore) CreateUser(ctx context.Context, name json.RawMessage) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := &User{ID: s.assignID(), Name: copyName(name)}
	s.users = append(s.users, user)
	return user.Clone(), nil
}

// UpdateUserName overwrites the name of the first user with the given id
func (s *InMemoryStore) UpdateUserName(ctx context.Context, id int, name json.RawMessage) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			u.Name = copyName(name)
			return u.Clone(), nil
		}
	}
	return nil, NewUserNotFoundError(strconv.Itoa(id))
}

// DeleteUser replaces the collection with the users whose id differs from id.
// It returns how many records were dropped; zero is not an error.
func (s *InMemoryStore) DeleteUser(ctx context.Context, id int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]*User, 0, len(s.users))
	for _, u := range s.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	removed := len(s.users) - len(kept)
	s.users = kept
	return removed, nil
}

// Count returns the current number of users
func (s *InMemoryStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// assignID must be called with mu held
func (s *InMemoryStore) assignID() int {
	if s.strategy == IDStrategySequence {
		id := s.nextID
		s.nextID++
		return id
	}
	return len(s.users) + 1
}
