package users

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	store  UserStore
	logger *zap.Logger
}

// NewUserService creates a new user service instance
func NewUserService(store UserStore, logger *zap.Logger) *UserServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserServiceImpl{
		store:  store,
		logger: logger,
	}
}

// ListUsers returns every user in collection order
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]*User, error) {
	list, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return list, nil
}

// CreateUser stores a new user. The name is taken verbatim, whatever JSON type it
// is, and may be absent.
func (s *UserServiceImpl) CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error) {
	var name json.RawMessage
	if req != nil {
		name = req.Name
	}

	user, err := s.store.CreateUser(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Debug("User created", zap.Int("id", user.ID), zap.Bool("has_name", user.Name != nil))
	return user, nil
}

// UpdateUser renames the first user whose id matches rawID. An id that does not
// parse behaves like one that matches nobody.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, rawID string, req *UpdateUserRequest) (*User, error) {
	id, ok := ParseID(rawID)
	if !ok {
		return nil, NewUserNotFoundError(rawID)
	}

	var name json.RawMessage
	if req != nil {
		name = req.Name
	}

	user, err := s.store.UpdateUserName(ctx, id, name)
	if err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Debug("User updated", zap.Int("id", user.ID))
	return user, nil
}

// DeleteUser drops every user whose id matches rawID. Deleting an id that is not
// present, or one that does not parse, succeeds without changing anything.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, rawID string) error {
	id, ok := ParseID(rawID)
	if !ok {
		s.logger.Debug("Delete ignored, id is not a number", zap.String("id", rawID))
		return nil
	}

	removed, err := s.store.DeleteUser(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Debug("User delete applied", zap.Int("id", id), zap.Int("removed", removed))
	return nil
}

// Count returns the number of users currently held
func (s *UserServiceImpl) Count(ctx context.Context) int {
	return s.store.Count(ctx)
}
