package users

import (
	"context"
	"encoding/json"
)

// UserStore defines the interface for user storage operations
type UserStore interface {
	ListUsers(ctx context.Context) ([]*User, error)
	CreateUser(ctx context.Context, name json.RawMessage) (*User, error)
	UpdateUserName(ctx context.Context, id int, name json.RawMessage) (*User, error)
	DeleteUser(ctx context.Context, id int) (int, error)
	Count(ctx context.Context) int
}

// UserService defines the interface for user service operations
type UserService interface {
	ListUsers(ctx context.Context) ([]*User, error)
	CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error)
	UpdateUser(ctx context.Context, rawID string, req *UpdateUserRequest) (*User, error)
	DeleteUser(ctx context.Context, rawID string) error
	Count(ctx context.Context) int
}
