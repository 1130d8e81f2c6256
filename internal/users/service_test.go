package users

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// failingStore returns storeErr from every mutating call
type failingStore struct {
	*InMemoryStore
	storeErr error
}

func (f *failingStore) CreateUser(ctx context.Context, name json.RawMessage) (*User, error) {
	return nil, f.storeErr
}

func (f *failingStore) DeleteUser(ctx context.Context, id int) (int, error) {
	return 0, f.storeErr
}

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(NewInMemoryStore("Firat", IDStrategyLength), zap.NewNop())

	user, err := svc.CreateUser(ctx, &CreateUserRequest{Name: StringName("Mehmet")})
	require.NoError(t, err)
	assert.Equal(t, 2, user.ID)
	assert.Equal(t, StringName("Mehmet"), user.Name)

	user, err = svc.CreateUser(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, user.ID)
	assert.Nil(t, user.Name)
}

func TestUserService_UpdateUser(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(NewInMemoryStore("Firat", IDStrategyLength), nil)

	t.Run("found", func(t *testing.T) {
		user, err := svc.UpdateUser(ctx, "1", &UpdateUserRequest{Name: StringName("Veli")})
		require.NoError(t, err)
		assert.Equal(t, 1, user.ID)
		assert.Equal(t, StringName("Veli"), user.Name)
	})

	t.Run("parseInt prefix", func(t *testing.T) {
		user, err := svc.UpdateUser(ctx, "1abc", &UpdateUserRequest{Name: StringName("Ali")})
		require.NoError(t, err)
		assert.Equal(t, StringName("Ali"), user.Name)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.UpdateUser(ctx, "999", &UpdateUserRequest{Name: StringName("Z")})
		assert.True(t, IsNotFound(err))
	})

	t.Run("not a number", func(t *testing.T) {
		_, err := svc.UpdateUser(ctx, "abc", &UpdateUserRequest{Name: StringName("Z")})
		assert.True(t, IsNotFound(err))

		list, err := svc.ListUsers(ctx)
		require.NoError(t, err)
		assert.Equal(t, StringName("Ali"), list[0].Name)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(NewInMemoryStore("Firat", IDStrategyLength), zap.NewNop())

	require.NoError(t, svc.DeleteUser(ctx, "abc"))
	assert.Equal(t, 1, svc.Count(ctx))

	require.NoError(t, svc.DeleteUser(ctx, "5"))
	assert.Equal(t, 1, svc.Count(ctx))

	require.NoError(t, svc.DeleteUser(ctx, "1"))
	assert.Equal(t, 0, svc.Count(ctx))

	require.NoError(t, svc.DeleteUser(ctx, "1"))
}

func TestUserService_WrapsStoreErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	svc := NewUserService(&failingStore{
		InMemoryStore: NewInMemoryStore("Firat", IDStrategyLength),
		storeErr:      boom,
	}, zap.NewNop())

	_, err := svc.CreateUser(ctx, &CreateUserRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to create user")

	err = svc.DeleteUser(ctx, "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestUserError(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := NewInvalidRequestError("7", cause)

	assert.True(t, IsInvalidRequest(err))
	assert.False(t, IsNotFound(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "user error [invalid_request] for user 7: invalid request body (caused by: unexpected EOF)", err.Error())

	tooLarge := NewRequestTooLargeError("", cause)
	assert.True(t, IsRequestTooLarge(tooLarge))
	assert.False(t, IsInvalidRequest(tooLarge))

	nf := NewUserNotFoundError("3")
	assert.Equal(t, "user error [not_found] for user 3: not found", nf.Error())
	assert.False(t, IsNotFound(errors.New("not found")))
}
