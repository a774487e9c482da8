package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartspend/internal/core"
	"smartspend/internal/storage"
)

// memUserStore keeps users in a map, mirroring the repository's sentinel
// behavior.
type memUserStore struct {
	users map[string]core.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]core.User)}
}

func (m *memUserStore) CreateUser(ctx context.Context, u core.User) error {
	if _, ok := m.users[u.Username]; ok {
		return storage.ErrUsernameTaken
	}
	m.users[u.Username] = u
	return nil
}

func (m *memUserStore) GetUser(ctx context.Context, username string) (*core.User, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return &u, nil
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemUserStore())

	require.NoError(t, svc.Register(ctx, "alice", "secret123"))

	user, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "secret123", user.PasswordHash)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemUserStore())

	require.NoError(t, svc.Register(ctx, "alice", "first"))

	err := svc.Register(ctx, "alice", "second")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	// The first password still works.
	_, err = svc.Login(ctx, "alice", "first")
	assert.NoError(t, err)
}

func TestRegisterEmptyCredentials(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemUserStore())

	assert.ErrorIs(t, svc.Register(ctx, "", "password"), ErrEmptyCredentials)
	assert.ErrorIs(t, svc.Register(ctx, "alice", ""), ErrEmptyCredentials)
	assert.ErrorIs(t, svc.Register(ctx, "   ", "password"), ErrEmptyCredentials)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemUserStore())
	require.NoError(t, svc.Register(ctx, "alice", "secret123"))

	_, err := svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemUserStore())

	// Unknown username and wrong password are indistinguishable to the
	// caller.
	_, err := svc.Login(ctx, "nobody", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginEmptyCredentials(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemUserStore())

	_, err := svc.Login(ctx, "", "password")
	assert.ErrorIs(t, err, ErrEmptyCredentials)

	_, err = svc.Login(ctx, "alice", "")
	assert.ErrorIs(t, err, ErrEmptyCredentials)
}

func TestRegisterTrimsUsername(t *testing.T) {
	ctx := context.Background()
	store := newMemUserStore()
	svc := NewService(store)

	require.NoError(t, svc.Register(ctx, "  alice  ", "secret123"))

	_, ok := store.users["alice"]
	assert.True(t, ok, "username should be stored trimmed")

	_, err := svc.Login(ctx, "alice", "secret123")
	assert.NoError(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	assert.True(t, CheckPassword("hunter2", hash))
	assert.False(t, CheckPassword("hunter3", hash))
	assert.False(t, CheckPassword("hunter2", "not-a-hash"))
}
