package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newMemoryService(t *testing.T) *Service {
	t.Helper()
	return NewServiceWithClients(nil, nil, time.Hour)
}

func newRedisService(t *testing.T) (*Service, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewServiceWithClients(rdb, nil, time.Hour), mr
}

func TestRegisterAndLoginMemory(t *testing.T) {
	svc := newMemoryService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register("alice", "secret"))

	token, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	username, valid := svc.Validate(ctx, token)
	require.True(t, valid)
	require.Equal(t, "alice", username)
}

func TestRegisterDuplicate(t *testing.T) {
	svc := newMemoryService(t)

	require.NoError(t, svc.Register("alice", "secret"))
	require.ErrorIs(t, svc.Register("alice", "other"), ErrUserExists)
}

func TestRegisterMissingCredentials(t *testing.T) {
	svc := newMemoryService(t)

	require.ErrorIs(t, svc.Register("", "secret"), ErrMissingCredentials)
	require.ErrorIs(t, svc.Register("alice", ""), ErrMissingCredentials)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newMemoryService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register("alice", "secret"))

	_, err := svc.Login(ctx, "alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "secret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc := newMemoryService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register("alice", "secret"))
	token, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)

	svc.Logout(ctx, token)

	_, valid := svc.Validate(ctx, token)
	require.False(t, valid)
}

func TestRedisSessions(t *testing.T) {
	svc, mr := newRedisService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register("bob", "hunter2"))

	token, err := svc.Login(ctx, "bob", "hunter2")
	require.NoError(t, err)
	require.True(t, mr.Exists(sessionKeyPrefix+token))

	username, valid := svc.Validate(ctx, token)
	require.True(t, valid)
	require.Equal(t, "bob", username)

	svc.Logout(ctx, token)
	require.False(t, mr.Exists(sessionKeyPrefix+token))
}

func TestRedisSessionExpiry(t *testing.T) {
	svc, mr := newRedisService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register("bob", "hunter2"))
	token, err := svc.Login(ctx, "bob", "hunter2")
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, valid := svc.Validate(ctx, token)
	require.False(t, valid)
}

func TestSweepSessions(t *testing.T) {
	svc := NewServiceWithClients(nil, nil, time.Minute)
	ctx := context.Background()

	require.NoError(t, svc.Register("alice", "secret"))
	token, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)

	svc.mu.Lock()
	svc.sessions[token].lastSeen = time.Now().Add(-2 * time.Minute)
	svc.mu.Unlock()

	svc.sweepSessions()

	_, valid := svc.Validate(ctx, token)
	require.False(t, valid)
}
