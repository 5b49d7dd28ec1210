package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artcontest/contest-backend/domain"
)

func newTestGuard(t *testing.T) (*quotaGuard, redismock.ClientMock) {
	t.Helper()
	client, mock := redismock.NewClientMock()
	g := NewQuotaGuard(client)
	g.wait = 0
	g.newToken = func() string { return "token-1" }
	return g, mock
}

func TestQuotaGuard_AcquireAndRelease(t *testing.T) {
	g, mock := newTestGuard(t)
	key := "quota:lock:a@x.com:sport"

	mock.ExpectSetNX(key, "token-1", defaultLockTTL).SetVal(true)
	mock.ExpectEvalSha(releaseScript.Hash(), []string{key}, "token-1").SetVal(int64(1))

	release, err := g.Acquire(context.Background(), "A@x.com", "Sport")
	require.NoError(t, err)
	release()

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuotaGuard_Busy(t *testing.T) {
	g, mock := newTestGuard(t)
	key := "quota:lock:a@x.com:sport"

	mock.ExpectSetNX(key, "token-1", defaultLockTTL).SetVal(false)

	release, err := g.Acquire(context.Background(), "a@x.com", "sport")
	assert.Nil(t, release)
	assert.ErrorIs(t, err, domain.ErrLockBusy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuotaGuard_RedisDown(t *testing.T) {
	g, mock := newTestGuard(t)
	g.wait = time.Second
	key := "quota:lock:a@x.com:sport"

	mock.ExpectSetNX(key, "token-1", defaultLockTTL).SetErr(errors.New("connection refused"))

	_, err := g.Acquire(context.Background(), "a@x.com", "sport")
	assert.EqualError(t, err, "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}
