package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/artcontest/contest-backend/domain"
)

const (
	KeyQuotaLock = "quota:lock:%s:%s"

	defaultLockTTL   = 10 * time.Second
	defaultLockWait  = 3 * time.Second
	defaultLockRetry = 50 * time.Millisecond
)

// releaseScript deletes the lock only if it still holds our token.
var releaseScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

type quotaGuard struct {
	client   redis.Cmdable
	ttl      time.Duration
	wait     time.Duration
	retry    time.Duration
	newToken func() string
}

var _ domain.QuotaGuard = (*quotaGuard)(nil)

func NewQuotaGuard(client redis.Cmdable) *quotaGuard {
	return &quotaGuard{
		client:   client,
		ttl:      defaultLockTTL,
		wait:     defaultLockWait,
		retry:    defaultLockRetry,
		newToken: uuid.NewString,
	}
}

func (g *quotaGuard) Acquire(ctx context.Context, email, category string) (func(), error) {
	key := fmt.Sprintf(KeyQuotaLock, strings.ToLower(email), strings.ToLower(category))
	token := g.newToken()
	deadline := time.Now().Add(g.wait)

	for {
		ok, err := g.client.SetNX(ctx, key, token, g.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() { g.release(key, token) }, nil
		}
		if !time.Now().Before(deadline) {
			return nil, domain.ErrLockBusy
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(g.retry):
		}
	}
}

func (g *quotaGuard) release(key, token string) {
	// the request context may already be done once the response is written
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := releaseScript.Run(ctx, g.client, []string{key}, token).Err(); err != nil {
		logrus.Warnf("failed to release quota lock %s: %v", key, err)
	}
}
