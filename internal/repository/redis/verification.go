package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/artcontest/contest-backend/domain"
)

const (
	KeyVerifiedEmail = "otp:verified:%s"

	DefaultVerifiedTTL = 24 * time.Hour
)

type verifiedEmailStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

var _ domain.VerifiedEmailStore = (*verifiedEmailStore)(nil)

func NewVerifiedEmailStore(client redis.Cmdable, ttl time.Duration) *verifiedEmailStore {
	if ttl <= 0 {
		ttl = DefaultVerifiedTTL
	}
	return &verifiedEmailStore{client: client, ttl: ttl}
}

func (s *verifiedEmailStore) MarkVerified(ctx context.Context, email string) error {
	key := fmt.Sprintf(KeyVerifiedEmail, strings.ToLower(strings.TrimSpace(email)))
	return s.client.Set(ctx, key, time.Now().UTC().Format(time.RFC3339), s.ttl).Err()
}

func (s *verifiedEmailStore) IsVerified(ctx context.Context, email string) (bool, error) {
	key := fmt.Sprintf(KeyVerifiedEmail, strings.ToLower(strings.TrimSpace(email)))
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
