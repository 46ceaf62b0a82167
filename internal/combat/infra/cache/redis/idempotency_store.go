package redis

import (
	"KingdomWar/internal/combat/app/model"
	"KingdomWar/internal/combat/domain"
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	keyPrefix    = "kingdomwar:idem:"
	pendingValue = "pending"
)

// IdempotencyStore 基于 SET NX 的幂等键，多实例共享。
// 值为 "pending" 表示请求处理中，完成后替换为结果 JSON。
type IdempotencyStore struct {
	rdb *goredis.Client
}

func NewIdempotencyStore(rdb *goredis.Client) *IdempotencyStore {
	return &IdempotencyStore{rdb: rdb}
}

func (s *IdempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, keyPrefix+key, pendingValue, ttl).Result()
	if err != nil {
		return false, domain.ErrSystemUnavailable.WithCause(err)
	}
	return ok, nil
}

func (s *IdempotencyStore) Load(ctx context.Context, key string) (*model.CombatOutcome, bool, error) {
	raw, err := s.rdb.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, domain.ErrSystemUnavailable.WithCause(err)
	}
	if raw == pendingValue {
		return nil, false, nil
	}
	var out model.CombatOutcome
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, false, domain.ErrSystemUnavailable.WithCause(err).WithData("idempotency_key", key)
	}
	return &out, true, nil
}

func (s *IdempotencyStore) Store(ctx context.Context, key string, outcome *model.CombatOutcome, ttl time.Duration) error {
	if outcome == nil {
		return nil
	}
	raw, err := json.Marshal(outcome)
	if err != nil {
		return domain.ErrSystemUnavailable.WithCause(err)
	}
	if err := s.rdb.Set(ctx, keyPrefix+key, raw, ttl).Err(); err != nil {
		return domain.ErrSystemUnavailable.WithCause(err)
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, keyPrefix+key).Err(); err != nil {
		return domain.ErrSystemUnavailable.WithCause(err)
	}
	return nil
}
