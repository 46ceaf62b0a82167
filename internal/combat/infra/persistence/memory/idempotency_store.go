package memory

import (
	"KingdomWar/internal/combat/app/model"
	"context"
	"sync"
	"time"
)

type idemEntry struct {
	outcome  *model.CombatOutcome
	expireAt time.Time
}

// IdempotencyStore 单进程幂等存储，多实例部署请使用 redis 版本。
type IdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]idemEntry
	now     func() time.Time
}

func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{entries: make(map[string]idemEntry), now: time.Now}
}

func (s *IdempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok && s.now().Before(e.expireAt) {
		return false, nil
	}
	s.entries[key] = idemEntry{expireAt: s.now().Add(ttl)}
	return true, nil
}

func (s *IdempotencyStore) Load(ctx context.Context, key string) (*model.CombatOutcome, bool, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || !s.now().Before(e.expireAt) || e.outcome == nil {
		return nil, false, nil
	}
	out := *e.outcome
	return &out, true, nil
}

func (s *IdempotencyStore) Store(ctx context.Context, key string, outcome *model.CombatOutcome, ttl time.Duration) error {
	_ = ctx
	if outcome == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *outcome
	s.entries[key] = idemEntry{outcome: &cp, expireAt: s.now().Add(ttl)}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
