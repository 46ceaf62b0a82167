package memory

import (
	"KingdomWar/internal/combat/domain"
	"context"
	"maps"
	"sync"
)

// KingdomRepo 进程内王国存储：所有增量在同一把锁内完成，语义与 SQL 版的 GREATEST 更新一致。
type KingdomRepo struct {
	mu       sync.Mutex
	kingdoms map[string]*domain.Kingdom
}

func NewKingdomRepo() *KingdomRepo {
	return &KingdomRepo{kingdoms: make(map[string]*domain.Kingdom)}
}

// Put 写入/覆盖整条王国记录（开发环境灌数据与测试使用）。
func (r *KingdomRepo) Put(k domain.Kingdom) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kingdoms[k.ID] = cloneKingdom(&k)
}

func (r *KingdomRepo) Get(ctx context.Context, id string) (*domain.Kingdom, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	k, ok := r.kingdoms[id]
	if !ok {
		return nil, domain.ErrKingdomNotFound.WithData("kingdom_id", id)
	}
	return cloneKingdom(k), nil
}

func (r *KingdomRepo) ApplyCasualties(ctx context.Context, id string, losses map[string]int64) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	k, ok := r.kingdoms[id]
	if !ok {
		return domain.ErrKingdomNotFound.WithData("kingdom_id", id)
	}
	for unitType, n := range losses {
		cur, exists := k.Units[unitType]
		if !exists {
			continue
		}
		k.Units[unitType] = max(cur-n, 0)
	}
	return nil
}

func (r *KingdomRepo) AdjustResources(ctx context.Context, id string, delta domain.ResourceDelta) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	k, ok := r.kingdoms[id]
	if !ok {
		return domain.ErrKingdomNotFound.WithData("kingdom_id", id)
	}
	k.Resources = k.Resources.Apply(delta)
	return nil
}

func (r *KingdomRepo) DeductTurns(ctx context.Context, id string, n int64) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	k, ok := r.kingdoms[id]
	if !ok {
		return domain.ErrKingdomNotFound.WithData("kingdom_id", id)
	}
	k.Resources.TurnsBalance = max(k.Resources.TurnsBalance-n, 0)
	return nil
}

func cloneKingdom(k *domain.Kingdom) *domain.Kingdom {
	out := *k
	out.Units = maps.Clone(k.Units)
	if out.Units == nil {
		out.Units = make(map[string]int64)
	}
	out.ActiveEffects = append([]domain.Effect(nil), k.ActiveEffects...)
	return &out
}
