package memory

import (
	"KingdomWar/internal/combat/domain"
	"context"
	"sort"
	"sync"
)

type TerritoryRepo struct {
	mu          sync.Mutex
	territories map[int64]domain.Territory
}

func NewTerritoryRepo() *TerritoryRepo {
	return &TerritoryRepo{territories: make(map[int64]domain.Territory)}
}

func (r *TerritoryRepo) Put(t domain.Territory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.territories[t.ID] = t
}

func (r *TerritoryRepo) Get(id int64) (domain.Territory, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.territories[id]
	return t, ok
}

// ListByOwner 按 ID 升序返回，保证“第一块领地”是确定的。
func (r *TerritoryRepo) ListByOwner(ctx context.Context, kingdomID string) ([]domain.Territory, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Territory
	for _, t := range r.territories {
		if t.OwnerKingdomID == kingdomID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TerritoryRepo) UpdateOwner(ctx context.Context, territoryID int64, newOwnerID string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.territories[territoryID]
	if !ok {
		return domain.ErrTerritoryNotFound.WithData("territory_id", territoryID)
	}
	t.OwnerKingdomID = newOwnerID
	r.territories[territoryID] = t
	return nil
}
