package memory

import (
	"KingdomWar/internal/combat/domain"
	"context"
	"sync"
	"time"
)

type RestorationRepo struct {
	mu     sync.Mutex
	nextID int64
	items  []domain.RestorationStatus
}

func NewRestorationRepo() *RestorationRepo {
	return &RestorationRepo{}
}

func (r *RestorationRepo) Create(ctx context.Context, rs domain.RestorationStatus) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if rs.ID == 0 {
		r.nextID++
		rs.ID = r.nextID
	}
	r.items = append(r.items, rs)
	return nil
}

func (r *RestorationRepo) FindActive(ctx context.Context, kingdomID string, now time.Time) (*domain.RestorationStatus, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	var found *domain.RestorationStatus
	for i := range r.items {
		rs := r.items[i]
		if rs.KingdomID != kingdomID || !rs.ActiveAt(now) {
			continue
		}
		if found == nil || rs.EndTime.After(found.EndTime) {
			found = &rs
		}
	}
	if found == nil {
		return nil, domain.ErrRestorationNotFound.WithData("kingdom_id", kingdomID)
	}
	return found, nil
}

// ListByKingdom 返回某王国的全部恢复期记录（测试断言用）。
func (r *RestorationRepo) ListByKingdom(kingdomID string) []domain.RestorationStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.RestorationStatus
	for _, rs := range r.items {
		if rs.KingdomID == kingdomID {
			out = append(out, rs)
		}
	}
	return out
}
