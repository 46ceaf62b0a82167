package memory

import (
	"KingdomWar/internal/combat/domain"
	"context"
	"sync"
)

type WarDeclarationRepo struct {
	mu     sync.Mutex
	nextID int64
	wars   map[int64]domain.WarDeclaration
}

func NewWarDeclarationRepo() *WarDeclarationRepo {
	return &WarDeclarationRepo{wars: make(map[int64]domain.WarDeclaration)}
}

// Put 写入宣战记录（宣战由外交模块负责，这里只用于灌数据），ID 为 0 时自动分配。
func (r *WarDeclarationRepo) Put(w domain.WarDeclaration) domain.WarDeclaration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w.ID == 0 {
		r.nextID++
		w.ID = r.nextID
	} else if w.ID > r.nextID {
		r.nextID = w.ID
	}
	r.wars[w.ID] = w
	return w
}

func (r *WarDeclarationRepo) Get(id int64) (domain.WarDeclaration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wars[id]
	return w, ok
}

func (r *WarDeclarationRepo) FindActive(ctx context.Context, attackerID, defenderID string) (*domain.WarDeclaration, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.wars {
		if w.AttackerID == attackerID && w.DefenderID == defenderID && w.Status == domain.WarActive {
			out := w
			return &out, nil
		}
	}
	return nil, domain.ErrWarDeclarationNotFound.WithData("attacker_id", attackerID).WithData("defender_id", defenderID)
}

func (r *WarDeclarationRepo) IncrementAttackCount(ctx context.Context, id int64) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wars[id]
	if !ok || w.Status != domain.WarActive {
		return domain.ErrWarDeclarationNotFound.WithData("war_id", id)
	}
	w.AttackCount++
	r.wars[id] = w
	return nil
}
