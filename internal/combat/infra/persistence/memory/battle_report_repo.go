package memory

import (
	"KingdomWar/internal/combat/domain"
	"context"
	"sort"
	"sync"
	"time"
)

type BattleReportRepo struct {
	mu      sync.Mutex
	reports []domain.BattleReport
}

func NewBattleReportRepo() *BattleReportRepo {
	return &BattleReportRepo{}
}

func (r *BattleReportRepo) Create(ctx context.Context, rep domain.BattleReport) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, rep)
	return nil
}

func (r *BattleReportRepo) ListByPair(ctx context.Context, attackerID, defenderID string, limit int) ([]domain.BattleReport, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.BattleReport
	for _, rep := range r.reports {
		if rep.AttackerID == attackerID && rep.DefenderID == defenderID {
			out = append(out, rep)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *BattleReportRepo) CountByPair(ctx context.Context, attackerID, defenderID string, since time.Time) (int64, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, rep := range r.reports {
		if rep.AttackerID != attackerID || rep.DefenderID != defenderID {
			continue
		}
		if !since.IsZero() && rep.CreatedAt.Before(since) {
			continue
		}
		n++
	}
	return n, nil
}

// Len 当前战报总数（测试断言用）。
func (r *BattleReportRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reports)
}
