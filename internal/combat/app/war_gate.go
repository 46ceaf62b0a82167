package app

import (
	"KingdomWar/internal/combat/domain"
	"context"
	"errors"
	"time"
)

// WarGate 同一（攻, 守）有序对的历史战报达到阈值后，必须存在生效中的宣战才允许继续进攻。
type WarGate struct {
	reports   BattleReportRepo
	wars      WarDeclarationRepo
	threshold int64
	// window 为 0 时统计全部历史
	window time.Duration
	now    func() time.Time
}

func NewWarGate(reports BattleReportRepo, wars WarDeclarationRepo, threshold int64, window time.Duration) *WarGate {
	return &WarGate{
		reports:   reports,
		wars:      wars,
		threshold: threshold,
		window:    window,
		now:       time.Now,
	}
}

// Check 被拒绝时不产生任何写入；放行且命中宣战时递增宣战的 AttackCount。
func (g *WarGate) Check(ctx context.Context, attackerID, defenderID string) error {
	var since time.Time
	if g.window > 0 {
		since = g.now().Add(-g.window)
	}
	n, err := g.reports.CountByPair(ctx, attackerID, defenderID, since)
	if err != nil {
		return internal(ReasonReportRepoUnavailable, err)
	}
	if n < g.threshold {
		return nil
	}

	war, err := g.wars.FindActive(ctx, attackerID, defenderID)
	if err != nil {
		if errors.Is(err, domain.ErrWarDeclarationNotFound) {
			return reject(ErrWarRequired, ReasonWarRequired).
				WithData("prior_attacks", n).
				WithData("threshold", g.threshold)
		}
		return internal(ReasonWarRepoUnavailable, err)
	}
	if err := g.wars.IncrementAttackCount(ctx, war.ID); err != nil {
		return internal(ReasonWarRepoUnavailable, err).WithData("war_id", war.ID)
	}
	return nil
}
