package engine

import "KingdomWar/internal/combat/domain"

const (
	withEaseRatio  = 2.0
	goodFightRatio = 1.2
)

type Outcome struct {
	Tier         domain.ResultTier
	PowerRatio   float64
	AttackerRate float64
	DefenderRate float64
}

func (o Outcome) Success() bool {
	return o.Tier.Success()
}

// Classify 按战力比分档，首个命中的档位生效。守方战力为 0 时比值取攻方战力本身。
func Classify(attackerPower, defenderPower float64) Outcome {
	ratio := attackerPower
	if defenderPower > 0 {
		ratio = attackerPower / defenderPower
	}
	switch {
	case ratio >= withEaseRatio:
		return Outcome{Tier: domain.TierWithEase, PowerRatio: ratio, AttackerRate: 0.05, DefenderRate: 0.20}
	case ratio >= goodFightRatio:
		return Outcome{Tier: domain.TierGoodFight, PowerRatio: ratio, AttackerRate: 0.15, DefenderRate: 0.15}
	default:
		return Outcome{Tier: domain.TierFailed, PowerRatio: ratio, AttackerRate: 0.25, DefenderRate: 0.05}
	}
}
