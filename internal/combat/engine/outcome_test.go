package engine

import (
	"testing"

	"KingdomWar/internal/combat/domain"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		atk, def float64
		tier     domain.ResultTier
		atkRate  float64
		defRate  float64
	}{
		{name: "恰好 2.0", atk: 200, def: 100, tier: domain.TierWithEase, atkRate: 0.05, defRate: 0.20},
		{name: "恰好 1.2", atk: 120, def: 100, tier: domain.TierGoodFight, atkRate: 0.15, defRate: 0.15},
		{name: "略低于 1.2", atk: 119, def: 100, tier: domain.TierFailed, atkRate: 0.25, defRate: 0.05},
		{name: "守方战力为 0", atk: 1, def: 0, tier: domain.TierFailed, atkRate: 0.25, defRate: 0.05},
		{name: "守方战力为 0 且攻方很强", atk: 50, def: 0, tier: domain.TierWithEase, atkRate: 0.05, defRate: 0.20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Classify(tt.atk, tt.def)
			require.Equal(t, tt.tier, o.Tier)
			require.Equal(t, tt.atkRate, o.AttackerRate)
			require.Equal(t, tt.defRate, o.DefenderRate)
			require.Equal(t, tt.tier != domain.TierFailed, o.Success())
		})
	}
}
