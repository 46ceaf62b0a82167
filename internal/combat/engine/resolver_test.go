package engine

import (
	"testing"
	"time"

	"KingdomWar/internal/combat/domain"
	"KingdomWar/internal/shared/gameconfig/combat"

	"github.com/stretchr/testify/require"
)

func newTestResolver() *Resolver {
	return NewResolver(combat.Default())
}

func TestResolve_未知key全部退化为无修正(t *testing.T) {
	r := newTestResolver()
	m := r.Resolve(ModifierInput{
		Formation:    Formation("skirmish"),
		Terrain:      Terrain("tundra"),
		AttackerRace: "giant",
		DefenderRace: "",
		AttackerEra:  domain.Era("stone"),
	})
	require.Equal(t, NeutralModifiers(), m)
}

func TestResolve_查表(t *testing.T) {
	r := newTestResolver()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := r.Resolve(ModifierInput{
		Formation:    FormationAggressive,
		Terrain:      TerrainMountains,
		AttackerRace: "Orc",
		DefenderRace: "dwarf",
		AttackerEra:  domain.EraLate,
		AttackerEffects: []domain.Effect{
			{Type: domain.EffectCombatFocus, ExpiresAt: now.Add(time.Hour)},
		},
		Now: now,
	})
	require.InDelta(t, 0.15, m.FormationOffense, 1e-9)
	require.InDelta(t, 0.25, m.TerrainDefense, 1e-9)
	require.InDelta(t, -0.10, m.TerrainOffense, 1e-9)
	require.InDelta(t, -0.30, m.TerrainCavalry, 1e-9)
	require.InDelta(t, -0.20, m.TerrainSiege, 1e-9)
	require.InDelta(t, 1.10, m.AgeBonus, 1e-9)
	require.InDelta(t, 1.15, m.RaceOffenseBonus, 1e-9)
	require.InDelta(t, 1.15, m.RaceDefenseBonus, 1e-9)
	require.InDelta(t, 1.20, m.BuffBonus, 1e-9)
}

func TestResolve_CombatFocus过期或时间缺失不生效(t *testing.T) {
	r := newTestResolver()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("已过期", func(t *testing.T) {
		m := r.Resolve(ModifierInput{
			AttackerEffects: []domain.Effect{{Type: domain.EffectCombatFocus, ExpiresAt: now.Add(-time.Second)}},
			Now:             now,
		})
		require.Equal(t, 1.0, m.BuffBonus)
	})

	t.Run("过期时间缺失", func(t *testing.T) {
		m := r.Resolve(ModifierInput{
			AttackerEffects: []domain.Effect{{Type: domain.EffectCombatFocus}},
			Now:             now,
		})
		require.Equal(t, 1.0, m.BuffBonus)
	})

	t.Run("其他效果", func(t *testing.T) {
		m := r.Resolve(ModifierInput{
			AttackerEffects: []domain.Effect{{Type: "haste", ExpiresAt: now.Add(time.Hour)}},
			Now:             now,
		})
		require.Equal(t, 1.0, m.BuffBonus)
	})
}

func TestResolve_时代表早期无加成(t *testing.T) {
	r := newTestResolver()
	require.Equal(t, 1.0, r.Resolve(ModifierInput{AttackerEra: domain.EraEarly}).AgeBonus)
	require.InDelta(t, 1.05, r.Resolve(ModifierInput{AttackerEra: domain.EraMiddle}).AgeBonus, 1e-9)
}

func TestResolve_可注入自定义规则表(t *testing.T) {
	rules := combat.Default().Merge(combat.Rules{
		Formations: map[string]float64{"skirmish": 0.05},
	})
	r := NewResolver(rules)
	require.InDelta(t, 0.05, r.Resolve(ModifierInput{Formation: ParseFormation("Skirmish")}).FormationOffense, 1e-9)
	// 默认规则表不受影响
	require.Equal(t, 0.0, newTestResolver().Resolve(ModifierInput{Formation: "skirmish"}).FormationOffense)
}
