package engine

import (
	"testing"

	"KingdomWar/internal/combat/domain"

	"github.com/stretchr/testify/require"
)

func TestClassOf(t *testing.T) {
	require.Equal(t, ClassCavalry, ClassOf("heavy_cavalry"))
	require.Equal(t, ClassSiege, ClassOf("siege_engines"))
	require.Equal(t, ClassInfantry, ClassOf("soldiers"))
	require.Equal(t, ClassInfantry, ClassOf("Knights"))
	require.Equal(t, ClassInfantry, ClassOf("militia"))
	require.Equal(t, ClassNone, ClassOf("archers"))
}

func TestPower_未知兵种使用默认属性(t *testing.T) {
	r := newTestResolver()
	require.Equal(t, 20.0, r.Power(map[string]int64{"golems": 10}, StatAttack, PowerAdjust{}))
	require.Equal(t, 20.0, r.Power(map[string]int64{"infantry": 10}, StatDefense, PowerAdjust{}))
	require.Equal(t, 0.0, r.Power(nil, StatAttack, PowerAdjust{}))
}

func TestPower_按兵种类别叠加增量(t *testing.T) {
	r := newTestResolver()
	units := map[string]int64{"cavalry": 100, "archers": 100}
	got := r.Power(units, StatAttack, PowerAdjust{Global: -0.10, Cavalry: -0.30})
	// cavalry: 100*5*0.6=300, archers: 100*4*0.9=360
	require.InDelta(t, 660.0, got, 1e-9)
}

func TestApplyAttackerModifiers_按顺序逐步取整(t *testing.T) {
	r := newTestResolver()
	m := r.Resolve(ModifierInput{
		Formation:    FormationAggressive,
		Terrain:      TerrainForest,
		AttackerRace: "orc",
		AttackerEra:  domain.EraLate,
	})
	m.BuffBonus = 1.2

	got := r.ApplyAttackerModifiers(map[string]int64{"cavalry": 1000}, m)
	// 1000 → 1150 → 1265 → 1454 → 1744 → 地形骑兵 -20% → 1395
	require.Equal(t, int64(1395), got["cavalry"])
}

func TestApplyAttackerModifiers_地形反投影到所有兵种(t *testing.T) {
	r := newTestResolver()
	m := r.Resolve(ModifierInput{Terrain: TerrainMountains})
	got := r.ApplyAttackerModifiers(map[string]int64{"cavalry": 100, "archers": 100}, m)
	// ratio = 660/900
	require.Equal(t, int64(73), got["cavalry"])
	require.Equal(t, int64(73), got["archers"])
}

func TestApplyAttackerModifiers_不修改入参(t *testing.T) {
	r := newTestResolver()
	in := map[string]int64{"cavalry": 10}
	m := r.Resolve(ModifierInput{Formation: FormationAggressive})
	_ = r.ApplyAttackerModifiers(in, m)
	require.Equal(t, int64(10), in["cavalry"])
}

func TestApplyDefenderModifiers(t *testing.T) {
	r := newTestResolver()
	m := r.Resolve(ModifierInput{Terrain: TerrainHills, DefenderRace: "dwarf"})
	got := r.ApplyDefenderModifiers(map[string]int64{"spearmen": 100}, m)
	// 100 → 115 → 132.25 → 132
	require.Equal(t, int64(132), got["spearmen"])
}
