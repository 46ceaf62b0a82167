package engine

import (
	"math/rand"
	"testing"

	"KingdomWar/internal/combat/domain"

	"github.com/stretchr/testify/require"
)

func TestCasualties_不超过原兵力且非负(t *testing.T) {
	units := map[string]int64{"cavalry": 5000, "scouts": 3, "broken": -4}
	got := Casualties(units, 0.25)
	require.Equal(t, int64(1250), got["cavalry"])
	require.Equal(t, int64(0), got["scouts"])
	require.Equal(t, int64(0), got["broken"])

	full := Casualties(map[string]int64{"x": 7}, 1.5)
	require.Equal(t, int64(7), full["x"])
}

func TestLandGained_失败为零(t *testing.T) {
	require.Equal(t, int64(0), LandGained(domain.TierFailed, 5000, FixedSource(0.9)))
}

func TestLandGained_随机区间(t *testing.T) {
	require.Equal(t, int64(352), LandGained(domain.TierWithEase, 5000, FixedSource(0)))
	require.Equal(t, int64(367), LandGained(domain.TierWithEase, 5000, FixedSource(0.5)))
	require.Equal(t, int64(382), LandGained(domain.TierWithEase, 5000, FixedSource(0.999999)))
	require.Equal(t, int64(340), LandGained(domain.TierGoodFight, 5000, nil))

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		got := LandGained(domain.TierWithEase, 5000, rng)
		require.GreaterOrEqual(t, got, int64(352))
		require.LessOrEqual(t, got, int64(382))
	}
}

func TestGoldLooted(t *testing.T) {
	require.Equal(t, int64(367000), GoldLooted(367))
	require.Equal(t, int64(0), GoldLooted(0))
}

func TestLockedSource(t *testing.T) {
	src := NewLockedSource(FixedSource(0.25))
	require.Equal(t, 0.25, src.Float64())
}
