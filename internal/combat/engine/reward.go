package engine

import (
	"KingdomWar/internal/combat/domain"
	"math"
	"sync"
)

// GoldPerAcre 每英亩土地折算的金币，其他子系统引用同一常量。
const GoldPerAcre int64 = 1000

const (
	withEaseLandRate  = 0.0735
	goodFightLandRate = 0.068
	landRateLow       = 0.0679
)

// landVariance = (0.0735-0.0679) / avg(0.0735, 0.0679)
var landVariance = (withEaseLandRate - landRateLow) / ((withEaseLandRate + landRateLow) / 2)

// RandomSource 只需要 [0,1) 浮点数；*math/rand.Rand 与 *math/rand/v2.Rand 都满足。
type RandomSource interface {
	Float64() float64
}

type lockedSource struct {
	mu  sync.Mutex
	src RandomSource
}

// NewLockedSource 给非并发安全的随机源加锁，供多个请求共享。
func NewLockedSource(src RandomSource) RandomSource {
	return &lockedSource{src: src}
}

func (l *lockedSource) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}

// FixedSource 始终返回同一个值，测试里用来断言精确结果。
type FixedSource float64

func (f FixedSource) Float64() float64 { return float64(f) }

// Casualties 按真实持有兵力结算伤亡，结果不会超过原兵力。
func Casualties(units map[string]int64, rate float64) map[string]int64 {
	out := make(map[string]int64, len(units))
	for k, v := range units {
		if v <= 0 {
			out[k] = 0
			continue
		}
		out[k] = min(floorCount(float64(v)*rate), v)
	}
	return out
}

// LandGained 失败为 0；否则按档位基准比例并叠加随机浮动。rng 为 nil 时取区间中点。
func LandGained(tier domain.ResultTier, defenderLand int64, rng RandomSource) int64 {
	var base float64
	switch tier {
	case domain.TierWithEase:
		base = withEaseLandRate
	case domain.TierGoodFight:
		base = goodFightLandRate
	default:
		return 0
	}
	if defenderLand <= 0 {
		return 0
	}
	r := 0.5
	if rng != nil {
		r = rng.Float64()
	}
	return int64(math.Floor(float64(defenderLand) * base * (1 + (r-0.5)*landVariance)))
}

func GoldLooted(landGained int64) int64 {
	return landGained * GoldPerAcre
}
