package domain

import (
	"strings"
	"time"
)

// MinLand 战斗结算后王国土地的下限。
const MinLand int64 = 1000

type Era string

const (
	EraEarly  Era = "early"
	EraMiddle Era = "middle"
	EraLate   Era = "late"
)

// EffectCombatFocus 战斗专注：未过期时攻方获得额外加成。
const EffectCombatFocus = "combat_focus"

type Resources struct {
	Gold         int64 `json:"gold"`
	Population   int64 `json:"population"`
	Mana         int64 `json:"mana"`
	Land         int64 `json:"land"`
	TurnsBalance int64 `json:"turnsBalance"`
}

// Effect 临时效果。ExpiresAt 为零值表示数据损坏，视为无效。
type Effect struct {
	Type      string    `json:"type"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (e Effect) ActiveAt(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && e.ExpiresAt.After(now)
}

type Kingdom struct {
	ID            string
	OwnerID       int
	Name          string
	Race          string
	Era           Era
	Units         map[string]int64
	Resources     Resources
	ActiveEffects []Effect
}

// UnitCount 返回某兵种的持有数量；第二个返回值表示王国是否拥有该兵种条目。
func (k *Kingdom) UnitCount(unitType string) (int64, bool) {
	if k == nil || k.Units == nil {
		return 0, false
	}
	n, ok := k.Units[unitType]
	return n, ok
}

// HasEffect 判断某类型效果在 now 时刻是否生效。
func (k *Kingdom) HasEffect(effectType string, now time.Time) bool {
	if k == nil {
		return false
	}
	for _, e := range k.ActiveEffects {
		if strings.EqualFold(e.Type, effectType) && e.ActiveAt(now) {
			return true
		}
	}
	return false
}

// ResourceDelta 资源增量（负数为扣减）。存储层负责下限：
// 土地不低于 min(当前值, MinLand)，其余字段不低于 0。
type ResourceDelta struct {
	Gold       int64
	Population int64
	Mana       int64
	Land       int64
}

func (d ResourceDelta) IsZero() bool {
	return d == ResourceDelta{}
}

// Apply 在内存中按存储层同样的下限规则应用增量（内存仓储与测试共用）。
func (r Resources) Apply(d ResourceDelta) Resources {
	r.Gold = max(r.Gold+d.Gold, 0)
	r.Population = max(r.Population+d.Population, 0)
	r.Mana = max(r.Mana+d.Mana, 0)
	r.Land = max(r.Land+d.Land, min(r.Land, MinLand))
	return r
}
