package engine

import (
	"KingdomWar/internal/shared/gameconfig/combat"
	"math"
	"strings"
)

type StatKind int

const (
	StatAttack StatKind = iota
	StatDefense
)

type UnitClass int

const (
	ClassNone UnitClass = iota
	ClassCavalry
	ClassInfantry
	ClassSiege
)

// ClassOf 按兵种名关键字归类，顺序即优先级。
func ClassOf(unitType string) UnitClass {
	name := strings.ToLower(unitType)
	switch {
	case strings.Contains(name, "cavalry"):
		return ClassCavalry
	case strings.Contains(name, "siege"):
		return ClassSiege
	case strings.Contains(name, "infantry"),
		strings.Contains(name, "soldier"),
		strings.Contains(name, "militia"),
		strings.Contains(name, "knight"):
		return ClassInfantry
	default:
		return ClassNone
	}
}

// PowerAdjust 战力计算时叠加的增量：Global 对所有兵种生效，其余按兵种类别生效。
type PowerAdjust struct {
	Global   float64
	Cavalry  float64
	Infantry float64
	Siege    float64
}

func (a PowerAdjust) forClass(c UnitClass) float64 {
	switch c {
	case ClassCavalry:
		return a.Cavalry
	case ClassInfantry:
		return a.Infantry
	case ClassSiege:
		return a.Siege
	default:
		return 0
	}
}

// Stat 查兵种基础属性，不认识的兵种使用默认属性。
func (r *Resolver) Stat(unitType string) combat.UnitStat {
	if s, ok := r.rules.Units[strings.ToLower(unitType)]; ok {
		return s
	}
	return r.rules.DefaultUnit
}

// Power = Σ count × stat × (1 + global + classDelta)
func (r *Resolver) Power(units map[string]int64, kind StatKind, adj PowerAdjust) float64 {
	var total float64
	for unitType, count := range units {
		if count <= 0 {
			continue
		}
		s := r.Stat(unitType)
		base := s.Attack
		if kind == StatDefense {
			base = s.Defense
		}
		total += float64(count) * base * (1 + adj.Global + adj.forClass(ClassOf(unitType)))
	}
	return total
}

// ApplyAttackerModifiers 依次应用 阵型 → 时代 → 种族 → 增益 → 地形，每一步后向下取整。
// 地形以战力比例反投影到兵力上，保证后续仍能按兵种逐个结算。
func (r *Resolver) ApplyAttackerModifiers(units map[string]int64, m Modifiers) map[string]int64 {
	out := scaleUnits(units, 1+m.FormationOffense)
	out = scaleUnits(out, m.AgeBonus)
	out = scaleUnits(out, m.RaceOffenseBonus)
	out = scaleUnits(out, m.BuffBonus)

	raw := r.Power(out, StatAttack, PowerAdjust{})
	adjusted := r.Power(out, StatAttack, PowerAdjust{
		Global:   m.TerrainOffense,
		Cavalry:  m.TerrainCavalry,
		Infantry: m.TerrainInfantry,
		Siege:    m.TerrainSiege,
	})
	ratio := 1.0
	if raw > 0 {
		ratio = adjusted / raw
	}
	return scaleUnits(out, ratio)
}

// ApplyDefenderModifiers 种族防御 → 地形防御，每一步后向下取整。
func (r *Resolver) ApplyDefenderModifiers(units map[string]int64, m Modifiers) map[string]int64 {
	out := scaleUnits(units, m.RaceDefenseBonus)
	return scaleUnits(out, 1+m.TerrainDefense)
}

func scaleUnits(units map[string]int64, factor float64) map[string]int64 {
	out := make(map[string]int64, len(units))
	for k, v := range units {
		out[k] = floorCount(float64(v) * factor)
	}
	return out
}

// floorCount 向下取整到整兵，吸收 1000×1.15 这类浮点误差，且不低于 0。
func floorCount(x float64) int64 {
	n := int64(math.Floor(x + 1e-9))
	if n < 0 {
		return 0
	}
	return n
}
