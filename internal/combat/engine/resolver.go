package engine

import (
	"KingdomWar/internal/combat/domain"
	"KingdomWar/internal/shared/gameconfig/combat"
	"strings"
	"time"
)

// Modifiers 一次战斗的全部修正。Delta 类字段为增量（0 表示无修正），
// Bonus 类字段为倍率（1 表示无修正）。
type Modifiers struct {
	FormationOffense float64
	TerrainDefense   float64
	TerrainOffense   float64
	TerrainCavalry   float64
	TerrainInfantry  float64
	TerrainSiege     float64
	AgeBonus         float64
	RaceOffenseBonus float64
	RaceDefenseBonus float64
	BuffBonus        float64
}

// NeutralModifiers 所有修正都不生效时的取值。
func NeutralModifiers() Modifiers {
	return Modifiers{
		AgeBonus:         1,
		RaceOffenseBonus: 1,
		RaceDefenseBonus: 1,
		BuffBonus:        1,
	}
}

type ModifierInput struct {
	Formation       Formation
	Terrain         Terrain
	AttackerRace    string
	DefenderRace    string
	AttackerEra     domain.Era
	AttackerEffects []domain.Effect
	Now             time.Time
}

// Resolver 持有只读规则表。构造后不再修改，可被多个请求并发使用。
type Resolver struct {
	rules combat.Rules
}

func NewResolver(rules combat.Rules) *Resolver {
	return &Resolver{rules: rules}
}

func (r *Resolver) Rules() combat.Rules {
	return r.rules
}

// Resolve 查表得到修正集合。不认识的 key 一律按无修正处理，不返回错误。
func (r *Resolver) Resolve(in ModifierInput) Modifiers {
	m := NeutralModifiers()

	if f, ok := r.rules.Formations[string(in.Formation)]; ok {
		m.FormationOffense = f
	}
	if t, ok := r.rules.Terrains[string(in.Terrain)]; ok {
		m.TerrainDefense = t.Defense
		m.TerrainOffense = t.Offense
		m.TerrainCavalry = t.Cavalry
		m.TerrainInfantry = t.Infantry
		m.TerrainSiege = t.Siege
	}
	if b, ok := r.rules.Eras[strings.ToLower(string(in.AttackerEra))]; ok {
		m.AgeBonus = b
	}
	if race, ok := r.rules.Races[strings.ToLower(in.AttackerRace)]; ok {
		m.RaceOffenseBonus = race.Offense
	}
	if race, ok := r.rules.Races[strings.ToLower(in.DefenderRace)]; ok {
		m.RaceDefenseBonus = race.Defense
	}
	for _, e := range in.AttackerEffects {
		// 过期时间缺失/损坏的效果直接跳过
		if strings.EqualFold(e.Type, domain.EffectCombatFocus) && e.ActiveAt(in.Now) {
			m.BuffBonus = r.rules.CombatFocusBonus
			break
		}
	}
	return m
}
