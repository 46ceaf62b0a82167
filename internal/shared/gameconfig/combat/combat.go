package combat

import (
	"KingdomWar/internal/shared/config"
	"strings"
)

// UnitStat 兵种基础攻防
type UnitStat struct {
	Attack  float64 `json:"attack" mapstructure:"attack"`
	Defense float64 `json:"defense" mapstructure:"defense"`
}

// RaceBonus 种族攻防倍率（1.0 为无加成）
type RaceBonus struct {
	Offense float64 `json:"offense" mapstructure:"offense"`
	Defense float64 `json:"defense" mapstructure:"defense"`
}

// TerrainDelta 地形修正（增量，0 为无修正）
type TerrainDelta struct {
	Defense  float64 `json:"defense" mapstructure:"defense"`
	Offense  float64 `json:"offense" mapstructure:"offense"`
	Cavalry  float64 `json:"cavalry" mapstructure:"cavalry"`
	Infantry float64 `json:"infantry" mapstructure:"infantry"`
	Siege    float64 `json:"siege" mapstructure:"siege"`
}

// Rules 战斗静态规则表。构造后只读，由调用方注入到 engine.Resolver。
type Rules struct {
	Title            string                  `json:"title" mapstructure:"title"`
	Units            map[string]UnitStat     `json:"units" mapstructure:"units"`
	DefaultUnit      UnitStat                `json:"default_unit" mapstructure:"default_unit"`
	Races            map[string]RaceBonus    `json:"races" mapstructure:"races"`
	Formations       map[string]float64      `json:"formations" mapstructure:"formations"`
	Terrains         map[string]TerrainDelta `json:"terrains" mapstructure:"terrains"`
	Eras             map[string]float64      `json:"eras" mapstructure:"eras"`
	CombatFocusBonus float64                 `json:"combat_focus_bonus" mapstructure:"combat_focus_bonus"`
}

// Default 内置规则表。
//
// 时代加成采用 early 1.00 / middle 1.05 / late 1.10 这一套（early 不带成长加成）。
func Default() Rules {
	return Rules{
		Title: "default",
		Units: map[string]UnitStat{
			"peasants":      {Attack: 1, Defense: 1},
			"militia":       {Attack: 2, Defense: 2},
			"soldiers":      {Attack: 3, Defense: 3},
			"infantry":      {Attack: 3, Defense: 2},
			"spearmen":      {Attack: 3, Defense: 4},
			"archers":       {Attack: 4, Defense: 2},
			"cavalry":       {Attack: 5, Defense: 3},
			"heavy_cavalry": {Attack: 7, Defense: 4},
			"knights":       {Attack: 6, Defense: 5},
			"siege_engines": {Attack: 8, Defense: 1},
			"scouts":        {Attack: 1, Defense: 1},
		},
		DefaultUnit: UnitStat{Attack: 2, Defense: 2},
		Races: map[string]RaceBonus{
			"human":  {Offense: 1.05, Defense: 1.05},
			"elf":    {Offense: 1.10, Defense: 0.95},
			"dwarf":  {Offense: 0.95, Defense: 1.15},
			"orc":    {Offense: 1.15, Defense: 0.90},
			"undead": {Offense: 1.10, Defense: 1.00},
			"goblin": {Offense: 1.05, Defense: 0.95},
		},
		Formations: map[string]float64{
			"balanced":   0,
			"aggressive": 0.15,
			"flanking":   0.10,
			"defensive":  -0.10,
		},
		Terrains: map[string]TerrainDelta{
			"plains":    {},
			"forest":    {Defense: 0.10, Cavalry: -0.20, Infantry: 0.05, Siege: -0.10},
			"hills":     {Defense: 0.15, Cavalry: -0.10, Siege: 0.05},
			"mountains": {Defense: 0.25, Offense: -0.10, Cavalry: -0.30, Siege: -0.20},
			"swamp":     {Offense: -0.15, Cavalry: -0.25, Infantry: -0.10, Siege: -0.30},
			"desert":    {Offense: -0.05, Cavalry: 0.10, Infantry: -0.05},
			"river":     {Defense: 0.10, Offense: -0.05, Infantry: -0.05, Siege: -0.10},
		},
		Eras: map[string]float64{
			"early":  1.00,
			"middle": 1.05,
			"late":   1.10,
		},
		CombatFocusBonus: 1.20,
	}
}

// Load 以内置规则为底，用文件里出现的条目覆盖（json/yaml 均可，走 viper）。
// path 为空或文件不存在时返回内置规则。
func Load(path string) Rules {
	rules := Default()
	var override Rules
	if !config.LoadIfExist(path, &override) {
		return rules
	}
	return rules.Merge(override)
}

// Merge 返回 r 被 o 覆盖后的新规则表，不修改 r。
func (r Rules) Merge(o Rules) Rules {
	out := r.clone()
	if o.Title != "" {
		out.Title = o.Title
	}
	for k, v := range o.Units {
		out.Units[strings.ToLower(k)] = v
	}
	if o.DefaultUnit != (UnitStat{}) {
		out.DefaultUnit = o.DefaultUnit
	}
	for k, v := range o.Races {
		out.Races[strings.ToLower(k)] = v
	}
	for k, v := range o.Formations {
		out.Formations[strings.ToLower(k)] = v
	}
	for k, v := range o.Terrains {
		out.Terrains[strings.ToLower(k)] = v
	}
	for k, v := range o.Eras {
		out.Eras[strings.ToLower(k)] = v
	}
	if o.CombatFocusBonus > 0 {
		out.CombatFocusBonus = o.CombatFocusBonus
	}
	return out
}

func (r Rules) clone() Rules {
	out := r
	out.Units = make(map[string]UnitStat, len(r.Units))
	for k, v := range r.Units {
		out.Units[k] = v
	}
	out.Races = make(map[string]RaceBonus, len(r.Races))
	for k, v := range r.Races {
		out.Races[k] = v
	}
	out.Formations = make(map[string]float64, len(r.Formations))
	for k, v := range r.Formations {
		out.Formations[k] = v
	}
	out.Terrains = make(map[string]TerrainDelta, len(r.Terrains))
	for k, v := range r.Terrains {
		out.Terrains[k] = v
	}
	out.Eras = make(map[string]float64, len(r.Eras))
	for k, v := range r.Eras {
		out.Eras[k] = v
	}
	return out
}
