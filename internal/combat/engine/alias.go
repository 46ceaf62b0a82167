package engine

import "strings"

// Formation 规范化后的阵型名。
type Formation string

const (
	FormationBalanced   Formation = "balanced"
	FormationAggressive Formation = "aggressive"
	FormationFlanking   Formation = "flanking"
	FormationDefensive  Formation = "defensive"
)

// Terrain 规范化后的地形名。
type Terrain string

const (
	TerrainPlains    Terrain = "plains"
	TerrainForest    Terrain = "forest"
	TerrainHills     Terrain = "hills"
	TerrainMountains Terrain = "mountains"
	TerrainSwamp     Terrain = "swamp"
	TerrainDesert    Terrain = "desert"
	TerrainRiver     Terrain = "river"
)

// 历史数据里的各种写法，统一在入口处折叠成规范名，引擎内部只认规范名。
var formationAliases = map[string]Formation{
	"standard":    FormationBalanced,
	"line":        FormationBalanced,
	"default":     FormationBalanced,
	"normal":      FormationBalanced,
	"offensive":   FormationAggressive,
	"attack":      FormationAggressive,
	"assault":     FormationAggressive,
	"wedge":       FormationAggressive,
	"all_out":     FormationAggressive,
	"defense":     FormationDefensive,
	"shield_wall": FormationDefensive,
	"turtle":      FormationDefensive,
	"phalanx":     FormationDefensive,
	"flank":       FormationFlanking,
	"pincer":      FormationFlanking,
	"envelopment": FormationFlanking,
}

var terrainAliases = map[string]Terrain{
	"plain":          TerrainPlains,
	"grassland":      TerrainPlains,
	"field":          TerrainPlains,
	"fields":         TerrainPlains,
	"woods":          TerrainForest,
	"woodland":       TerrainForest,
	"jungle":         TerrainForest,
	"hill":           TerrainHills,
	"highlands":      TerrainHills,
	"mountain":       TerrainMountains,
	"mountainous":    TerrainMountains,
	"marsh":          TerrainSwamp,
	"bog":            TerrainSwamp,
	"wetland":        TerrainSwamp,
	"wetlands":       TerrainSwamp,
	"dunes":          TerrainDesert,
	"wasteland":      TerrainDesert,
	"riverside":      TerrainRiver,
	"river_crossing": TerrainRiver,
	"ford":           TerrainRiver,
}

// ParseFormation 把任意写法的阵型 id 规范化。空串视为 balanced；
// 不认识的名字原样（规范化后）返回，由 Resolver 按“无修正”处理。
func ParseFormation(raw string) Formation {
	key := normalizeKey(raw)
	if key == "" {
		return FormationBalanced
	}
	if f, ok := formationAliases[key]; ok {
		return f
	}
	return Formation(key)
}

// ParseTerrain 同 ParseFormation，空串视为 plains。
func ParseTerrain(raw string) Terrain {
	key := normalizeKey(raw)
	if key == "" {
		return TerrainPlains
	}
	if t, ok := terrainAliases[key]; ok {
		return t
	}
	return Terrain(key)
}

func normalizeKey(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer("-", "_", " ", "_").Replace(s)
	return s
}
