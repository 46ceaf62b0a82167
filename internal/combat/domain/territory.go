package domain

import "sort"

const (
	TerritoryCapital = "capital"
	TerritoryOther   = "other"
)

type Territory struct {
	ID             int64
	OwnerKingdomID string
	Name           string
	Kind           string
	DefenseLevel   int64
	TerrainType    string
}

func (t Territory) IsCapital() bool {
	return t.Kind == TerritoryCapital
}

// WeakestTransferable 返回防御等级最低的非首都领地（同级取 ID 小的），没有则返回 false。
func WeakestTransferable(ts []Territory) (Territory, bool) {
	candidates := make([]Territory, 0, len(ts))
	for _, t := range ts {
		if !t.IsCapital() {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return Territory{}, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].DefenseLevel != candidates[j].DefenseLevel {
			return candidates[i].DefenseLevel < candidates[j].DefenseLevel
		}
		return candidates[i].ID < candidates[j].ID
	})
	return candidates[0], true
}

// DefaultTerrain 首都地形优先，其次第一块领地，都没有返回空串。
func DefaultTerrain(ts []Territory) string {
	for _, t := range ts {
		if t.IsCapital() && t.TerrainType != "" {
			return t.TerrainType
		}
	}
	if len(ts) > 0 {
		return ts[0].TerrainType
	}
	return ""
}
