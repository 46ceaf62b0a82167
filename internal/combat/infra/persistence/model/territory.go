package model

import "KingdomWar/internal/combat/domain"

type Territory struct {
	ID             int64  `gorm:"column:id;primaryKey;autoIncrement;comment:领地ID" json:"id"`
	OwnerKingdomID string `gorm:"column:owner_kingdom_id;type:varchar(64);index;not null;comment:所属王国" json:"owner_kingdom_id"`
	Name           string `gorm:"column:name;type:varchar(100);comment:领地名" json:"name"`
	Kind           string `gorm:"column:kind;type:varchar(16);not null;default:other;comment:capital/other" json:"kind"`
	DefenseLevel   int64  `gorm:"column:defense_level;not null;default:0;comment:防御等级" json:"defense_level"`
	TerrainType    string `gorm:"column:terrain_type;type:varchar(32);comment:地形" json:"terrain_type"`
}

func (Territory) TableName() string {
	return "territory"
}

func TerritoryToDomain(t Territory) domain.Territory {
	return domain.Territory{
		ID:             t.ID,
		OwnerKingdomID: t.OwnerKingdomID,
		Name:           t.Name,
		Kind:           t.Kind,
		DefenseLevel:   t.DefenseLevel,
		TerrainType:    t.TerrainType,
	}
}
