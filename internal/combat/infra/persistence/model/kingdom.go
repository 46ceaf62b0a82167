package model

import (
	"KingdomWar/internal/combat/domain"
	"encoding/json"
	"time"
)

type Kingdom struct {
	ID            string    `gorm:"column:id;type:varchar(64);primaryKey;comment:王国ID" json:"id"`
	OwnerID       int       `gorm:"column:owner_id;index;not null;default:0;comment:所属玩家UID" json:"owner_id"`
	Name          string    `gorm:"column:name;type:varchar(100);comment:王国名" json:"name"`
	Race          string    `gorm:"column:race;type:varchar(32);comment:种族" json:"race"`
	Era           string    `gorm:"column:era;type:varchar(16);not null;default:early;comment:时代 early/middle/late" json:"era"`
	Gold          int64     `gorm:"column:gold;not null;default:0;comment:金币" json:"gold"`
	Population    int64     `gorm:"column:population;not null;default:0;comment:人口" json:"population"`
	Mana          int64     `gorm:"column:mana;not null;default:0;comment:法力" json:"mana"`
	Land          int64     `gorm:"column:land;not null;default:1000;comment:土地" json:"land"`
	TurnsBalance  int64     `gorm:"column:turns_balance;not null;default:0;comment:行动回合" json:"turns_balance"`
	ActiveEffects string    `gorm:"column:active_effects;type:text;comment:临时效果 JSON" json:"active_effects"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime;comment:创建时间" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime;comment:更新时间" json:"updated_at"`
}

func (Kingdom) TableName() string {
	return "kingdom"
}

// KingdomUnit 每个（王国, 兵种）一行，伤亡按行原子扣减。
type KingdomUnit struct {
	KingdomID string `gorm:"column:kingdom_id;type:varchar(64);primaryKey;comment:王国ID" json:"kingdom_id"`
	UnitType  string `gorm:"column:unit_type;type:varchar(64);primaryKey;comment:兵种" json:"unit_type"`
	Count     int64  `gorm:"column:count;not null;default:0;comment:数量" json:"count"`
}

func (KingdomUnit) TableName() string {
	return "kingdom_units"
}

type effectRow struct {
	Type      string `json:"type"`
	ExpiresAt string `json:"expiresAt"`
}

// DecodeEffects 解析临时效果 JSON；整体或单条损坏都直接跳过，不报错。
func DecodeEffects(raw string) []domain.Effect {
	if raw == "" {
		return nil
	}
	var rows []effectRow
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return nil
	}
	out := make([]domain.Effect, 0, len(rows))
	for _, r := range rows {
		exp, err := time.Parse(time.RFC3339, r.ExpiresAt)
		if err != nil {
			continue
		}
		out = append(out, domain.Effect{Type: r.Type, ExpiresAt: exp})
	}
	return out
}

func EncodeEffects(effects []domain.Effect) string {
	if len(effects) == 0 {
		return ""
	}
	rows := make([]effectRow, 0, len(effects))
	for _, e := range effects {
		rows = append(rows, effectRow{Type: e.Type, ExpiresAt: e.ExpiresAt.UTC().Format(time.RFC3339)})
	}
	raw, _ := json.Marshal(rows)
	return string(raw)
}

func KingdomToDomain(k Kingdom, units []KingdomUnit) *domain.Kingdom {
	out := &domain.Kingdom{
		ID:      k.ID,
		OwnerID: k.OwnerID,
		Name:    k.Name,
		Race:    k.Race,
		Era:     domain.Era(k.Era),
		Units:   make(map[string]int64, len(units)),
		Resources: domain.Resources{
			Gold:         k.Gold,
			Population:   k.Population,
			Mana:         k.Mana,
			Land:         k.Land,
			TurnsBalance: k.TurnsBalance,
		},
		ActiveEffects: DecodeEffects(k.ActiveEffects),
	}
	for _, u := range units {
		out.Units[u.UnitType] = u.Count
	}
	return out
}

func KingdomFromDomain(k domain.Kingdom) (Kingdom, []KingdomUnit) {
	row := Kingdom{
		ID:            k.ID,
		OwnerID:       k.OwnerID,
		Name:          k.Name,
		Race:          k.Race,
		Era:           string(k.Era),
		Gold:          k.Resources.Gold,
		Population:    k.Resources.Population,
		Mana:          k.Resources.Mana,
		Land:          k.Resources.Land,
		TurnsBalance:  k.Resources.TurnsBalance,
		ActiveEffects: EncodeEffects(k.ActiveEffects),
	}
	units := make([]KingdomUnit, 0, len(k.Units))
	for t, n := range k.Units {
		units = append(units, KingdomUnit{KingdomID: k.ID, UnitType: t, Count: n})
	}
	return row, units
}
