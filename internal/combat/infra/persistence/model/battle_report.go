package model

import (
	"KingdomWar/internal/combat/domain"
	"encoding/json"
	"time"
)

// BattleReport 关系库版战报，伤亡以 JSON 文本存储。
type BattleReport struct {
	ID                 int64     `gorm:"column:id;primaryKey;autoIncrement:false;comment:战报ID(雪花)" json:"id"`
	AttackerID         string    `gorm:"column:attacker_id;type:varchar(64);not null;index:idx_pair,priority:1;comment:进攻方" json:"attacker_id"`
	DefenderID         string    `gorm:"column:defender_id;type:varchar(64);not null;index:idx_pair,priority:2;comment:防守方" json:"defender_id"`
	ResultTier         string    `gorm:"column:result_tier;type:varchar(16);not null;comment:结果档位" json:"result_tier"`
	PowerRatio         float64   `gorm:"column:power_ratio;not null;default:0;comment:战力比" json:"power_ratio"`
	AttackerCasualties string    `gorm:"column:attacker_casualties;type:text;comment:进攻方伤亡 JSON" json:"attacker_casualties"`
	DefenderCasualties string    `gorm:"column:defender_casualties;type:text;comment:防守方伤亡 JSON" json:"defender_casualties"`
	LandGained         int64     `gorm:"column:land_gained;not null;default:0;comment:夺得土地" json:"land_gained"`
	GoldLooted         int64     `gorm:"column:gold_looted;not null;default:0;comment:掠夺金币" json:"gold_looted"`
	AttackType         string    `gorm:"column:attack_type;type:varchar(32);comment:攻击类型" json:"attack_type"`
	Terrain            string    `gorm:"column:terrain;type:varchar(32);comment:地形" json:"terrain"`
	Formation          string    `gorm:"column:formation;type:varchar(32);comment:阵型" json:"formation"`
	CreatedAt          time.Time `gorm:"column:created_at;not null;index:idx_pair,priority:3;comment:战斗时间" json:"created_at"`
}

func (BattleReport) TableName() string {
	return "battle_report"
}

func BattleReportFromDomain(r domain.BattleReport) BattleReport {
	return BattleReport{
		ID:                 r.ID,
		AttackerID:         r.AttackerID,
		DefenderID:         r.DefenderID,
		ResultTier:         string(r.ResultTier),
		PowerRatio:         r.PowerRatio,
		AttackerCasualties: encodeCounts(r.AttackerCasualties),
		DefenderCasualties: encodeCounts(r.DefenderCasualties),
		LandGained:         r.LandGained,
		GoldLooted:         r.GoldLooted,
		AttackType:         r.AttackType,
		Terrain:            r.Terrain,
		Formation:          r.Formation,
		CreatedAt:          r.CreatedAt,
	}
}

func BattleReportToDomain(r BattleReport) domain.BattleReport {
	return domain.BattleReport{
		ID:                 r.ID,
		AttackerID:         r.AttackerID,
		DefenderID:         r.DefenderID,
		ResultTier:         domain.ResultTier(r.ResultTier),
		PowerRatio:         r.PowerRatio,
		AttackerCasualties: decodeCounts(r.AttackerCasualties),
		DefenderCasualties: decodeCounts(r.DefenderCasualties),
		LandGained:         r.LandGained,
		GoldLooted:         r.GoldLooted,
		AttackType:         r.AttackType,
		Terrain:            r.Terrain,
		Formation:          r.Formation,
		CreatedAt:          r.CreatedAt,
	}
}

func encodeCounts(m map[string]int64) string {
	if len(m) == 0 {
		return "{}"
	}
	raw, _ := json.Marshal(m)
	return string(raw)
}

func decodeCounts(raw string) map[string]int64 {
	out := map[string]int64{}
	if raw == "" {
		return out
	}
	_ = json.Unmarshal([]byte(raw), &out)
	return out
}

// BattleReportDoc MongoDB 版战报。
type BattleReportDoc struct {
	ID                 int64            `bson:"_id"`
	AttackerID         string           `bson:"attacker_id"`
	DefenderID         string           `bson:"defender_id"`
	ResultTier         string           `bson:"result_tier"`
	PowerRatio         float64          `bson:"power_ratio"`
	AttackerCasualties map[string]int64 `bson:"attacker_casualties"`
	DefenderCasualties map[string]int64 `bson:"defender_casualties"`
	LandGained         int64            `bson:"land_gained"`
	GoldLooted         int64            `bson:"gold_looted"`
	AttackType         string           `bson:"attack_type"`
	Terrain            string           `bson:"terrain"`
	Formation          string           `bson:"formation"`
	CreatedAt          time.Time        `bson:"created_at"`
}

func BattleReportToDoc(r domain.BattleReport) BattleReportDoc {
	return BattleReportDoc{
		ID:                 r.ID,
		AttackerID:         r.AttackerID,
		DefenderID:         r.DefenderID,
		ResultTier:         string(r.ResultTier),
		PowerRatio:         r.PowerRatio,
		AttackerCasualties: r.AttackerCasualties,
		DefenderCasualties: r.DefenderCasualties,
		LandGained:         r.LandGained,
		GoldLooted:         r.GoldLooted,
		AttackType:         r.AttackType,
		Terrain:            r.Terrain,
		Formation:          r.Formation,
		CreatedAt:          r.CreatedAt,
	}
}

func BattleReportDocToDomain(d BattleReportDoc) domain.BattleReport {
	return domain.BattleReport{
		ID:                 d.ID,
		AttackerID:         d.AttackerID,
		DefenderID:         d.DefenderID,
		ResultTier:         domain.ResultTier(d.ResultTier),
		PowerRatio:         d.PowerRatio,
		AttackerCasualties: d.AttackerCasualties,
		DefenderCasualties: d.DefenderCasualties,
		LandGained:         d.LandGained,
		GoldLooted:         d.GoldLooted,
		AttackType:         d.AttackType,
		Terrain:            d.Terrain,
		Formation:          d.Formation,
		CreatedAt:          d.CreatedAt,
	}
}
