package model

import (
	"KingdomWar/internal/combat/domain"
	"strings"
	"time"
)

type WarDeclaration struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement;comment:宣战ID" json:"id"`
	AttackerID  string    `gorm:"column:attacker_id;type:varchar(64);not null;index:idx_war_pair,priority:1;comment:宣战方" json:"attacker_id"`
	DefenderID  string    `gorm:"column:defender_id;type:varchar(64);not null;index:idx_war_pair,priority:2;comment:被宣战方" json:"defender_id"`
	Status      string    `gorm:"column:status;type:varchar(16);not null;default:active;comment:active/resolved" json:"status"`
	AttackCount int64     `gorm:"column:attack_count;not null;default:0;comment:宣战期间攻击次数" json:"attack_count"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime;comment:创建时间" json:"created_at"`
}

func (WarDeclaration) TableName() string {
	return "war_declaration"
}

func WarDeclarationToDomain(w WarDeclaration) domain.WarDeclaration {
	return domain.WarDeclaration{
		ID:          w.ID,
		AttackerID:  w.AttackerID,
		DefenderID:  w.DefenderID,
		Status:      domain.WarStatus(w.Status),
		AttackCount: w.AttackCount,
	}
}

type RestorationStatus struct {
	ID                int64     `gorm:"column:id;primaryKey;autoIncrement;comment:恢复期ID" json:"id"`
	KingdomID         string    `gorm:"column:kingdom_id;type:varchar(64);not null;index:idx_restoration,priority:1;comment:王国ID" json:"kingdom_id"`
	Kind              string    `gorm:"column:kind;type:varchar(16);not null;comment:damage_based/death_based" json:"kind"`
	StartTime         time.Time `gorm:"column:start_time;not null;comment:开始时间" json:"start_time"`
	EndTime           time.Time `gorm:"column:end_time;not null;index:idx_restoration,priority:2;comment:结束时间" json:"end_time"`
	AllowedActions    string    `gorm:"column:allowed_actions;type:varchar(255);comment:允许动作,逗号分隔" json:"allowed_actions"`
	ProhibitedActions string    `gorm:"column:prohibited_actions;type:varchar(255);comment:禁止动作,逗号分隔" json:"prohibited_actions"`
}

func (RestorationStatus) TableName() string {
	return "restoration_status"
}

func RestorationFromDomain(r domain.RestorationStatus) RestorationStatus {
	return RestorationStatus{
		ID:                r.ID,
		KingdomID:         r.KingdomID,
		Kind:              string(r.Kind),
		StartTime:         r.StartTime,
		EndTime:           r.EndTime,
		AllowedActions:    strings.Join(r.AllowedActions, ","),
		ProhibitedActions: strings.Join(r.ProhibitedActions, ","),
	}
}

func RestorationToDomain(r RestorationStatus) domain.RestorationStatus {
	return domain.RestorationStatus{
		ID:                r.ID,
		KingdomID:         r.KingdomID,
		Kind:              domain.RestorationKind(r.Kind),
		StartTime:         r.StartTime,
		EndTime:           r.EndTime,
		AllowedActions:    splitActions(r.AllowedActions),
		ProhibitedActions: splitActions(r.ProhibitedActions),
	}
}

func splitActions(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
