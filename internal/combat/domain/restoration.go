package domain

import (
	"slices"
	"time"
)

type RestorationKind string

const (
	RestorationDamageBased RestorationKind = "damage_based"
	RestorationDeathBased  RestorationKind = "death_based"
)

const (
	ActionAttack     = "attack"
	ActionTrade      = "trade"
	ActionBuild      = "build"
	ActionTrain      = "train"
	ActionView       = "view"
	ActionMessage    = "message"
	ActionDiplomacy  = "diplomacy"
	damageBasedHours = 48
	deathBasedHours  = 72
)

// RestorationStatus 重创后的恢复期，到 EndTime 自然失效，不删除。
type RestorationStatus struct {
	ID                int64
	KingdomID         string
	Kind              RestorationKind
	StartTime         time.Time
	EndTime           time.Time
	AllowedActions    []string
	ProhibitedActions []string
}

func NewRestoration(kingdomID string, kind RestorationKind, now time.Time) RestorationStatus {
	hours := damageBasedHours
	if kind == RestorationDeathBased {
		hours = deathBasedHours
	}
	return RestorationStatus{
		KingdomID:         kingdomID,
		Kind:              kind,
		StartTime:         now,
		EndTime:           now.Add(time.Duration(hours) * time.Hour),
		AllowedActions:    []string{ActionView, ActionMessage, ActionDiplomacy},
		ProhibitedActions: []string{ActionAttack, ActionTrade, ActionBuild, ActionTrain},
	}
}

func (r RestorationStatus) ActiveAt(now time.Time) bool {
	return now.Before(r.EndTime)
}

func (r RestorationStatus) Prohibits(action string) bool {
	return slices.Contains(r.ProhibitedActions, action)
}
