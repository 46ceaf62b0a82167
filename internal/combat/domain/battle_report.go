package domain

import "time"

type ResultTier string

const (
	TierWithEase  ResultTier = "with_ease"
	TierGoodFight ResultTier = "good_fight"
	TierFailed    ResultTier = "failed"
)

func (t ResultTier) Success() bool {
	return t == TierWithEase || t == TierGoodFight
}

// BattleReport 一次已结算攻击的不可变记录，War Gate 依赖它统计历史攻击次数。
type BattleReport struct {
	ID                 int64            `json:"id,string"`
	AttackerID         string           `json:"attackerId"`
	DefenderID         string           `json:"defenderId"`
	ResultTier         ResultTier       `json:"resultTier"`
	PowerRatio         float64          `json:"powerRatio"`
	AttackerCasualties map[string]int64 `json:"attackerCasualties"`
	DefenderCasualties map[string]int64 `json:"defenderCasualties"`
	LandGained         int64            `json:"landGained"`
	GoldLooted         int64            `json:"goldLooted"`
	AttackType         string           `json:"attackType"`
	Terrain            string           `json:"terrain"`
	Formation          string           `json:"formation"`
	CreatedAt          time.Time        `json:"createdAt"`
}
