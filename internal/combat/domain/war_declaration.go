package domain

type WarStatus string

const (
	WarActive   WarStatus = "active"
	WarResolved WarStatus = "resolved"
)

// WarDeclaration 由外交模块创建；战斗侧只递增 AttackCount。
type WarDeclaration struct {
	ID          int64
	AttackerID  string
	DefenderID  string
	Status      WarStatus
	AttackCount int64
}
