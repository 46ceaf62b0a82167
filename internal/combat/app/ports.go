package app

import (
	"KingdomWar/internal/combat/app/model"
	"KingdomWar/internal/combat/domain"
	"context"
	"time"
)

// KingdomRepo 所有数值修改都是带下限的原子增量，不做整行读改写。
type KingdomRepo interface {
	Get(ctx context.Context, id string) (*domain.Kingdom, error)
	// ApplyCasualties 逐兵种扣减，不低于 0。
	ApplyCasualties(ctx context.Context, id string, losses map[string]int64) error
	// AdjustResources 见 domain.ResourceDelta 的下限约定。
	AdjustResources(ctx context.Context, id string, delta domain.ResourceDelta) error
	// DeductTurns 扣减行动回合，不低于 0。
	DeductTurns(ctx context.Context, id string, n int64) error
}

type TerritoryRepo interface {
	ListByOwner(ctx context.Context, kingdomID string) ([]domain.Territory, error)
	UpdateOwner(ctx context.Context, territoryID int64, newOwnerID string) error
}

type BattleReportRepo interface {
	Create(ctx context.Context, r domain.BattleReport) error
	// ListByPair 按时间倒序，limit<=0 表示不限。
	ListByPair(ctx context.Context, attackerID, defenderID string, limit int) ([]domain.BattleReport, error)
	// CountByPair since 为零值时统计全部历史。
	CountByPair(ctx context.Context, attackerID, defenderID string, since time.Time) (int64, error)
}

type WarDeclarationRepo interface {
	// FindActive 没有时返回 domain.ErrWarDeclarationNotFound。
	FindActive(ctx context.Context, attackerID, defenderID string) (*domain.WarDeclaration, error)
	IncrementAttackCount(ctx context.Context, id int64) error
}

type RestorationRepo interface {
	Create(ctx context.Context, r domain.RestorationStatus) error
	// FindActive 返回 now 时刻仍生效、结束最晚的一条；没有时返回 domain.ErrRestorationNotFound。
	FindActive(ctx context.Context, kingdomID string, now time.Time) (*domain.RestorationStatus, error)
}

// IdempotencyStore 幂等键：Reserve 占位 → Store 写结果；失败时 Release 让客户端可以重试。
type IdempotencyStore interface {
	// Reserve 占位成功返回 true；键已存在（处理中或已完成）返回 false。
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Load 读取已完成请求的结果；处理中或不存在时 found=false。
	Load(ctx context.Context, key string) (outcome *model.CombatOutcome, found bool, err error)
	Store(ctx context.Context, key string, outcome *model.CombatOutcome, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}
