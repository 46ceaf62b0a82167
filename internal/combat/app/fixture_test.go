package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"KingdomWar/internal/combat/domain"
	"KingdomWar/internal/combat/engine"
	"KingdomWar/internal/combat/infra/persistence/memory"
	"KingdomWar/internal/shared/gameconfig/combat"
	"KingdomWar/modules/kit/logx"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var fixedNow = time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	kingdoms     *memory.KingdomRepo
	territories  *memory.TerritoryRepo
	reports      *memory.BattleReportRepo
	wars         *memory.WarDeclarationRepo
	restorations *memory.RestorationRepo
	idem         *memory.IdempotencyStore
	logs         *observer.ObservedLogs
	log          logx.Logger
}

func newFixture() *fixture {
	core, logs := observer.New(zap.DebugLevel)
	f := &fixture{
		kingdoms:     memory.NewKingdomRepo(),
		territories:  memory.NewTerritoryRepo(),
		reports:      memory.NewBattleReportRepo(),
		wars:         memory.NewWarDeclarationRepo(),
		restorations: memory.NewRestorationRepo(),
		idem:         memory.NewIdempotencyStore(),
		logs:         logs,
		log:          logx.NewZapLogger(zap.New(core)),
	}
	f.kingdoms.Put(domain.Kingdom{
		ID:        "a",
		OwnerID:   1,
		Era:       domain.EraEarly,
		Units:     map[string]int64{"cavalry": 5000, "soldiers": 100},
		Resources: domain.Resources{Gold: 1000, Land: 5000, TurnsBalance: 10},
	})
	f.kingdoms.Put(domain.Kingdom{
		ID:        "d",
		OwnerID:   2,
		Era:       domain.EraEarly,
		Units:     map[string]int64{"infantry": 10},
		Resources: domain.Resources{Gold: 2_000_000, Land: 5000, TurnsBalance: 10},
	})
	f.territories.Put(domain.Territory{ID: 1, OwnerKingdomID: "d", Kind: domain.TerritoryCapital, DefenseLevel: 0, TerrainType: "plains"})
	f.territories.Put(domain.Territory{ID: 2, OwnerKingdomID: "d", Kind: domain.TerritoryOther, DefenseLevel: 5, TerrainType: "forest"})
	f.territories.Put(domain.Territory{ID: 3, OwnerKingdomID: "d", Kind: domain.TerritoryOther, DefenseLevel: 1, TerrainType: "hills"})
	return f
}

func (f *fixture) repos() Repos {
	return Repos{
		Kingdoms:     f.kingdoms,
		Territories:  f.territories,
		Reports:      f.reports,
		Wars:         f.wars,
		Restorations: f.restorations,
		Idempotency:  f.idem,
	}
}

func (f *fixture) service(repos Repos) *CombatService {
	var seq int64
	s := NewCombatService(repos, engine.NewResolver(combat.Default()), engine.FixedSource(0.5), f.log, Options{
		AttackTurnCost:   4,
		WarGateThreshold: 3,
		NextID: func() int64 {
			seq++
			return seq
		},
	})
	s.now = func() time.Time { return fixedNow }
	s.gate.now = s.now
	s.updater.now = s.now
	return s
}

func (f *fixture) kingdom(t *testing.T, id string) *domain.Kingdom {
	t.Helper()
	k, err := f.kingdoms.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("读取王国 %s 失败: %v", id, err)
	}
	return k
}

func (f *fixture) bestEffortFailures() int {
	return f.logs.FilterField(zap.String("err_type", "best_effort")).Len()
}

var errBoom = errors.New("boom")

// flakyKingdoms 在指定步骤返回错误，其余委托给内存实现。
type flakyKingdoms struct {
	*memory.KingdomRepo
	failGet    bool
	failDeduct bool
	failAdjust bool
}

func (k *flakyKingdoms) Get(ctx context.Context, id string) (*domain.Kingdom, error) {
	if k.failGet {
		return nil, domain.ErrSystemUnavailable.WithCause(errBoom)
	}
	return k.KingdomRepo.Get(ctx, id)
}

func (k *flakyKingdoms) DeductTurns(ctx context.Context, id string, n int64) error {
	if k.failDeduct {
		return domain.ErrSystemUnavailable.WithCause(errBoom)
	}
	return k.KingdomRepo.DeductTurns(ctx, id, n)
}

func (k *flakyKingdoms) AdjustResources(ctx context.Context, id string, d domain.ResourceDelta) error {
	if k.failAdjust {
		return domain.ErrSystemUnavailable.WithCause(errBoom)
	}
	return k.KingdomRepo.AdjustResources(ctx, id, d)
}

type flakyTerritories struct {
	*memory.TerritoryRepo
	failUpdate bool
}

func (t *flakyTerritories) UpdateOwner(ctx context.Context, id int64, owner string) error {
	if t.failUpdate {
		return domain.ErrSystemUnavailable.WithCause(errBoom)
	}
	return t.TerritoryRepo.UpdateOwner(ctx, id, owner)
}

type flakyReports struct {
	*memory.BattleReportRepo
	failCreate bool
}

func (r *flakyReports) Create(ctx context.Context, rep domain.BattleReport) error {
	if r.failCreate {
		return domain.ErrSystemUnavailable.WithCause(errBoom)
	}
	return r.BattleReportRepo.Create(ctx, rep)
}

type flakyRestorations struct {
	*memory.RestorationRepo
	failCreate bool
}

func (r *flakyRestorations) Create(ctx context.Context, rs domain.RestorationStatus) error {
	if r.failCreate {
		return domain.ErrSystemUnavailable.WithCause(errBoom)
	}
	return r.RestorationRepo.Create(ctx, rs)
}
