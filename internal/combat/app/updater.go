package app

import (
	"KingdomWar/internal/combat/domain"
	"KingdomWar/modules/kit/logx"
	"context"
	"time"

	"go.uber.org/zap"
)

const postUpdateAction = "combat post-update best-effort failure"

// 战后各步骤名，用于日志与 PostCombatReport.Failures。
const (
	StepRestoration        = "restoration"
	StepAttackerCasualties = "attacker_casualties"
	StepDefenderCasualties = "defender_casualties"
	StepDefenderResources  = "defender_resources"
	StepAttackerResources  = "attacker_resources"
	StepAttackerTurns      = "attacker_turns"
	StepTerritoryTransfer  = "territory_transfer"
)

type PostCombatInput struct {
	AttackerID         string
	DefenderID         string
	DefenderLand       int64
	Success            bool
	LandGained         int64
	GoldLooted         int64
	AttackerCasualties map[string]int64
	DefenderCasualties map[string]int64
}

type StepFailure struct {
	Step string
	Err  error
}

type PostCombatReport struct {
	DefenderPostLand     int64
	LandLossPercent      float64
	Restoration          *domain.RestorationStatus
	TransferredTerritory *domain.Territory
	Failures             []StepFailure
}

// PostCombatUpdater 战报落库之后执行的副作用。每一步都是独立写入，
// 某一步失败不回滚也不中断后续步骤，只记录 best-effort 日志。
type PostCombatUpdater struct {
	kingdoms     KingdomRepo
	territories  TerritoryRepo
	restorations RestorationRepo
	turnCost     int64
	log          logx.Logger
	now          func() time.Time
}

func NewPostCombatUpdater(kingdoms KingdomRepo, territories TerritoryRepo, restorations RestorationRepo, turnCost int64, log logx.Logger) *PostCombatUpdater {
	return &PostCombatUpdater{
		kingdoms:     kingdoms,
		territories:  territories,
		restorations: restorations,
		turnCost:     turnCost,
		log:          log,
		now:          time.Now,
	}
}

func (u *PostCombatUpdater) Apply(ctx context.Context, in PostCombatInput) PostCombatReport {
	var rep PostCombatReport

	// 1. 守方战后土地与损失比例；土地 <= 0 视为已在下限
	if in.DefenderLand > 0 {
		rep.DefenderPostLand = max(domain.MinLand, in.DefenderLand-in.LandGained)
		rep.LandLossPercent = float64(in.LandGained) / float64(in.DefenderLand)
	} else {
		rep.DefenderPostLand = domain.MinLand
	}
	floorHit := rep.DefenderPostLand <= domain.MinLand

	// 2. 重创进入恢复期
	if rep.LandLossPercent >= 0.5 || floorHit {
		kind := domain.RestorationDamageBased
		if floorHit {
			kind = domain.RestorationDeathBased
		}
		rs := domain.NewRestoration(in.DefenderID, kind, u.now())
		if err := u.restorations.Create(ctx, rs); err != nil {
			u.fail(ctx, &rep, StepRestoration, err, in)
		} else {
			rep.Restoration = &rs
		}
	}

	// 3. 双方伤亡
	if hasLosses(in.AttackerCasualties) {
		if err := u.kingdoms.ApplyCasualties(ctx, in.AttackerID, in.AttackerCasualties); err != nil {
			u.fail(ctx, &rep, StepAttackerCasualties, err, in)
		}
	}
	if hasLosses(in.DefenderCasualties) {
		if err := u.kingdoms.ApplyCasualties(ctx, in.DefenderID, in.DefenderCasualties); err != nil {
			u.fail(ctx, &rep, StepDefenderCasualties, err, in)
		}
	}

	// 4/5. 胜利且夺地时转移资源；无论胜负都扣回合
	won := in.Success && in.LandGained > 0
	if won {
		if err := u.kingdoms.AdjustResources(ctx, in.DefenderID, domain.ResourceDelta{Land: -in.LandGained, Gold: -in.GoldLooted}); err != nil {
			u.fail(ctx, &rep, StepDefenderResources, err, in)
		}
		if err := u.kingdoms.AdjustResources(ctx, in.AttackerID, domain.ResourceDelta{Land: in.LandGained, Gold: in.GoldLooted}); err != nil {
			u.fail(ctx, &rep, StepAttackerResources, err, in)
		}
	}
	if err := u.kingdoms.DeductTurns(ctx, in.AttackerID, u.turnCost); err != nil {
		u.fail(ctx, &rep, StepAttackerTurns, err, in)
	}
	if won {
		if t, err := u.transferTerritory(ctx, in.DefenderID, in.AttackerID); err != nil {
			u.fail(ctx, &rep, StepTerritoryTransfer, err, in)
		} else {
			rep.TransferredTerritory = t
		}
	}
	return rep
}

// transferTerritory 把守方防御最低的非首都领地划给攻方；守方没有可转移领地时返回 nil, nil。
func (u *PostCombatUpdater) transferTerritory(ctx context.Context, from, to string) (*domain.Territory, error) {
	ts, err := u.territories.ListByOwner(ctx, from)
	if err != nil {
		return nil, err
	}
	t, ok := domain.WeakestTransferable(ts)
	if !ok {
		return nil, nil
	}
	if err := u.territories.UpdateOwner(ctx, t.ID, to); err != nil {
		return nil, err
	}
	t.OwnerKingdomID = to
	return &t, nil
}

func (u *PostCombatUpdater) fail(ctx context.Context, rep *PostCombatReport, step string, err error, in PostCombatInput) {
	rep.Failures = append(rep.Failures, StepFailure{Step: step, Err: err})
	logx.ReportBestEffortWithLoggerContext(ctx, u.log, logx.NewBestEffortLog(postUpdateAction, step, err),
		zap.String("attacker_id", in.AttackerID),
		zap.String("defender_id", in.DefenderID),
	)
}

func hasLosses(m map[string]int64) bool {
	for _, n := range m {
		if n > 0 {
			return true
		}
	}
	return false
}
