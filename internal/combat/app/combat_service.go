package app

import (
	"KingdomWar/internal/combat/app/model"
	"KingdomWar/internal/combat/domain"
	"KingdomWar/internal/combat/engine"
	"KingdomWar/internal/shared/utils"
	"KingdomWar/modules/kit/logx"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultAttackType      = "standard"
	DefaultIdempotencyTTL  = 24 * time.Hour
	defaultReportPageLimit = 20
	maxReportPageLimit     = 100
)

// Repos 战斗服务依赖的存储端口。Idempotency 可为 nil（不支持幂等键）。
type Repos struct {
	Kingdoms     KingdomRepo
	Territories  TerritoryRepo
	Reports      BattleReportRepo
	Wars         WarDeclarationRepo
	Restorations RestorationRepo
	Idempotency  IdempotencyStore
}

type Options struct {
	AttackTurnCost   int64
	WarGateThreshold int64
	WarGateWindow    time.Duration
	IdempotencyTTL   time.Duration
	// NextID 战报 id 生成器，为空时使用本地雪花节点 1
	NextID func() int64
}

type CombatService struct {
	repos    Repos
	resolver *engine.Resolver
	rng      engine.RandomSource
	gate     *WarGate
	updater  *PostCombatUpdater
	turnCost int64
	idemTTL  time.Duration
	log      logx.Logger
	now      func() time.Time
	newID    func() int64
}

func NewCombatService(repos Repos, resolver *engine.Resolver, rng engine.RandomSource, log logx.Logger, opts Options) *CombatService {
	if opts.IdempotencyTTL <= 0 {
		opts.IdempotencyTTL = DefaultIdempotencyTTL
	}
	if opts.NextID == nil {
		sf, _ := utils.NewSnowflake(1)
		opts.NextID = sf.NextID
	}
	return &CombatService{
		repos:    repos,
		resolver: resolver,
		rng:      rng,
		gate:     NewWarGate(repos.Reports, repos.Wars, opts.WarGateThreshold, opts.WarGateWindow),
		updater:  NewPostCombatUpdater(repos.Kingdoms, repos.Territories, repos.Restorations, opts.AttackTurnCost, log),
		turnCost: opts.AttackTurnCost,
		idemTTL:  opts.IdempotencyTTL,
		log:      log,
		now:      time.Now,
		newID:    opts.NextID,
	}
}

// ResolveCombat 结算一次进攻。
//
// 顺序：参数校验 → 读双方王国 → 攻方前置检查 → War Gate → 纯计算 → 写战报 → 战后副作用。
// 战报写入之前的任何失败都不会产生写入（War Gate 放行时的宣战计数除外）；
// 战报写入之后的失败只记 best-effort 日志，不影响返回结果。
func (s *CombatService) ResolveCombat(ctx context.Context, req model.AttackRequest) (*model.CombatOutcome, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	key := s.idempotencyKey(req)
	if key != "" {
		cached, err := s.reserve(ctx, key)
		if err != nil || cached != nil {
			return cached, err
		}
	}

	outcome, err := s.resolve(ctx, req)

	if key != "" {
		s.settle(ctx, key, outcome, err)
	}
	return outcome, err
}

func (s *CombatService) resolve(ctx context.Context, req model.AttackRequest) (*model.CombatOutcome, error) {
	attacker, defender, err := s.loadPair(ctx, req.AttackerID, req.DefenderID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := s.checkAttacker(ctx, req, attacker, now); err != nil {
		return nil, err
	}
	terrain, err := s.resolveTerrain(ctx, req.TerrainID, defender.ID)
	if err != nil {
		return nil, err
	}
	formation := engine.ParseFormation(req.FormationID)

	if err := s.gate.Check(ctx, attacker.ID, defender.ID); err != nil {
		return nil, err
	}

	res := s.resolver.Simulate(engine.BattleInput{
		AttackerUnits: req.Units,
		DefenderUnits: defender.Units,
		DefenderLand:  defender.Resources.Land,
		Context: engine.ModifierInput{
			Formation:       formation,
			Terrain:         terrain,
			AttackerRace:    attacker.Race,
			DefenderRace:    defender.Race,
			AttackerEra:     attacker.Era,
			AttackerEffects: attacker.ActiveEffects,
			Now:             now,
		},
	}, s.rng)

	attackType := strings.TrimSpace(req.AttackType)
	if attackType == "" {
		attackType = DefaultAttackType
	}
	report := domain.BattleReport{
		ID:                 s.newID(),
		AttackerID:         attacker.ID,
		DefenderID:         defender.ID,
		ResultTier:         res.Outcome.Tier,
		PowerRatio:         res.Outcome.PowerRatio,
		AttackerCasualties: res.AttackerCasualties,
		DefenderCasualties: res.DefenderCasualties,
		LandGained:         res.LandGained,
		GoldLooted:         res.GoldLooted,
		AttackType:         attackType,
		Terrain:            string(terrain),
		Formation:          string(formation),
		CreatedAt:          now,
	}
	if err := s.repos.Reports.Create(ctx, report); err != nil {
		return nil, internal(ReasonReportWriteFail, err).WithData("attacker_id", attacker.ID).WithData("defender_id", defender.ID)
	}

	post := s.updater.Apply(ctx, PostCombatInput{
		AttackerID:         attacker.ID,
		DefenderID:         defender.ID,
		DefenderLand:       defender.Resources.Land,
		Success:            res.Outcome.Success(),
		LandGained:         res.LandGained,
		GoldLooted:         res.GoldLooted,
		AttackerCasualties: res.AttackerCasualties,
		DefenderCasualties: res.DefenderCasualties,
	})
	if len(post.Failures) > 0 {
		s.log.WithContext(ctx).Warn("combat resolved with post-update failures",
			zap.Int64("report_id", report.ID),
			zap.Int("failed_steps", len(post.Failures)),
		)
	}

	return &model.CombatOutcome{
		Success:    res.Outcome.Success(),
		ResultTier: string(res.Outcome.Tier),
		PowerRatio: res.Outcome.PowerRatio,
		Casualties: model.Casualties{
			Attacker: res.AttackerCasualties,
			Defender: res.DefenderCasualties,
		},
		LandGained: res.LandGained,
		GoldLooted: res.GoldLooted,
		Message:    outcomeMessage(res.Outcome.Tier, res.LandGained, res.GoldLooted),
		ReportID:   report.ID,
		Terrain:    string(terrain),
		Formation:  string(formation),
	}, nil
}

// ListReports 查询某个有序对的战报（新的在前）。
func (s *CombatService) ListReports(ctx context.Context, attackerID, defenderID string, limit int) ([]domain.BattleReport, error) {
	if strings.TrimSpace(attackerID) == "" {
		return nil, reject(ErrMissingParams, ReasonAttackerMissing)
	}
	if strings.TrimSpace(defenderID) == "" {
		return nil, reject(ErrMissingParams, ReasonDefenderMissing)
	}
	switch {
	case limit <= 0:
		limit = defaultReportPageLimit
	case limit > maxReportPageLimit:
		limit = maxReportPageLimit
	}
	list, err := s.repos.Reports.ListByPair(ctx, attackerID, defenderID, limit)
	if err != nil {
		return nil, internal(ReasonReportRepoUnavailable, err)
	}
	return list, nil
}

func validateRequest(req model.AttackRequest) error {
	if strings.TrimSpace(req.AttackerID) == "" {
		return reject(ErrMissingParams, ReasonAttackerMissing)
	}
	if strings.TrimSpace(req.DefenderID) == "" {
		return reject(ErrMissingParams, ReasonDefenderMissing)
	}
	if len(req.Units) == 0 {
		return reject(ErrMissingParams, ReasonUnitsMissing)
	}
	if req.AttackerID == req.DefenderID {
		return reject(ErrInvalidParam, ReasonSelfAttack)
	}
	for unitType, n := range req.Units {
		if strings.TrimSpace(unitType) == "" || n <= 0 {
			return reject(ErrInvalidParam, ReasonUnitCountInvalid).WithData("unit_type", unitType).WithData("count", n)
		}
	}
	return nil
}

// loadPair 并发读取攻守双方。
func (s *CombatService) loadPair(ctx context.Context, attackerID, defenderID string) (*domain.Kingdom, *domain.Kingdom, error) {
	var attacker, defender *domain.Kingdom
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		k, err := s.repos.Kingdoms.Get(gctx, attackerID)
		if err != nil {
			return kingdomError(err, ReasonAttackerNotFound, attackerID)
		}
		attacker = k
		return nil
	})
	g.Go(func() error {
		k, err := s.repos.Kingdoms.Get(gctx, defenderID)
		if err != nil {
			return kingdomError(err, ReasonDefenderNotFound, defenderID)
		}
		defender = k
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return attacker, defender, nil
}

func kingdomError(err error, notFound Reason, id string) error {
	if errors.Is(err, domain.ErrKingdomNotFound) {
		return reject(ErrNotFound, notFound).WithData("kingdom_id", id)
	}
	return internal(ReasonKingdomRepoUnavailable, err).WithData("kingdom_id", id)
}

func (s *CombatService) checkAttacker(ctx context.Context, req model.AttackRequest, attacker *domain.Kingdom, now time.Time) error {
	if req.ActorUID > 0 && attacker.OwnerID != req.ActorUID {
		return reject(ErrForbidden, ReasonNotOwner).WithData("uid", req.ActorUID).WithData("kingdom_id", attacker.ID)
	}

	if s.repos.Restorations != nil {
		rs, err := s.repos.Restorations.FindActive(ctx, attacker.ID, now)
		switch {
		case err == nil:
			if rs.Prohibits(domain.ActionAttack) {
				return reject(ErrRestorationActive, ReasonAttackerRestoring).WithData("end_time", rs.EndTime)
			}
		case errors.Is(err, domain.ErrRestorationNotFound):
		default:
			return internal(ReasonRestorationRepoUnavailable, err)
		}
	}

	for unitType, n := range req.Units {
		owned, ok := attacker.UnitCount(unitType)
		if !ok {
			return reject(ErrInvalidParam, ReasonUnknownUnitType).WithData("unit_type", unitType)
		}
		if n > owned {
			return reject(ErrInsufficientResources, ReasonUnitsExceedOwned).
				WithData("unit_type", unitType).
				WithData("requested", n).
				WithData("owned", owned)
		}
	}
	if attacker.Resources.TurnsBalance < s.turnCost {
		return reject(ErrInsufficientResources, ReasonTurnsInsufficient).
			WithData("turns", attacker.Resources.TurnsBalance).
			WithData("cost", s.turnCost)
	}
	return nil
}

// resolveTerrain 请求指定优先，否则取守方首都/第一块领地的地形，都没有则为平原。
func (s *CombatService) resolveTerrain(ctx context.Context, raw, defenderID string) (engine.Terrain, error) {
	if strings.TrimSpace(raw) != "" {
		return engine.ParseTerrain(raw), nil
	}
	ts, err := s.repos.Territories.ListByOwner(ctx, defenderID)
	if err != nil {
		return "", internal(ReasonTerritoryRepoUnavailable, err).WithData("kingdom_id", defenderID)
	}
	return engine.ParseTerrain(domain.DefaultTerrain(ts)), nil
}

func (s *CombatService) idempotencyKey(req model.AttackRequest) string {
	key := strings.TrimSpace(req.IdempotencyKey)
	if key == "" || s.repos.Idempotency == nil {
		return ""
	}
	return req.AttackerID + ":" + key
}

// reserve 占位成功返回 (nil, nil) 继续结算；已完成返回缓存结果；处理中返回 DUPLICATE_REQUEST。
func (s *CombatService) reserve(ctx context.Context, key string) (*model.CombatOutcome, error) {
	ok, err := s.repos.Idempotency.Reserve(ctx, key, s.idemTTL)
	if err != nil {
		return nil, internal(ReasonIdempotencyUnavailable, err)
	}
	if ok {
		return nil, nil
	}
	cached, found, err := s.repos.Idempotency.Load(ctx, key)
	if err != nil {
		return nil, internal(ReasonIdempotencyUnavailable, err)
	}
	if found {
		return cached, nil
	}
	return nil, reject(ErrDuplicateRequest, ReasonRequestInFlight).WithData("idempotency_key", key)
}

// settle 成功时缓存结果，失败时释放占位让客户端修正后重试。
func (s *CombatService) settle(ctx context.Context, key string, outcome *model.CombatOutcome, err error) {
	if err != nil {
		if rerr := s.repos.Idempotency.Release(ctx, key); rerr != nil {
			logx.ReportBestEffortWithLoggerContext(ctx, s.log, logx.NewBestEffortLog("combat idempotency release failure", "release", rerr))
		}
		return
	}
	if serr := s.repos.Idempotency.Store(ctx, key, outcome, s.idemTTL); serr != nil {
		logx.ReportBestEffortWithLoggerContext(ctx, s.log, logx.NewBestEffortLog("combat idempotency store failure", "store", serr))
	}
}

func outcomeMessage(tier domain.ResultTier, land, gold int64) string {
	switch tier {
	case domain.TierWithEase:
		return fmt.Sprintf("大获全胜：夺得 %d 英亩土地、%d 金币", land, gold)
	case domain.TierGoodFight:
		return fmt.Sprintf("苦战告捷：夺得 %d 英亩土地、%d 金币", land, gold)
	default:
		return "进攻失败：未能突破守军防线"
	}
}
