package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"KingdomWar/internal/combat/app/model"
	"KingdomWar/internal/combat/domain"
)

func cavalryRaid() model.AttackRequest {
	return model.AttackRequest{
		AttackerID: "a",
		DefenderID: "d",
		Units:      map[string]int64{"cavalry": 5000},
	}
}

func TestResolveCombat_轻松取胜并完成战后结算(t *testing.T) {
	f := newFixture()
	s := f.service(f.repos())

	out, err := s.ResolveCombat(context.Background(), cavalryRaid())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if !out.Success || out.ResultTier != string(domain.TierWithEase) {
		t.Fatalf("期望 with_ease, got=%+v", out)
	}
	if out.PowerRatio != 1250 {
		t.Fatalf("期望战力比 1250, got=%v", out.PowerRatio)
	}
	if out.LandGained != 367 || out.GoldLooted != 367000 {
		t.Fatalf("期望夺地 367、金币 367000, got land=%d gold=%d", out.LandGained, out.GoldLooted)
	}
	if out.Casualties.Attacker["cavalry"] != 250 || out.Casualties.Defender["infantry"] != 2 {
		t.Fatalf("伤亡不符合预期: %+v", out.Casualties)
	}
	if out.Terrain != "plains" || out.Formation != "balanced" {
		t.Fatalf("期望默认取守方首都地形 plains 与 balanced 阵型, got terrain=%s formation=%s", out.Terrain, out.Formation)
	}
	if out.ReportID == 0 || out.Message == "" {
		t.Fatalf("期望返回战报 id 与文案, got=%+v", out)
	}

	atk := f.kingdom(t, "a")
	def := f.kingdom(t, "d")
	if atk.Units["cavalry"] != 4750 || def.Units["infantry"] != 8 {
		t.Fatalf("期望伤亡已落库, atk=%v def=%v", atk.Units, def.Units)
	}
	if atk.Resources.Land != 5367 || atk.Resources.Gold != 368000 {
		t.Fatalf("期望攻方获得土地与金币, got=%+v", atk.Resources)
	}
	if def.Resources.Land != 4633 || def.Resources.Gold != 2_000_000-367000 {
		t.Fatalf("期望守方扣减土地与金币, got=%+v", def.Resources)
	}
	if atk.Resources.TurnsBalance != 6 {
		t.Fatalf("期望扣除 4 回合, got=%d", atk.Resources.TurnsBalance)
	}
	tr, _ := f.territories.Get(3)
	if tr.OwnerKingdomID != "a" {
		t.Fatalf("期望防御最低的非首都领地转移给攻方, got=%+v", tr)
	}
	if capital, _ := f.territories.Get(1); capital.OwnerKingdomID != "d" {
		t.Fatalf("期望首都不被转移")
	}
	if len(f.restorations.ListByKingdom("d")) != 0 {
		t.Fatalf("期望损失 7%% 时不进入恢复期")
	}
	if f.reports.Len() != 1 {
		t.Fatalf("期望写入 1 条战报, got=%d", f.reports.Len())
	}
}

func TestResolveCombat_势均力敌失败但仍结算伤亡与回合(t *testing.T) {
	f := newFixture()
	f.kingdoms.Put(domain.Kingdom{
		ID:        "d",
		OwnerID:   2,
		Units:     map[string]int64{"soldiers": 100},
		Resources: domain.Resources{Gold: 500, Land: 5000},
	})
	s := f.service(f.repos())

	out, err := s.ResolveCombat(context.Background(), model.AttackRequest{
		AttackerID: "a",
		DefenderID: "d",
		Units:      map[string]int64{"soldiers": 100},
	})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if out.Success || out.ResultTier != string(domain.TierFailed) || out.PowerRatio != 1 {
		t.Fatalf("期望 failed 且战力比 1, got=%+v", out)
	}
	if out.LandGained != 0 || out.GoldLooted != 0 {
		t.Fatalf("期望失败不夺地, got=%+v", out)
	}

	atk := f.kingdom(t, "a")
	def := f.kingdom(t, "d")
	if atk.Units["soldiers"] != 75 || def.Units["soldiers"] != 95 {
		t.Fatalf("期望按 25%%/5%% 结算伤亡, atk=%v def=%v", atk.Units, def.Units)
	}
	if atk.Resources.TurnsBalance != 6 {
		t.Fatalf("期望失败也扣回合, got=%d", atk.Resources.TurnsBalance)
	}
	if def.Resources.Land != 5000 || atk.Resources.Land != 5000 {
		t.Fatalf("期望失败不转移土地")
	}
	if tr, _ := f.territories.Get(3); tr.OwnerKingdomID != "d" {
		t.Fatalf("期望失败不转移领地")
	}
}

func TestResolveCombat_参数校验(t *testing.T) {
	tests := []struct {
		name string
		req  model.AttackRequest
		want error
	}{
		{name: "缺少攻方", req: model.AttackRequest{DefenderID: "d", Units: map[string]int64{"cavalry": 1}}, want: ErrMissingParams},
		{name: "缺少守方", req: model.AttackRequest{AttackerID: "a", Units: map[string]int64{"cavalry": 1}}, want: ErrMissingParams},
		{name: "缺少兵力", req: model.AttackRequest{AttackerID: "a", DefenderID: "d"}, want: ErrMissingParams},
		{name: "攻击自己", req: model.AttackRequest{AttackerID: "a", DefenderID: "a", Units: map[string]int64{"cavalry": 1}}, want: ErrInvalidParam},
		{name: "兵力为 0", req: model.AttackRequest{AttackerID: "a", DefenderID: "d", Units: map[string]int64{"cavalry": 0}}, want: ErrInvalidParam},
		{name: "兵力为负", req: model.AttackRequest{AttackerID: "a", DefenderID: "d", Units: map[string]int64{"cavalry": -5}}, want: ErrInvalidParam},
		{name: "未持有的兵种", req: model.AttackRequest{AttackerID: "a", DefenderID: "d", Units: map[string]int64{"dragons": 1}}, want: ErrInvalidParam},
		{name: "超过持有数量", req: model.AttackRequest{AttackerID: "a", DefenderID: "d", Units: map[string]int64{"cavalry": 5001}}, want: ErrInsufficientResources},
		{name: "攻方不存在", req: model.AttackRequest{AttackerID: "x", DefenderID: "d", Units: map[string]int64{"cavalry": 1}}, want: ErrNotFound},
		{name: "守方不存在", req: model.AttackRequest{AttackerID: "a", DefenderID: "x", Units: map[string]int64{"cavalry": 1}}, want: ErrNotFound},
		{name: "非王国拥有者", req: model.AttackRequest{AttackerID: "a", DefenderID: "d", Units: map[string]int64{"cavalry": 1}, ActorUID: 99}, want: ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			s := f.service(f.repos())
			_, err := s.ResolveCombat(context.Background(), tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("期望 %v, got=%v", tt.want, err)
			}
			if f.reports.Len() != 0 {
				t.Fatalf("期望被拒绝时不写战报")
			}
			if f.kingdom(t, "a").Resources.TurnsBalance != 10 {
				t.Fatalf("期望被拒绝时不扣回合")
			}
		})
	}
}

func TestResolveCombat_回合不足(t *testing.T) {
	f := newFixture()
	k := f.kingdom(t, "a")
	k.Resources.TurnsBalance = 3
	f.kingdoms.Put(*k)
	s := f.service(f.repos())

	_, err := s.ResolveCombat(context.Background(), cavalryRaid())
	if !errors.Is(err, ErrInsufficientResources) {
		t.Fatalf("期望 INSUFFICIENT_RESOURCES, got=%v", err)
	}
	if GetErrorReasonCode(err) != ReasonTurnsInsufficient.Code {
		t.Fatalf("期望 reason 为回合不足, got=%s", GetErrorReasonCode(err))
	}
}

func TestResolveCombat_拥有者本人可以进攻(t *testing.T) {
	f := newFixture()
	s := f.service(f.repos())
	req := cavalryRaid()
	req.ActorUID = 1
	if _, err := s.ResolveCombat(context.Background(), req); err != nil {
		t.Fatalf("err=%v", err)
	}
}

func TestResolveCombat_恢复期内不能进攻(t *testing.T) {
	f := newFixture()
	_ = f.restorations.Create(context.Background(), domain.NewRestoration("a", domain.RestorationDamageBased, fixedNow.Add(-time.Hour)))
	s := f.service(f.repos())

	_, err := s.ResolveCombat(context.Background(), cavalryRaid())
	if !errors.Is(err, ErrRestorationActive) {
		t.Fatalf("期望 RESTORATION_ACTIVE, got=%v", err)
	}
}

func TestResolveCombat_指定地形支持别名(t *testing.T) {
	f := newFixture()
	s := f.service(f.repos())
	req := cavalryRaid()
	req.TerrainID = "Woods"
	req.FormationID = "wedge"

	out, err := s.ResolveCombat(context.Background(), req)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if out.Terrain != "forest" || out.Formation != "aggressive" {
		t.Fatalf("期望别名被规范化, got terrain=%s formation=%s", out.Terrain, out.Formation)
	}
	list, _ := f.reports.ListByPair(context.Background(), "a", "d", 0)
	if len(list) != 1 || list[0].Terrain != "forest" || list[0].AttackType != DefaultAttackType {
		t.Fatalf("期望战报记录规范化后的地形与默认攻击类型, got=%+v", list)
	}
}

func TestResolveCombat_守方无领地时默认平原(t *testing.T) {
	f := newFixture()
	repos := f.repos()
	repos.Territories = emptyTerritories{}
	s := f.service(repos)

	out, err := s.ResolveCombat(context.Background(), cavalryRaid())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if out.Terrain != "plains" {
		t.Fatalf("期望默认 plains, got=%s", out.Terrain)
	}
}

func TestResolveCombat_守方土地触底进入death_based恢复期(t *testing.T) {
	f := newFixture()
	d := f.kingdom(t, "d")
	d.Resources.Land = 1000
	f.kingdoms.Put(*d)
	s := f.service(f.repos())

	out, err := s.ResolveCombat(context.Background(), cavalryRaid())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if out.LandGained != 73 {
		t.Fatalf("期望夺地 floor(1000*0.0735)=73, got=%d", out.LandGained)
	}
	if got := f.kingdom(t, "d").Resources.Land; got != domain.MinLand {
		t.Fatalf("期望守方土地不低于 %d, got=%d", domain.MinLand, got)
	}
	rs := f.restorations.ListByKingdom("d")
	if len(rs) != 1 || rs[0].Kind != domain.RestorationDeathBased {
		t.Fatalf("期望创建 death_based 恢复期, got=%+v", rs)
	}
	if !rs[0].EndTime.Equal(fixedNow.Add(72 * time.Hour)) {
		t.Fatalf("期望恢复期 72h, got end=%v", rs[0].EndTime)
	}
}

func TestResolveCombat_战报写入失败返回内部错误且不做任何结算(t *testing.T) {
	f := newFixture()
	repos := f.repos()
	repos.Reports = &flakyReports{BattleReportRepo: f.reports, failCreate: true}
	s := f.service(repos)

	_, err := s.ResolveCombat(context.Background(), cavalryRaid())
	if !errors.Is(err, ErrInternalServer) {
		t.Fatalf("期望 INTERNAL_ERROR, got=%v", err)
	}
	atk := f.kingdom(t, "a")
	if atk.Units["cavalry"] != 5000 || atk.Resources.TurnsBalance != 10 {
		t.Fatalf("期望战报未落库时不结算, got=%+v", atk)
	}
}

func TestResolveCombat_读取王国技术错误(t *testing.T) {
	f := newFixture()
	repos := f.repos()
	repos.Kingdoms = &flakyKingdoms{KingdomRepo: f.kingdoms, failGet: true}
	s := f.service(repos)

	_, err := s.ResolveCombat(context.Background(), cavalryRaid())
	if !errors.Is(err, ErrInternalServer) {
		t.Fatalf("期望 INTERNAL_ERROR, got=%v", err)
	}
	if !errors.Is(err, errBoom) {
		t.Fatalf("期望保留 cause 链, got=%v", err)
	}
}

func TestResolveCombat_战后副作用失败不影响结果(t *testing.T) {
	f := newFixture()
	repos := f.repos()
	repos.Kingdoms = &flakyKingdoms{KingdomRepo: f.kingdoms, failDeduct: true}
	repos.Territories = &flakyTerritories{TerritoryRepo: f.territories, failUpdate: true}
	s := f.service(repos)

	out, err := s.ResolveCombat(context.Background(), cavalryRaid())
	if err != nil {
		t.Fatalf("期望战后失败不影响响应, err=%v", err)
	}
	if !out.Success {
		t.Fatalf("期望仍返回胜利")
	}
	if got := f.bestEffortFailures(); got != 2 {
		t.Fatalf("期望记录 2 条 best-effort 日志, got=%d", got)
	}
	// 其余步骤照常执行
	if f.kingdom(t, "a").Units["cavalry"] != 4750 {
		t.Fatalf("期望伤亡仍然落库")
	}
}

func TestResolveCombat_幂等键重试返回同一结果(t *testing.T) {
	f := newFixture()
	s := f.service(f.repos())
	req := cavalryRaid()
	req.IdempotencyKey = "req-1"

	first, err := s.ResolveCombat(context.Background(), req)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	second, err := s.ResolveCombat(context.Background(), req)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if first.ReportID != second.ReportID || second.LandGained != first.LandGained {
		t.Fatalf("期望重试返回缓存结果, first=%+v second=%+v", first, second)
	}
	if f.reports.Len() != 1 {
		t.Fatalf("期望只写 1 条战报, got=%d", f.reports.Len())
	}
	if f.kingdom(t, "a").Resources.TurnsBalance != 6 {
		t.Fatalf("期望只扣一次回合")
	}
}

func TestResolveCombat_幂等键处理中返回DUPLICATE_REQUEST(t *testing.T) {
	f := newFixture()
	s := f.service(f.repos())
	if ok, _ := f.idem.Reserve(context.Background(), "a:req-2", time.Minute); !ok {
		t.Fatalf("预占位失败")
	}
	req := cavalryRaid()
	req.IdempotencyKey = "req-2"

	_, err := s.ResolveCombat(context.Background(), req)
	if !errors.Is(err, ErrDuplicateRequest) {
		t.Fatalf("期望 DUPLICATE_REQUEST, got=%v", err)
	}
	if f.reports.Len() != 0 {
		t.Fatalf("期望不写战报")
	}
}

func TestResolveCombat_被拒绝后释放幂等键(t *testing.T) {
	f := newFixture()
	s := f.service(f.repos())
	req := cavalryRaid()
	req.IdempotencyKey = "req-3"
	req.Units = map[string]int64{"cavalry": 9999}

	if _, err := s.ResolveCombat(context.Background(), req); !errors.Is(err, ErrInsufficientResources) {
		t.Fatalf("期望 INSUFFICIENT_RESOURCES, got=%v", err)
	}
	req.Units = map[string]int64{"cavalry": 5000}
	if _, err := s.ResolveCombat(context.Background(), req); err != nil {
		t.Fatalf("期望修正后同一幂等键可以重试, err=%v", err)
	}
}

func TestListReports_分页上限(t *testing.T) {
	f := newFixture()
	s := f.service(f.repos())
	for i := 0; i < 3; i++ {
		_ = f.reports.Create(context.Background(), domain.BattleReport{ID: int64(i + 1), AttackerID: "a", DefenderID: "d", CreatedAt: fixedNow.Add(time.Duration(i) * time.Minute)})
	}
	list, err := s.ListReports(context.Background(), "a", "d", 2)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(list) != 2 || list[0].ID != 3 {
		t.Fatalf("期望返回最新 2 条, got=%+v", list)
	}
	if _, err := s.ListReports(context.Background(), "", "d", 0); !errors.Is(err, ErrMissingParams) {
		t.Fatalf("期望 MISSING_PARAMS, got=%v", err)
	}
}

type emptyTerritories struct{}

func (emptyTerritories) ListByOwner(ctx context.Context, kingdomID string) ([]domain.Territory, error) {
	return nil, nil
}

func (emptyTerritories) UpdateOwner(ctx context.Context, territoryID int64, newOwnerID string) error {
	return domain.ErrTerritoryNotFound
}
