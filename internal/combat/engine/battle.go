package engine

type BattleInput struct {
	// AttackerUnits 本次出征的真实兵力
	AttackerUnits map[string]int64
	// DefenderUnits 守方持有的全部真实兵力
	DefenderUnits map[string]int64
	DefenderLand  int64
	Context       ModifierInput
}

type BattleResult struct {
	Modifiers          Modifiers
	AttackerEffective  map[string]int64
	DefenderEffective  map[string]int64
	AttackerPower      float64
	DefenderPower      float64
	Outcome            Outcome
	AttackerCasualties map[string]int64
	DefenderCasualties map[string]int64
	LandGained         int64
	GoldLooted         int64
}

// Simulate 跑完整的纯计算流水线：修正 → 战力 → 分档 → 伤亡与奖励。
// 相同输入与相同随机源得到相同结果。
func (r *Resolver) Simulate(in BattleInput, rng RandomSource) BattleResult {
	m := r.Resolve(in.Context)
	atkEff := r.ApplyAttackerModifiers(in.AttackerUnits, m)
	defEff := r.ApplyDefenderModifiers(in.DefenderUnits, m)

	atkPower := r.Power(atkEff, StatAttack, PowerAdjust{})
	defPower := r.Power(defEff, StatDefense, PowerAdjust{})
	outcome := Classify(atkPower, defPower)

	land := LandGained(outcome.Tier, in.DefenderLand, rng)
	return BattleResult{
		Modifiers:          m,
		AttackerEffective:  atkEff,
		DefenderEffective:  defEff,
		AttackerPower:      atkPower,
		DefenderPower:      defPower,
		Outcome:            outcome,
		AttackerCasualties: Casualties(in.AttackerUnits, outcome.AttackerRate),
		DefenderCasualties: Casualties(in.DefenderUnits, outcome.DefenderRate),
		LandGained:         land,
		GoldLooted:         GoldLooted(land),
	}
}
