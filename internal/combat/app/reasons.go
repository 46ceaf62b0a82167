package app

type Reason struct {
	Code    string
	Message string
}

func (r Reason) ReasonCode() string {
	return r.Code
}

func NewReason(c, m string) Reason {
	return Reason{
		Code:    c,
		Message: m,
	}
}

var (
	// 业务拒绝 reason：Message 直接作为对外文案。
	ReasonAttackerMissing   = NewReason("ATTACKER_ID_MISSING", "缺少进攻方王国 id")
	ReasonDefenderMissing   = NewReason("DEFENDER_ID_MISSING", "缺少防守方王国 id")
	ReasonUnitsMissing      = NewReason("UNITS_MISSING", "未指定出征兵力")
	ReasonSelfAttack        = NewReason("SELF_ATTACK", "不能攻击自己的王国")
	ReasonUnitCountInvalid  = NewReason("UNIT_COUNT_INVALID", "出征兵力必须为正整数")
	ReasonUnknownUnitType   = NewReason("UNKNOWN_UNIT_TYPE", "王国没有该兵种")
	ReasonUnitsExceedOwned  = NewReason("UNITS_EXCEED_OWNED", "出征兵力超过持有数量")
	ReasonTurnsInsufficient = NewReason("TURNS_INSUFFICIENT", "行动回合不足")
	ReasonAttackerNotFound  = NewReason("ATTACKER_NOT_FOUND", "进攻方王国不存在")
	ReasonDefenderNotFound  = NewReason("DEFENDER_NOT_FOUND", "防守方王国不存在")
	ReasonWarRequired       = NewReason("WAR_REQUIRED", "对同一目标攻击次数过多，需要先正式宣战")
	ReasonNotOwner          = NewReason("NOT_KINGDOM_OWNER", "无权操作该王国")
	ReasonAttackerRestoring = NewReason("ATTACKER_RESTORING", "王国处于恢复期，暂不能发起攻击")
	ReasonRequestInFlight   = NewReason("REQUEST_IN_FLIGHT", "相同请求正在处理中")
)

var (
	// 技术错误 reason（服务内枚举），用于日志与排障。
	ReasonKingdomRepoUnavailable     = NewReason("KINGDOM_REPO_UNAVAILABLE", "王国存储不可用")
	ReasonTerritoryRepoUnavailable   = NewReason("TERRITORY_REPO_UNAVAILABLE", "领地存储不可用")
	ReasonReportRepoUnavailable      = NewReason("BATTLE_REPORT_REPO_UNAVAILABLE", "战报存储不可用")
	ReasonReportWriteFail            = NewReason("BATTLE_REPORT_WRITE_FAIL", "战报写入失败")
	ReasonWarRepoUnavailable         = NewReason("WAR_DECLARATION_REPO_UNAVAILABLE", "宣战存储不可用")
	ReasonRestorationRepoUnavailable = NewReason("RESTORATION_REPO_UNAVAILABLE", "恢复期存储不可用")
	ReasonIdempotencyUnavailable     = NewReason("IDEMPOTENCY_STORE_UNAVAILABLE", "幂等存储不可用")
)
