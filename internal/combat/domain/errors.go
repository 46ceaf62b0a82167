package domain

import "KingdomWar/modules/kit/errx"

// Code 表示领域错误码。
//
// 约定：
// - 领域层只关心“是什么错”（code）以及“业务上下文”（data）
// - cause 仅用于溯源/日志，不参与对外语义
type Code = errx.Code

const (
	CodeKingdomNotFound        Code = "COMBAT_KINGDOM_NOT_FOUND"
	CodeWarDeclarationNotFound Code = "COMBAT_WAR_DECLARATION_NOT_FOUND"
	CodeRestorationNotFound    Code = "COMBAT_RESTORATION_NOT_FOUND"
	CodeTerritoryNotFound      Code = "COMBAT_TERRITORY_NOT_FOUND"
	// CodeSystemUnavailable 复用 kit 的统一系统码（跨服务一致，便于告警/排障）。
	CodeSystemUnavailable Code = errx.CodeUnavailable
)

type Error = errx.Error

var (
	ErrKingdomNotFound        = errx.NewBiz(CodeKingdomNotFound, "")
	ErrWarDeclarationNotFound = errx.NewBiz(CodeWarDeclarationNotFound, "")
	ErrRestorationNotFound    = errx.NewBiz(CodeRestorationNotFound, "")
	ErrTerritoryNotFound      = errx.NewBiz(CodeTerritoryNotFound, "")
	ErrSystemUnavailable      = errx.ErrUnavailable
)
