package app

import (
	"KingdomWar/modules/kit/errx"
	"errors"
)

// Code 表示应用层错误码（对外协议里的 errorCode）。
type Code = errx.Code

const (
	CodeMissingParams         Code = "MISSING_PARAMS"
	CodeInvalidParam          Code = "INVALID_PARAM"
	CodeNotFound              Code = "NOT_FOUND"
	CodeInsufficientResources Code = "INSUFFICIENT_RESOURCES"
	CodeWarRequired           Code = "WAR_REQUIRED"
	CodeForbidden             Code = "FORBIDDEN"
	CodeRestorationActive     Code = "RESTORATION_ACTIVE"
	CodeDuplicateRequest      Code = "DUPLICATE_REQUEST"
	// CodeInternalServer 复用 kit 的统一系统码（跨服务一致，便于告警/排障）。
	CodeInternalServer Code = errx.CodeInternal
)

type Error = errx.Error

// NewError 创建业务类错误（不捕获栈）。
func NewError(code Code, msg string) *Error {
	return errx.NewBiz(code, msg)
}

// Wrap 创建系统类错误并挂载 cause（系统错误会在第一次 wrap/转换处捕获一次栈）。
func Wrap(code Code, msg string, cause error) *Error {
	return errx.NewSys(code, msg).WithCause(cause)
}

// 常用错误定义（哨兵错误）：禁止直接修改其 data/cause（通过 WithData/WithCause 派生新对象）。
var (
	ErrMissingParams         = errx.NewBiz(CodeMissingParams, "缺少必要参数")
	ErrInvalidParam          = errx.NewBiz(CodeInvalidParam, "参数不合法")
	ErrNotFound              = errx.NewBiz(CodeNotFound, "王国不存在")
	ErrInsufficientResources = errx.NewBiz(CodeInsufficientResources, "资源不足")
	ErrWarRequired           = errx.NewBiz(CodeWarRequired, "对同一目标攻击次数过多，需要先正式宣战")
	ErrForbidden             = errx.NewBiz(CodeForbidden, "无权操作该王国")
	ErrRestorationActive     = errx.NewBiz(CodeRestorationActive, "王国处于恢复期，暂不能发起攻击")
	ErrDuplicateRequest      = errx.NewBiz(CodeDuplicateRequest, "相同请求正在处理中")
	ErrInternalServer        = errx.ErrInternal
)

// reject 用 reason 的文案替换哨兵的默认文案，错误码不变（errors.Is 仍按码匹配）。
func reject(base *Error, r Reason) *Error {
	return errx.NewBiz(base.Code(), r.Message).WithReason(r)
}

// internal 把仓储等技术错误归一成 INTERNAL_ERROR，cause 只用于日志。
func internal(r Reason, cause error) *Error {
	return ErrInternalServer.WithReason(r).WithCause(cause)
}

// GetErrorReasonCode 沿错误链取 data.reason。
func GetErrorReasonCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason()
	}
	return ""
}
