package handler

import (
	"KingdomWar/internal/combat/app"
	"KingdomWar/internal/shared/transport"
	"KingdomWar/modules/kit/errx"
	"KingdomWar/modules/kit/logx"
	"context"
	"errors"
	nethttp "net/http"
)

const msgSystemBusy = "系统繁忙，请稍后重试"

// ClientError 是错误对外呈现的全部内容：不含 cause 和栈。
type ClientError struct {
	Status    int
	BizCode   int
	ErrorCode string
	Message   string
}

func mapBizErr(err error) (status int, bizCode int) {
	switch {
	case errors.Is(err, app.ErrMissingParams):
		return nethttp.StatusBadRequest, transport.MissingParams
	case errors.Is(err, app.ErrInvalidParam):
		return nethttp.StatusBadRequest, transport.InvalidParam
	case errors.Is(err, app.ErrNotFound):
		return nethttp.StatusNotFound, transport.NotFound
	case errors.Is(err, app.ErrInsufficientResources):
		return nethttp.StatusUnprocessableEntity, transport.InsufficientResources
	case errors.Is(err, app.ErrWarRequired):
		return nethttp.StatusConflict, transport.WarRequired
	case errors.Is(err, app.ErrForbidden):
		return nethttp.StatusForbidden, transport.Forbidden
	case errors.Is(err, app.ErrRestorationActive):
		return nethttp.StatusConflict, transport.RestorationActive
	case errors.Is(err, app.ErrDuplicateRequest):
		return nethttp.StatusConflict, transport.DuplicateRequest
	default:
		return nethttp.StatusInternalServerError, transport.SystemError
	}
}

// HandleError 记录一次错误日志并给出对外呈现；每个请求只调用一次。
func HandleError(ctx context.Context, log logx.Logger, action string, err error) ClientError {
	reason := app.GetErrorReasonCode(err)
	if reason == "" {
		reason = string(errx.CodeOf(err))
	}
	transport.SetErrorReason(ctx, reason)

	if errx.IsBiz(err) {
		status, bizCode := mapBizErr(err)
		msg := errx.MsgOf(err, "请求被拒绝")
		logx.ReportBizWithLoggerContext(ctx, log, logx.NewBizLog(action+" reject", reason, msg))
		return ClientError{
			Status:    status,
			BizCode:   bizCode,
			ErrorCode: string(errx.CodeOf(err)),
			Message:   msg,
		}
	}

	logx.ReportSysErrorWithLoggerContext(ctx, log, logx.NewSysLog(action+" tech error", err))
	return ClientError{
		Status:    nethttp.StatusInternalServerError,
		BizCode:   transport.SystemError,
		ErrorCode: string(app.CodeInternalServer),
		Message:   msgSystemBusy,
	}
}
