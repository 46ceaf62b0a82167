package dto

import "KingdomWar/internal/combat/domain"

// Response 统一响应体：成功带 data，失败带 errorCode/error，不带任何结算字段。
type Response struct {
	Code      int    `json:"code"`
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	ErrorCode string `json:"errorCode,omitempty"`
	Error     string `json:"error,omitempty"`
}

func Success(code int, data any) Response {
	return Response{Code: code, Success: true, Data: data}
}

func Error(code int, errorCode, msg string) Response {
	return Response{Code: code, Success: false, ErrorCode: errorCode, Error: msg}
}

type ReportsQuery struct {
	AttackerID string `form:"attackerId"`
	DefenderID string `form:"defenderId"`
	Limit      int    `form:"limit"`
}

type ReportsResp struct {
	Reports []domain.BattleReport `json:"reports"`
}
