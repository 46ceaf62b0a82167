package transport

// BizCode 表示业务码的强类型封装，用于在日志上下文中减少误传风险。
type BizCode int

// 客户端业务码：0 成功；1~499 业务拒绝（access 日志 WARN）；>=500 技术错误（ERROR）。
const (
	OK                    = 0
	InvalidParam          = 1
	MissingParams         = 2
	NotFound              = 3
	InsufficientResources = 4
	WarRequired           = 5
	Forbidden             = 6
	RestorationActive     = 7
	DuplicateRequest      = 8
	Unauthorized          = 9

	SystemError         = 500
	UpstreamUnavailable = 503
)
