package http

import (
	"KingdomWar/internal/combat/app"
	"KingdomWar/internal/combat/app/model"
	"KingdomWar/internal/combat/domain"
	"KingdomWar/internal/combat/interfaces/handler"
	"KingdomWar/internal/combat/interfaces/handler/http/dto"
	"KingdomWar/internal/shared/transport"
	"KingdomWar/internal/shared/transport/http/middleware"
	"KingdomWar/modules/kit/logx"
	"context"
	nethttp "net/http"

	"github.com/gin-gonic/gin"
)

const HeaderIdempotencyKey = "Idempotency-Key"

type CombatService interface {
	ResolveCombat(ctx context.Context, req model.AttackRequest) (*model.CombatOutcome, error)
	ListReports(ctx context.Context, attackerID, defenderID string, limit int) ([]domain.BattleReport, error)
}

type HttpHandler struct {
	svc         CombatService
	log         logx.Logger
	authEnabled bool
}

func NewHttpHandler(svc CombatService, log logx.Logger, authEnabled bool) *HttpHandler {
	return &HttpHandler{svc: svc, log: log, authEnabled: authEnabled}
}

func (h *HttpHandler) RegisterRoutes(group *gin.RouterGroup) {
	combatGroup := group.Group("/combat", middleware.Auth(h.authEnabled))
	combatGroup.POST("/attack", h.Attack)
	combatGroup.GET("/reports", h.ListReports)
}

// Attack 结算成功（含 failed 档位）都返回 code=0，只有被拒绝或系统错误才带 errorCode。
func (h *HttpHandler) Attack(c *gin.Context) {
	ctx := c.Request.Context()

	var req model.AttackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(ctx, c, app.ErrInvalidParam.WithData("bind", err.Error()))
		return
	}
	req.IdempotencyKey = c.GetHeader(HeaderIdempotencyKey)
	req.ActorUID = middleware.UIDFrom(c)

	outcome, err := h.svc.ResolveCombat(ctx, req)
	if err != nil {
		h.fail(ctx, c, err)
		return
	}
	h.ok(c, outcome)
}

func (h *HttpHandler) ListReports(c *gin.Context) {
	ctx := c.Request.Context()

	var q dto.ReportsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.fail(ctx, c, app.ErrInvalidParam.WithData("bind", err.Error()))
		return
	}
	list, err := h.svc.ListReports(ctx, q.AttackerID, q.DefenderID, q.Limit)
	if err != nil {
		h.fail(ctx, c, err)
		return
	}
	h.ok(c, dto.ReportsResp{Reports: list})
}

func (h *HttpHandler) ok(c *gin.Context, data any) {
	c.JSON(nethttp.StatusOK, dto.Success(transport.OK, data))
}

func (h *HttpHandler) fail(ctx context.Context, c *gin.Context, err error) {
	ce := handler.HandleError(ctx, h.log, c.Request.Method+" "+c.FullPath(), err)
	c.JSON(ce.Status, dto.Error(ce.BizCode, ce.ErrorCode, ce.Message))
}
