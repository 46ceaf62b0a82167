package interfaces

import (
	"KingdomWar/internal/combat/interfaces/handler/http"
	transporthttp "KingdomWar/internal/shared/transport/http"
	"KingdomWar/modules/kit/logx"

	"github.com/gin-gonic/gin"
)

type Module struct {
	httpHandler *http.HttpHandler
}

func New(svc http.CombatService, log logx.Logger, authEnabled bool) *Module {
	return &Module{
		httpHandler: http.NewHttpHandler(svc, log, authEnabled),
	}
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	m.httpHandler.RegisterRoutes(g)
}

var _ transporthttp.Registrar = (*Module)(nil)
