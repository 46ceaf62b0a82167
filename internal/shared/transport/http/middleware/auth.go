package middleware

import (
	"KingdomWar/internal/shared/security"
	"KingdomWar/internal/shared/transport"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const CtxKeyUID = "uid"

// Auth 校验 Bearer token 并把 uid 写入 gin 上下文。
// enabled=false 时直接放行（身份校验由外部网关负责的部署方式）。
func Auth(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}
		raw := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(raw, "Bearer ")
		if !ok || token == "" {
			transport.SetErrorReason(c.Request.Context(), "AUTH_MISSING_TOKEN")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": transport.Unauthorized, "success": false, "errorCode": "UNAUTHORIZED", "error": "未登录"})
			return
		}
		_, claims, err := security.ParseToken(token)
		if err != nil {
			transport.SetErrorReason(c.Request.Context(), "AUTH_INVALID_TOKEN")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": transport.Unauthorized, "success": false, "errorCode": "UNAUTHORIZED", "error": "登录已失效"})
			return
		}
		c.Set(CtxKeyUID, claims.Uid)
		c.Next()
	}
}

// UIDFrom 读取 Auth 写入的 uid；未启用鉴权时返回 0。
func UIDFrom(c *gin.Context) int {
	v, ok := c.Get(CtxKeyUID)
	if !ok {
		return 0
	}
	uid, _ := v.(int)
	return uid
}
