package serverconfig

import (
	"KingdomWar/internal/shared/config"
	"os"
	"time"
)

const defaultConfigRelPath = "configs/conf.yml"

var Conf Config

func Load() {
	config.Load(defaultConfigRelPath, &Conf)
	Conf.applyDefaults()
	// 环境变量优先；若未设置则回填配置中的 jwt_secret，兼容本地开发场景。
	if os.Getenv("JWT_SECRET") == "" && Conf.JWTSecret != "" {
		_ = os.Setenv("JWT_SECRET", Conf.JWTSecret)
	}
}

func (c *Config) applyDefaults() {
	if c.Storage.Driver == "" {
		c.Storage.Driver = StorageMySQL
	}
	if c.Storage.BattleReports == "" {
		c.Storage.BattleReports = c.Storage.Driver
	}
	if c.Combat.AttackTurnCost <= 0 {
		c.Combat.AttackTurnCost = DefaultAttackTurnCost
	}
	if c.Combat.WarGateThreshold <= 0 {
		c.Combat.WarGateThreshold = DefaultWarGateThreshold
	}
	if c.HTTPServer.ShutdownTimeout <= 0 {
		c.HTTPServer.ShutdownTimeout = 10 * time.Second
	}
	if c.Redis.IdempotencyTTLS <= 0 {
		c.Redis.IdempotencyTTLS = 24 * 3600
	}
}
