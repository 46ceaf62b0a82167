package main

import (
	"KingdomWar/internal/combat/app"
	"KingdomWar/internal/combat/engine"
	"KingdomWar/internal/combat/interfaces"
	"KingdomWar/internal/shared/gameconfig/combat"
	"KingdomWar/internal/shared/logs"
	"KingdomWar/internal/shared/security"
	"KingdomWar/internal/shared/serverconfig"
	transporthttp "KingdomWar/internal/shared/transport/http"
	"KingdomWar/internal/shared/utils"
	"KingdomWar/modules/kit/logx"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	serverconfig.Load()
	conf := serverconfig.Conf
	if err := logs.Init("combat", conf.Log); err != nil {
		panic(err)
	}
	defer logs.Sync()
	logs.Info("conf", zap.Any("storage", conf.Storage), zap.Any("combat", conf.Combat))

	host := conf.HTTPServer.Host
	if host == "" {
		host = "0.0.0.0"
	}
	addr := fmt.Sprintf("%s:%d", host, conf.HTTPServer.Port)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, conf)
	if err != nil {
		logs.Fatal("open stores failed", zap.Error(err))
	}

	sf, err := utils.DefaultSnowflake()
	if err != nil {
		logs.Fatal("init snowflake failed", zap.Error(err))
	}

	rules := combat.Load(conf.Combat.RulesFile)
	baseLogger := logx.NewZapLogger(logs.Logger())
	rng := engine.NewLockedSource(rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)))

	svc := app.NewCombatService(st.repos, engine.NewResolver(rules), rng, baseLogger, app.Options{
		AttackTurnCost:   int64(conf.Combat.AttackTurnCost),
		WarGateThreshold: int64(conf.Combat.WarGateThreshold),
		WarGateWindow:    time.Duration(conf.Combat.WarGateWindowHours) * time.Hour,
		IdempotencyTTL:   time.Duration(conf.Redis.IdempotencyTTLS) * time.Second,
		NextID:           sf.NextID,
	})

	if !security.Enabled() {
		logs.Warn("jwt_secret not configured, attacker ownership is not checked")
	}

	if !conf.Log.Dev {
		gin.SetMode(gin.ReleaseMode)
	}
	engineGin := gin.New()
	engineGin.Use(gin.Recovery())
	httpServer := transporthttp.NewHttpServer(addr, engineGin, baseLogger)
	httpModules := []transporthttp.Registrar{
		interfaces.New(svc, baseLogger, security.Enabled()),
	}
	for _, m := range httpModules {
		m.HttpRegister(httpServer.Group())
	}

	errCh := make(chan error, 1)
	go func() {
		logs.Info("combat server listening", zap.String("addr", addr), zap.String("rules", rules.Title))
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("combat server start failed: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		if err != nil {
			logs.Error("服务异常退出", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), conf.HTTPServer.ShutdownTimeout)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
	st.Close(shutdownCtx)
}
