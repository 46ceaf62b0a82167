package redis

import (
	"KingdomWar/internal/shared/serverconfig"
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Open 解析 redis URL 并 Ping 一次确认可用。
func Open(cfg serverconfig.RedisConfig, l *zap.Logger) (*goredis.Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("redis url is empty")
	}
	if l == nil {
		l = zap.NewNop()
	}
	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := goredis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	l.Info("open redis success", zap.String("addr", opts.Addr), zap.Int("db", opts.DB))
	return rdb, nil
}
