package main

import (
	"KingdomWar/internal/combat/app"
	rediscache "KingdomWar/internal/combat/infra/cache/redis"
	"KingdomWar/internal/combat/infra/persistence/memory"
	combatmongo "KingdomWar/internal/combat/infra/persistence/mongodb"
	combatmysql "KingdomWar/internal/combat/infra/persistence/mysql"
	"KingdomWar/internal/shared/infrastructure/db"
	inframongo "KingdomWar/internal/shared/infrastructure/mongo"
	infraredis "KingdomWar/internal/shared/infrastructure/redis"
	"KingdomWar/internal/shared/logs"
	"KingdomWar/internal/shared/serverconfig"
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type stores struct {
	repos   app.Repos
	closers []func(context.Context) error
}

func (s *stores) Close(ctx context.Context) {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			logs.Warn("close store failed", zap.Error(err))
		}
	}
}

// openStores 按 storage 配置装配各个端口：王国类数据走 storage.driver，战报可单独走 mongodb，幂等键有 redis 就用 redis。
func openStores(ctx context.Context, cfg serverconfig.Config) (*stores, error) {
	s := &stores{}
	var gdb *gorm.DB
	openGorm := func() (*gorm.DB, error) {
		if gdb != nil {
			return gdb, nil
		}
		g, err := db.Open(cfg)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", cfg.Storage.Driver, err)
		}
		if cfg.Storage.AutoMigrate {
			if err := combatmysql.AutoMigrate(g); err != nil {
				return nil, fmt.Errorf("auto migrate: %w", err)
			}
		}
		sqlDB, err := g.DB()
		if err == nil {
			s.closers = append(s.closers, func(context.Context) error { return sqlDB.Close() })
		}
		gdb = g
		return gdb, nil
	}

	switch cfg.Storage.Driver {
	case serverconfig.StorageMemory:
		logs.Warn("storage.driver=memory, kingdom data is not persisted")
		s.repos.Kingdoms = memory.NewKingdomRepo()
		s.repos.Territories = memory.NewTerritoryRepo()
		s.repos.Wars = memory.NewWarDeclarationRepo()
		s.repos.Restorations = memory.NewRestorationRepo()
	default:
		g, err := openGorm()
		if err != nil {
			s.Close(ctx)
			return nil, err
		}
		s.repos.Kingdoms = combatmysql.NewKingdomRepo(g)
		s.repos.Territories = combatmysql.NewTerritoryRepo(g)
		s.repos.Wars = combatmysql.NewWarDeclarationRepo(g)
		s.repos.Restorations = combatmysql.NewRestorationRepo(g)
	}

	switch cfg.Storage.BattleReports {
	case serverconfig.StorageMongoDB:
		client, err := inframongo.Open(cfg.MongoDB, logs.Logger())
		if err != nil {
			s.Close(ctx)
			return nil, fmt.Errorf("open mongodb: %w", err)
		}
		s.closers = append(s.closers, client.Disconnect)
		repo := combatmongo.NewBattleReportRepo(client.Database(cfg.MongoDB.Database))
		if err := repo.EnsureIndexes(ctx); err != nil {
			logs.Warn("ensure battle_report indexes failed", zap.Error(err))
		}
		s.repos.Reports = repo
	case serverconfig.StorageMemory:
		s.repos.Reports = memory.NewBattleReportRepo()
	default:
		g, err := openGorm()
		if err != nil {
			s.Close(ctx)
			return nil, err
		}
		s.repos.Reports = combatmysql.NewBattleReportRepo(g)
	}

	if cfg.Redis.URL != "" {
		rdb, err := infraredis.Open(cfg.Redis, logs.Logger())
		if err != nil {
			s.Close(ctx)
			return nil, fmt.Errorf("open redis: %w", err)
		}
		s.closers = append(s.closers, func(context.Context) error { return rdb.Close() })
		s.repos.Idempotency = rediscache.NewIdempotencyStore(rdb)
	} else {
		s.repos.Idempotency = memory.NewIdempotencyStore()
	}
	return s, nil
}
