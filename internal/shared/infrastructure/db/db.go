package db

import (
	"KingdomWar/internal/shared/serverconfig"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"KingdomWar/internal/shared/logs"
)

const slowQueryThreshold = 200 * time.Millisecond

func gormConfig(showSQL bool) *gorm.Config {
	level := logger.Warn
	if showSQL {
		level = logger.Info
	}
	return &gorm.Config{
		Logger: logs.NewGormLogger(level, slowQueryThreshold),
	}
}

// Open 按 storage.driver 打开关系库：生产用 mysql，本地开发可用 sqlite。
func Open(cfg serverconfig.Config) (*gorm.DB, error) {
	switch cfg.Storage.Driver {
	case serverconfig.StorageSQLite:
		return OpenSQLite(cfg.SQLite)
	default:
		return OpenMySQL(cfg.MySQL)
	}
}

func OpenMySQL(cfg serverconfig.MySQLConfig) (*gorm.DB, error) {
	charset := cfg.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	// username:password@protocol(address)/dbname?charset=utf8mb4&parseTime=True&loc=Local
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		charset,
	)
	db, err := gorm.Open(mysql.Open(dsn), gormConfig(cfg.ShowSQL))
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxConn)
	sqlDB.SetMaxIdleConns(cfg.MaxIdle)

	logs.Info("open mysql success",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("db", cfg.DBName),
		zap.String("user", cfg.User),
	)
	return db, nil
}

func OpenSQLite(cfg serverconfig.SQLiteConfig) (*gorm.DB, error) {
	path := cfg.Path
	if path == "" {
		path = "kingdomwar.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := gorm.Open(sqlite.Open(path), gormConfig(false))
	if err != nil {
		return nil, err
	}
	logs.Info("open sqlite success", zap.String("path", path))
	return db, nil
}
