package serverconfig

import "time"

const (
	StorageMySQL   = "mysql"
	StorageSQLite  = "sqlite"
	StorageMemory  = "memory"
	StorageMongoDB = "mongodb"
)

const (
	DefaultAttackTurnCost   = 4
	DefaultWarGateThreshold = 3
)

type Config struct {
	MySQL      MySQLConfig      `yaml:"mysql" mapstructure:"mysql"`
	SQLite     SQLiteConfig     `yaml:"sqlite" mapstructure:"sqlite"`
	MongoDB    MongoDBConfig    `yaml:"mongodb" mapstructure:"mongodb"`
	Redis      RedisConfig      `yaml:"redis" mapstructure:"redis"`
	Storage    StorageConfig    `yaml:"storage" mapstructure:"storage"`
	HTTPServer HTTPServerConfig `yaml:"httpserver" mapstructure:"httpserver"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Combat     CombatConfig     `yaml:"combat" mapstructure:"combat"`
	JWTSecret  string           `yaml:"jwt_secret" mapstructure:"jwt_secret"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	Charset  string `yaml:"charset" mapstructure:"charset"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
	ShowSQL  bool   `yaml:"show_sql" mapstructure:"show_sql"`
}

// SQLiteConfig 仅用于本地开发（storage.driver=sqlite）。
type SQLiteConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

type MongoDBConfig struct {
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
}

type RedisConfig struct {
	// URL 为空表示不启用幂等键
	URL             string `yaml:"url" mapstructure:"url"`
	IdempotencyTTLS int    `yaml:"idempotency_ttl_s" mapstructure:"idempotency_ttl_s"`
}

type StorageConfig struct {
	// Driver: mysql/sqlite/memory，决定王国、领地、宣战、恢复期的存储
	Driver string `yaml:"driver" mapstructure:"driver"`
	// BattleReports: mysql/sqlite/memory/mongodb，战报可以单独放到 mongodb
	BattleReports string `yaml:"battle_reports" mapstructure:"battle_reports"`
	// AutoMigrate 启动时是否自动建表（gorm）
	AutoMigrate bool `yaml:"auto_migrate" mapstructure:"auto_migrate"`
}

type HTTPServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
	// ShutdownTimeout 优雅退出等待时长，例如 "10s"
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

type CombatConfig struct {
	AttackTurnCost   int `yaml:"attack_turn_cost" mapstructure:"attack_turn_cost"`
	WarGateThreshold int `yaml:"war_gate_threshold" mapstructure:"war_gate_threshold"`
	// WarGateWindowHours 为 0 表示统计全部历史战报
	WarGateWindowHours int `yaml:"war_gate_window_hours" mapstructure:"war_gate_window_hours"`
	// RulesFile 可选的战斗规则覆盖文件（json/yaml），为空使用内置规则表
	RulesFile string `yaml:"rules_file" mapstructure:"rules_file"`
}
