package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConf struct {
	Combat struct {
		AttackTurnCost int `mapstructure:"attack_turn_cost"`
	} `mapstructure:"combat"`
}

func TestLoad_从子目录向上查找配置(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "configs", "conf.yml"), []byte("combat:\n  attack_turn_cost: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(root, "cmd", "combat")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(sub)

	var c testConf
	Load("configs/conf.yml", &c)
	if c.Combat.AttackTurnCost != 7 {
		t.Fatalf("期望 attack_turn_cost==7, got=%d", c.Combat.AttackTurnCost)
	}
}

func TestLoadIfExist_文件不存在返回false(t *testing.T) {
	t.Chdir(t.TempDir())
	var c testConf
	if LoadIfExist("configs/not_exist.json", &c) {
		t.Fatalf("期望文件不存在时返回 false")
	}
	if LoadIfExist("", &c) {
		t.Fatalf("期望空路径返回 false")
	}
}

func TestLoad_时长与列表解码(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "conf.yml")
	if err := os.WriteFile(p, []byte("httpserver:\n  shutdown_timeout: 15s\n  origins: a.com,b.com\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var c struct {
		HTTPServer struct {
			ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
			Origins         []string      `mapstructure:"origins"`
		} `mapstructure:"httpserver"`
	}
	Load(p, &c)
	if c.HTTPServer.ShutdownTimeout != 15*time.Second {
		t.Fatalf("期望 15s, got=%v", c.HTTPServer.ShutdownTimeout)
	}
	if len(c.HTTPServer.Origins) != 2 || c.HTTPServer.Origins[1] != "b.com" {
		t.Fatalf("期望两个 origin, got=%v", c.HTTPServer.Origins)
	}
}
