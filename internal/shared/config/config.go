package config

import (
	"os"
	"path/filepath"
)

// Load 读取配置文件并反序列化到 out（out 必须是指针）。
//
// 约定：
//  1. cfgName 为绝对路径时直接使用；
//  2. 相对路径先按当前目录拼接，不存在则从当前目录开始逐级向上查找同名相对路径
//     （例如 `configs/conf.yml`），便于在 cmd/xxx 或包目录下跑测试时也能找到。
func Load(cfgName string, out any) {
	if filepath.IsAbs(cfgName) {
		load(cfgName, out)
		return
	}
	curDir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	load(findConfigUpward(curDir, cfgName), out)
}

// LoadIfExist 和 Load 一样，但文件不存在时返回 false 而不是 panic（可选配置，例如战斗规则覆盖文件）。
func LoadIfExist(cfgName string, out any) bool {
	if cfgName == "" {
		return false
	}
	if !filepath.IsAbs(cfgName) {
		curDir, err := os.Getwd()
		if err != nil {
			return false
		}
		p, ok := searchUpward(curDir, cfgName)
		if !ok {
			return false
		}
		cfgName = p
	}
	if !fileExist(cfgName) {
		return false
	}
	load(cfgName, out)
	return true
}

func findConfigUpward(startDir, rel string) string {
	p, ok := searchUpward(startDir, rel)
	if !ok {
		panic("config file not exist, searched " + rel + " from: " + startDir)
	}
	return p
}

func searchUpward(startDir, rel string) (string, bool) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, rel)
		if fileExist(candidate) {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
