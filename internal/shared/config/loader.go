package config

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

var mu sync.Mutex

// decodeHook 允许配置里直接写 "10s" 这类时长和逗号分隔的列表。
var decodeHook = viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
	mapstructure.StringToTimeDurationHookFunc(),
	mapstructure.StringToSliceHookFunc(","),
))

func load(configPath string, out any) {
	if !fileExist(configPath) {
		panic(fmt.Sprintf("config file not exist, configPath=%v", configPath))
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	// 环境变量可覆盖同名 key（a.b -> A_B）
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
	v.OnConfigChange(func(e fsnotify.Event) {
		log.Println("配置文件变更", e.Name)
		mu.Lock()
		defer mu.Unlock()
		if err := v.Unmarshal(out, decodeHook); err != nil {
			// 热更新失败保留旧配置，不中断进程
			log.Printf("viper unmarshal change config data failed, err=%v\n", err)
		}
	})
	v.WatchConfig()

	if err := v.ReadInConfig(); err != nil {
		panic(err)
	}
	mu.Lock()
	defer mu.Unlock()
	if err := v.Unmarshal(out, decodeHook); err != nil {
		panic(err)
	}
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
