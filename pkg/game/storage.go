package game

import (
	"log"

	"github.com/quasilyte/gdata/v2"
)

// AppName 持久化数据的应用目录名
const AppName = "xmasdrive"

// OpenStorage 打开跨平台存储
// 失败时返回 nil，调用方进入降级模式（仅内存）
func OpenStorage(appName string) *gdata.Manager {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[Storage] Warning: persistent storage unavailable: %v", err)
		return nil
	}
	return m
}
