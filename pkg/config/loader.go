package config

import (
	"os"

	"github.com/decker502/clawtrip/pkg/embedded"
)

// readConfigFile 读取配置文件
// 嵌入资源已初始化且包含该路径时优先读取嵌入版本，否则从磁盘读取（便于调参时覆盖）
func readConfigFile(path string) ([]byte, error) {
	if embedded.IsInitialized() && embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}
