package config

// 窗口配置
const (
	// GameWindowWidth 默认窗口宽度
	GameWindowWidth = 750

	// GameWindowHeight 默认窗口高度
	GameWindowHeight = 750

	// GameWindowTitle 窗口标题
	GameWindowTitle = "AI Travel Quiz - Gacha"

	// TuningConfigPath 默认参数文件
	TuningConfigPath = "data/gacha_tuning.yaml"

	// RouteCatalogPath 默认路线目录
	RouteCatalogPath = "data/routes.yaml"

	// DefaultAssetsDir 默认精灵素材目录
	DefaultAssetsDir = "img/gacha"
)
