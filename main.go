package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/decker502/clawtrip/pkg/app"
	"github.com/decker502/clawtrip/pkg/config"
	"github.com/decker502/clawtrip/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	// 命令行参数
	verbose       = flag.Bool("verbose", false, "显示详细调试信息")
	assetsDir     = flag.String("assets", config.DefaultAssetsDir, "精灵图片目录")
	tuningPath    = flag.String("tuning", config.TuningConfigPath, "时序参数文件")
	seed          = flag.Uint64("seed", 0, "随机种子（0 表示不可复现的随机源）")
	failChance    = flag.Float64("fail-chance", -1, "覆盖失败概率 [0,1]（负数表示使用配置）")
	reducedMotion = flag.Bool("reduced-motion", false, "路线页文字立即完整显示")
)

func main() {
	flag.Parse()

	// 初始化嵌入的配置
	embedded.Init(dataFS)

	cfg := app.DefaultConfig()
	cfg.Verbose = *verbose
	cfg.AssetsDir = *assetsDir
	cfg.TuningPath = *tuningPath
	cfg.Seed = *seed
	cfg.FailChance = *failChance
	cfg.ReducedMotion = *reducedMotion

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		// 非 verbose 模式下日志已被丢弃，直接写 stderr
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer gameApp.Close()

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(config.GameWindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
