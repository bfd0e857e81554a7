// Package app 提供抓娃娃机应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：加载配置、创建加载器和场景，
// 并把小游戏的完成回调接到路线展示场景。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"os"

	"github.com/decker502/clawtrip/pkg/config"
	"github.com/decker502/clawtrip/pkg/game"
	"github.com/decker502/clawtrip/pkg/scenes"
	"github.com/decker502/clawtrip/pkg/systems"
	"github.com/decker502/clawtrip/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// AssetsDir 精灵图片目录
	AssetsDir string
	// TuningPath 时序参数文件
	TuningPath string
	// Seed 非 0 时使用可复现的随机源
	Seed uint64
	// FailChance 大于等于 0 时覆盖配置中的失败概率
	FailChance float64
	// ReducedMotion 路线页的文字立即完整显示
	ReducedMotion bool
}

// DefaultConfig 返回默认启动配置
func DefaultConfig() Config {
	return Config{
		AssetsDir:  config.DefaultAssetsDir,
		TuningPath: config.TuningConfigPath,
		FailChance: -1,
	}
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	gachaScene   *scenes.GachaScene
}

// NewApp 创建并初始化应用
//
// 调用此函数前，应先调用 embedded.Init() 初始化嵌入的配置。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	tuning, err := config.LoadGachaTuningConfig(cfg.TuningPath)
	if err != nil {
		return nil, fmt.Errorf("时序参数加载失败: %w", err)
	}
	if cfg.FailChance >= 0 {
		tuning.FailChance = cfg.FailChance
		if err := tuning.Validate(); err != nil {
			return nil, fmt.Errorf("失败概率无效: %w", err)
		}
	}
	log.Printf("[Config] 失败概率: %.2f", tuning.FailChance)

	routes, err := config.LoadRouteCatalogOrDefault(config.RouteCatalogPath)
	if err != nil {
		log.Printf("[Config] WARNING: %v, using built-in routes", err)
	}
	log.Printf("[Config] 加载 %d 条路线", len(routes.IDs()))

	var rng systems.RandomSource = systems.DefaultRNG()
	if cfg.Seed != 0 {
		rng = systems.NewSeededRNG(cfg.Seed)
		log.Printf("[App] Using seeded RNG: %d", cfg.Seed)
	}

	clock := utils.SystemClock{}
	loader := game.NewAssetLoader(os.DirFS(cfg.AssetsDir))
	sceneManager := game.NewSceneManager()

	a := &App{
		sceneManager: sceneManager,
	}

	a.gachaScene = scenes.NewGachaScene(scenes.GachaSceneOptions{
		Loader:     loader,
		Registry:   config.DefaultLayerRegistry(),
		Tuning:     tuning,
		Clock:      clock,
		RNG:        rng,
		OnComplete: sceneManager.ShowRoute,
	})

	sceneManager.SetSceneFactory(func(routeID string) game.Scene {
		route, err := routes.Get(routeID)
		if err != nil {
			log.Printf("[App] ERROR: %v", err)
			return nil
		}
		scene, err := scenes.NewRouteScene(route, clock, cfg.ReducedMotion, a.replay)
		if err != nil {
			log.Printf("[App] ERROR: %v", err)
			return nil
		}
		return scene
	})

	a.replay()
	return a, nil
}

// replay 回到抓娃娃机并开始新的会话
func (a *App) replay() {
	log.Printf("[App] Starting claw machine session")
	a.sceneManager.SwitchTo(a.gachaScene)
	a.gachaScene.Start()
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 画面已经按整数倍缩放过，这里保持像素清晰
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(offscreen, op)
}

// Layout 使用窗口的实际尺寸，画布的缩放和居中由场景负责
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Close 停止当前场景
func (a *App) Close() {
	if scene, ok := a.sceneManager.GetCurrentScene().(game.Exitable); ok {
		scene.OnExit()
	}
}
