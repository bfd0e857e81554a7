package scenes

import (
	"image/color"
	"log"

	"github.com/decker502/clawtrip/pkg/components"
	"github.com/decker502/clawtrip/pkg/config"
	"github.com/decker502/clawtrip/pkg/game"
	"github.com/decker502/clawtrip/pkg/systems"
	"github.com/decker502/clawtrip/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// backdropColor 画布以外区域的颜色
var backdropColor = color.RGBA{R: 0x1b, G: 0x16, B: 0x24, A: 0xff}

// GachaSceneOptions 抓娃娃机场景的依赖
type GachaSceneOptions struct {
	Loader   *game.AssetLoader
	Registry *config.LayerRegistry
	Tuning   *config.GachaTuningConfig
	Clock    utils.Clock
	RNG      systems.RandomSource
	// OnComplete 成功出货并淡出后调用（每个会话一次）
	OnComplete func(routeID string)
}

// GachaScene 抓娃娃机小游戏场景（会话控制器）
//
// 职责：
//   - Start 重置会话，等待精灵加载完成后启动动画循环
//   - 每帧把指针和键盘输入交给输入路由，推进状态机
//   - 在 500×500 离屏画布上绘制，再按窗口大小居中缩放，淡出时整体上移
type GachaScene struct {
	loader   *game.AssetLoader
	registry *config.LayerRegistry
	tuning   *config.GachaTuningConfig

	state    *components.GachaState
	system   *systems.GachaSystem
	renderer *systems.GachaRenderSystem
	input    *systems.GachaInputSystem
	pointer  *utils.PointerTracker

	canvas     *ebiten.Image
	canvasRect utils.ScreenRect
	scale      float64

	ready bool // 精灵已加载，循环已启动
}

// NewGachaScene 创建抓娃娃机场景
func NewGachaScene(opts GachaSceneOptions) *GachaScene {
	if opts.Registry == nil {
		opts.Registry = config.DefaultLayerRegistry()
	}
	if opts.Tuning == nil {
		opts.Tuning = config.DefaultGachaTuning()
	}

	state := components.NewGachaState()
	system := systems.NewGachaSystem(state, opts.Registry, opts.Tuning, opts.Clock, opts.RNG, opts.OnComplete)
	system.OnPhaseChange(func(from, to components.GachaPhase) {
		log.Printf("[GachaScene] Phase %s -> %s", from, to)
	})

	return &GachaScene{
		loader:   opts.Loader,
		registry: opts.Registry,
		tuning:   opts.Tuning,
		state:    state,
		system:   system,
		renderer: systems.NewGachaRenderSystem(opts.Registry),
		input:    systems.NewGachaInputSystem(system, opts.Tuning.DragThreshold),
		pointer:  utils.NewPointerTracker(),
	}
}

// Start 开始一次小游戏会话
// 重复调用会重新开始；精灵只加载一次
func (s *GachaScene) Start() {
	s.ready = false
	s.system.Stop()
	s.state.Reset()
	s.pointer.Reset()
	s.input.PointerLeave()

	s.loader.Load(s.registry.Sources(), func() {
		if n := len(s.loader.FailedKeys()); n > 0 {
			log.Printf("[GachaScene] %d sprites unavailable, drawing without them", n)
		}
		s.system.StartSession()
		s.ready = true
	})
}

// System 返回状态机
func (s *GachaScene) System() *systems.GachaSystem { return s.system }

// OnExit 离开场景时停止动画循环
func (s *GachaScene) OnExit() {
	s.system.Stop()
	s.ready = false
}

// Update 每帧调用
// 动画以时钟的绝对时间推进，deltaTime 不参与计算
func (s *GachaScene) Update(deltaTime float64) {
	s.loader.Poll()
	if !s.ready {
		return
	}

	s.input.SetCanvasRect(s.canvasRect)
	for _, ev := range s.pointer.Poll() {
		s.input.HandleEvent(ev)
	}
	s.input.HandleKeys(
		inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft),
		inpututil.IsKeyJustPressed(ebiten.KeyArrowRight),
		inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter),
	)

	s.system.Update()
}

// Draw 绘制场景
func (s *GachaScene) Draw(screen *ebiten.Image) {
	screen.Fill(backdropColor)

	bounds := screen.Bounds()
	s.canvasRect, s.scale = utils.FitCanvas(bounds.Dx(), bounds.Dy(), config.CanvasSize)

	if !s.ready || s.state.Phase == components.PhaseDone {
		return
	}

	if s.canvas == nil {
		s.canvas = ebiten.NewImage(config.CanvasSize, config.CanvasSize)
	}
	s.canvas.Clear()
	s.renderer.Draw(s.canvas, s.loader, s.renderer.BuildFrame(s.state))

	fade := s.state.FadeProgress
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(s.scale, s.scale)
	op.GeoM.Translate(s.canvasRect.Left, s.canvasRect.Top-s.tuning.FadeoutShift*fade*s.scale)
	op.ColorScale.ScaleAlpha(float32(1 - fade))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(s.canvas, op)
}
