package systems

import (
	"image"
	"math"

	"github.com/decker502/clawtrip/pkg/components"
	"github.com/decker502/clawtrip/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

// DrawCommand 一次精灵绘制（逻辑画布坐标）
type DrawCommand struct {
	Layer      string
	X, Y, W, H float64
	// Rotation 绕绘制矩形中心旋转（弧度）
	Rotation float64
	Alpha    float64
	// Clip 非空时只在该矩形内可见
	Clip *config.Rect
}

// SpriteSource 按图层标识提供已加载的图片
type SpriteSource interface {
	Sprite(key string) *ebiten.Image
}

// GachaRenderSystem 抓娃娃机渲染系统
//
// 绘制分两步：
//   - BuildFrame 根据会话状态生成有序的绘制命令（纯函数，便于测试）
//   - Draw 把命令提交到 Ebitengine 画布
type GachaRenderSystem struct {
	registry *config.LayerRegistry
}

// NewGachaRenderSystem 创建渲染系统
func NewGachaRenderSystem(registry *config.LayerRegistry) *GachaRenderSystem {
	return &GachaRenderSystem{registry: registry}
}

// frameBuilder 累积一帧的绘制命令
type frameBuilder struct {
	registry *config.LayerRegistry
	cmds     []DrawCommand
}

// layer 在注册位置加偏移处绘制图层，未注册的图层直接跳过
func (b *frameBuilder) layer(key string, dx, dy float64) {
	l, ok := b.registry.Lookup(key)
	if !ok {
		return
	}
	b.cmds = append(b.cmds, DrawCommand{Layer: key, X: l.X + dx, Y: l.Y + dy, W: l.W, H: l.H, Alpha: 1})
}

// alphaLayer 半透明图层
func (b *frameBuilder) alphaLayer(key string, alpha float64) {
	b.layer(key, 0, 0)
	if n := len(b.cmds); n > 0 && b.cmds[n-1].Layer == key {
		b.cmds[n-1].Alpha = alpha
	}
}

// stretchedBar 顶端固定、向下拉伸的吊杆，高度至少 1 像素
func (b *frameBuilder) stretchedBar(key string, dx, dy float64) {
	l, ok := b.registry.Lookup(key)
	if !ok {
		return
	}
	h := math.Max(1, l.H+dy)
	b.cmds = append(b.cmds, DrawCommand{Layer: key, X: l.X + dx, Y: l.Y, W: l.W, H: h, Alpha: 1})
}

// clippedPlush 在玻璃视口内以给定姿态绘制娃娃
func (b *frameBuilder) clippedPlush(key string, x, y, rotation float64) {
	l, ok := b.registry.Lookup(key)
	if !ok {
		return
	}
	clip := config.GlassClip
	b.cmds = append(b.cmds, DrawCommand{
		Layer: key, X: x, Y: y, W: l.W, H: l.H,
		Rotation: rotation, Alpha: 1, Clip: &clip,
	})
}

// BuildFrame 生成一帧的绘制命令
//
// 顺序（后绘制的在上层）：
//
//	背景 → 机身 → 网点 → 出货中的娃娃 → 展示柜娃娃 → 爪子 → 玻璃 → 高光 → 招牌 → 按钮 → 摇杆杆身 → 摇杆底座
func (r *GachaRenderSystem) BuildFrame(state *components.GachaState) []DrawCommand {
	b := &frameBuilder{registry: r.registry, cmds: make([]DrawCommand, 0, 24)}

	b.layer("bg", 0, 0)
	b.layer("machine", 0, 0)
	b.layer("dither", 0, 0)

	// 成功出货的娃娃在展示柜娃娃后面掉下去
	drop := state.Drop
	if drop.Active && !drop.IsFail {
		b.clippedPlush(drop.Plush, drop.X, drop.Y, 0)
	}

	for _, key := range config.PlushDrawOrder {
		switch {
		case key == state.HiddenPlush:
			// 在爪子里
		case drop.Active && key == drop.Plush:
			if drop.IsFail {
				b.clippedPlush(key, drop.X, drop.Y, drop.Rotation)
			}
		default:
			if pose, ok := state.Fallen.Get(key); ok {
				b.clippedPlush(key, pose.X, pose.Y, pose.Rotation)
			} else {
				b.layer(key, 0, 0)
			}
		}
	}

	slideX := state.ClawSlideX
	if state.ShowGrab {
		// 闭合爪子：支架 → 拉伸的吊杆 → 娃娃 → 指尖
		b.layer("grabBackHolder", slideX, 0)
		b.stretchedBar("clawBarShort", slideX, state.GrabY)
		if l, ok := r.registry.Lookup(state.HiddenPlush); ok && state.HiddenPlush != "" {
			b.cmds = append(b.cmds, DrawCommand{
				Layer: l.Key,
				X:     config.FingersCenterX + slideX - l.W/2,
				Y:     config.GrabPlushY + state.GrabY,
				W:     l.W, H: l.H,
				Alpha: 1,
			})
		}
		b.layer("grabBackFingers", slideX, state.GrabY)
	} else {
		b.layer("clawHolder", slideX, 0)
		b.stretchedBar("clawBarShort", slideX, state.ClawY)
		b.layer("clawOpen", slideX, state.ClawY)
	}

	b.alphaLayer("glass", config.GlassAlpha)
	b.alphaLayer("glassShine", config.GlassShineAlpha)

	// 两行招牌交替点亮
	if state.BlinkOn {
		b.layer("gacha1on", 0, 0)
		b.layer("gacha2off", 0, 0)
	} else {
		b.layer("gacha1off", 0, 0)
		b.layer("gacha2on", 0, 0)
	}

	if state.ButtonPressed {
		b.layer("btnPressed", 0, 0)
	} else {
		b.layer("btnStandby", 0, 0)
	}

	// 摇杆：杆在下，底座盖在上面
	switch state.JoystickDir {
	case components.JoystickLeft:
		b.layer("joyLeftStick", 0, 0)
		b.layer("joyLeftBase", 0, 0)
	case components.JoystickRight:
		b.layer("joyRightStick", 0, 0)
		b.layer("joyRightBase", 0, 0)
	default:
		b.layer("joyUpStick", 0, 0)
		b.layer("joyUpBase", 0, 0)
	}

	return b.cmds
}

// Draw 把绘制命令提交到画布
// 缺失的图片（加载失败）直接跳过
func (r *GachaRenderSystem) Draw(dst *ebiten.Image, sprites SpriteSource, cmds []DrawCommand) {
	for _, cmd := range cmds {
		img := sprites.Sprite(cmd.Layer)
		if img == nil {
			continue
		}
		bounds := img.Bounds()
		if bounds.Dx() == 0 || bounds.Dy() == 0 {
			continue
		}

		target := dst
		if cmd.Clip != nil {
			c := cmd.Clip
			rect := image.Rect(int(c.X), int(c.Y), int(c.X+c.W), int(c.Y+c.H))
			target = dst.SubImage(rect).(*ebiten.Image)
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(cmd.W/float64(bounds.Dx()), cmd.H/float64(bounds.Dy()))
		if cmd.Rotation != 0 {
			op.GeoM.Translate(-cmd.W/2, -cmd.H/2)
			op.GeoM.Rotate(cmd.Rotation)
			op.GeoM.Translate(cmd.X+cmd.W/2, cmd.Y+cmd.H/2)
		} else {
			op.GeoM.Translate(cmd.X, cmd.Y)
		}
		op.ColorScale.ScaleAlpha(float32(cmd.Alpha))
		op.Filter = ebiten.FilterNearest
		target.DrawImage(img, op)
	}
}
