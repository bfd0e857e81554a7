package systems

import (
	"math"

	"github.com/decker502/clawtrip/pkg/components"
	"github.com/decker502/clawtrip/pkg/config"
	"github.com/decker502/clawtrip/pkg/utils"
)

// GachaController 输入路由驱动的目标（由 GachaSystem 实现）
type GachaController interface {
	AcceptsInput() bool
	Move(dir components.JoystickDir) bool
	Press() bool
}

// dragState 一次按下到抬起之间的手势
type dragState struct {
	active     bool
	startX     float64
	startY     float64
	onJoystick bool // 按下点在摇杆区域内
	moved      bool // 已经触发过拖拽移动
}

// GachaInputSystem 抓娃娃机输入路由
//
// 把屏幕坐标的指针事件换算到 500×500 逻辑画布，再做点击区域判定：
//   - 点击摇杆左/右半区：移动
//   - 点击按钮：抓取
//   - 在摇杆上水平拖拽超过阈值：每次手势最多移动一次，且抬起时不再当作点击
//
// 状态机不接受输入时（idle/joystickTilt 以外），所有事件都被忽略。
type GachaInputSystem struct {
	target    GachaController
	threshold float64
	canvas    utils.ScreenRect
	drag      dragState
}

// NewGachaInputSystem 创建输入路由
func NewGachaInputSystem(target GachaController, dragThreshold float64) *GachaInputSystem {
	return &GachaInputSystem{target: target, threshold: dragThreshold}
}

// SetCanvasRect 更新画布在屏幕上的位置（窗口尺寸变化时调用）
func (s *GachaInputSystem) SetCanvasRect(rect utils.ScreenRect) {
	s.canvas = rect
}

// HandleEvent 分发指针事件
func (s *GachaInputSystem) HandleEvent(ev utils.PointerEvent) {
	switch ev.Kind {
	case utils.PointerDown:
		s.PointerDown(ev.X, ev.Y)
	case utils.PointerMove:
		s.PointerMove(ev.X, ev.Y)
	case utils.PointerUp:
		s.PointerUp(ev.X, ev.Y)
	}
}

// toLogical 换算到逻辑坐标，画布以外的点返回 false
func (s *GachaInputSystem) toLogical(clientX, clientY float64) (float64, float64, bool) {
	x, y, ok := utils.ClientToLogical(clientX, clientY, s.canvas, config.CanvasSize)
	if !ok || x < 0 || y < 0 || x > config.CanvasSize || y > config.CanvasSize {
		return 0, 0, false
	}
	return x, y, true
}

// PointerDown 按下：记录起点，判断是否按在摇杆上
func (s *GachaInputSystem) PointerDown(clientX, clientY float64) {
	s.drag = dragState{}
	if !s.target.AcceptsInput() {
		return
	}
	x, y, ok := s.toLogical(clientX, clientY)
	if !ok {
		return
	}
	s.drag = dragState{
		active:     true,
		startX:     x,
		startY:     y,
		onJoystick: config.HitJoyLeft.Contains(x, y) || config.HitJoyRight.Contains(x, y),
	}
}

// PointerMove 按住移动：摇杆上的水平拖拽
// 移出画布视为手势取消（任何手势）
func (s *GachaInputSystem) PointerMove(clientX, clientY float64) {
	if !s.drag.active {
		return
	}
	x, _, ok := s.toLogical(clientX, clientY)
	if !ok {
		s.PointerLeave()
		return
	}
	if !s.drag.onJoystick || s.drag.moved || !s.target.AcceptsInput() {
		return
	}

	dx := x - s.drag.startX
	if math.Abs(dx) < s.threshold {
		return
	}
	s.drag.moved = true
	if dx < 0 {
		s.target.Move(components.JoystickLeft)
	} else {
		s.target.Move(components.JoystickRight)
	}
}

// PointerUp 抬起：没有发生拖拽时按点击处理
func (s *GachaInputSystem) PointerUp(clientX, clientY float64) {
	drag := s.drag
	s.drag = dragState{}
	if !drag.active || (drag.onJoystick && drag.moved) {
		return
	}
	if !s.target.AcceptsInput() {
		return
	}
	x, y, ok := s.toLogical(clientX, clientY)
	if !ok {
		return
	}

	// 摇杆左右区域有重叠，左侧优先
	switch {
	case config.HitJoyLeft.Contains(x, y):
		s.target.Move(components.JoystickLeft)
	case config.HitJoyRight.Contains(x, y):
		s.target.Move(components.JoystickRight)
	case config.HitButton.Contains(x, y):
		s.target.Press()
	}
}

// PointerLeave 指针离开画布：丢弃进行中的手势
func (s *GachaInputSystem) PointerLeave() {
	s.drag = dragState{}
}

// HandleKeys 键盘：←/→ 移动，空格/回车 抓取
func (s *GachaInputSystem) HandleKeys(left, right, press bool) {
	if !s.target.AcceptsInput() {
		return
	}
	switch {
	case press:
		s.target.Press()
	case left:
		s.target.Move(components.JoystickLeft)
	case right:
		s.target.Move(components.JoystickRight)
	}
}
