// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ============================================================================
// 指针跟踪器 - 将鼠标/触摸统一为 按下/移动/抬起 事件
// ============================================================================

// PointerEventKind 指针事件类型
type PointerEventKind int

const (
	// PointerDown 按下
	PointerDown PointerEventKind = iota
	// PointerMove 按住移动
	PointerMove
	// PointerUp 抬起
	PointerUp
)

func (k PointerEventKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	}
	return "unknown"
}

// PointerEvent 指针事件（屏幕坐标）
type PointerEvent struct {
	Kind PointerEventKind
	X, Y float64
	// IsTouch 是否为触摸输入
	IsTouch bool
}

// pointerSample 单帧的原始输入采样
type pointerSample struct {
	// 活动指针是否仍然按下
	pressed bool
	// 本帧新按下的指针（未跟踪时才使用）
	justPressed bool
	x, y        int
	isTouch     bool
	touchID     ebiten.TouchID
}

// PointerTracker 指针跟踪器
//
// 只跟踪一个指针：第一个按下的指针拥有整个手势，
// 在它抬起之前其他触点全部忽略（多点触控不做合并）。
type PointerTracker struct {
	active  bool
	isTouch bool
	touchID ebiten.TouchID
	lastX   int
	lastY   int
}

// NewPointerTracker 创建指针跟踪器
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{touchID: -1}
}

// Poll 读取本帧的 Ebitengine 输入并返回产生的事件（每帧调用一次）
func (pt *PointerTracker) Poll() []PointerEvent {
	return pt.feed(pt.sample())
}

// sample 采集原始输入，优先触摸
func (pt *PointerTracker) sample() pointerSample {
	if pt.active {
		if pt.isTouch {
			for _, id := range ebiten.AppendTouchIDs(nil) {
				if id == pt.touchID {
					x, y := ebiten.TouchPosition(id)
					return pointerSample{pressed: true, x: x, y: y, isTouch: true, touchID: id}
				}
			}
			// 触摸已释放，使用最后位置
			return pointerSample{pressed: false, x: pt.lastX, y: pt.lastY, isTouch: true, touchID: pt.touchID}
		}
		x, y := ebiten.CursorPosition()
		return pointerSample{pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), x: x, y: y}
	}

	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		return pointerSample{justPressed: true, pressed: true, x: x, y: y, isTouch: true, touchID: ids[0]}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return pointerSample{justPressed: true, pressed: true, x: x, y: y, touchID: -1}
	}
	return pointerSample{}
}

// feed 根据采样推进状态并生成事件
func (pt *PointerTracker) feed(s pointerSample) []PointerEvent {
	if !pt.active {
		if !s.justPressed {
			return nil
		}
		pt.active = true
		pt.isTouch = s.isTouch
		pt.touchID = s.touchID
		pt.lastX, pt.lastY = s.x, s.y
		return []PointerEvent{{Kind: PointerDown, X: float64(s.x), Y: float64(s.y), IsTouch: s.isTouch}}
	}

	if !s.pressed {
		pt.Reset()
		return []PointerEvent{{Kind: PointerUp, X: float64(s.x), Y: float64(s.y), IsTouch: s.isTouch}}
	}

	if s.x == pt.lastX && s.y == pt.lastY {
		return nil
	}
	pt.lastX, pt.lastY = s.x, s.y
	return []PointerEvent{{Kind: PointerMove, X: float64(s.x), Y: float64(s.y), IsTouch: s.isTouch}}
}

// Reset 放弃当前手势
func (pt *PointerTracker) Reset() {
	pt.active = false
	pt.isTouch = false
	pt.touchID = -1
}

// Active 是否正在跟踪一个按下的指针
func (pt *PointerTracker) Active() bool {
	return pt.active
}
