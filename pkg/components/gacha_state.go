package components

import (
	"time"

	"github.com/decker502/clawtrip/pkg/config"
)

// GachaPhase 抓娃娃机状态机阶段
//
// 状态流转：
//
//	idle → joystickTilt → idle
//	idle/joystickTilt → grabbing → descending → grabbed → ascending
//	ascending → slideToDrop → dropping(成功) → fadeout → done
//	ascending → dropping(失败) → idle
type GachaPhase int

const (
	PhaseIdle GachaPhase = iota
	PhaseJoystickTilt
	PhaseGrabbing
	PhaseDescending
	PhaseGrabbed
	PhaseAscending
	PhaseSlideToDrop
	PhaseDropping
	PhaseFadeout
	PhaseDone
)

var phaseNames = [...]string{
	PhaseIdle:         "idle",
	PhaseJoystickTilt: "joystickTilt",
	PhaseGrabbing:     "grabbing",
	PhaseDescending:   "descending",
	PhaseGrabbed:      "grabbed",
	PhaseAscending:    "ascending",
	PhaseSlideToDrop:  "slideToDrop",
	PhaseDropping:     "dropping",
	PhaseFadeout:      "fadeout",
	PhaseDone:         "done",
}

func (p GachaPhase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// AcceptsInput 只有 idle 和 joystickTilt 接受输入（唯一的并发保护）
func (p GachaPhase) AcceptsInput() bool {
	return p == PhaseIdle || p == PhaseJoystickTilt
}

// MachinePosition 爪子所在槽位（有序：back < mid < front）
type MachinePosition int

const (
	PositionBack MachinePosition = iota
	PositionMid
	PositionFront
)

// Slot 返回槽位的固定参数
func (p MachinePosition) Slot() config.SlotSpec {
	return config.Slots[p]
}

func (p MachinePosition) String() string {
	if p < PositionBack || p > PositionFront {
		return "unknown"
	}
	return config.Slots[p].Name
}

// JoystickDir 摇杆方向
type JoystickDir int

const (
	JoystickNeutral JoystickDir = iota
	JoystickLeft
	JoystickRight
)

func (d JoystickDir) String() string {
	switch d {
	case JoystickLeft:
		return "left"
	case JoystickRight:
		return "right"
	}
	return "neutral"
}

// DropState 正在播放的掉落动画参数
type DropState struct {
	Active   bool    // 是否正在掉落
	Plush    string  // 掉落的娃娃
	X, Y     float64 // 当前位置（左上角）
	Rotation float64 // 当前旋转（弧度）
	IsFail   bool    // true: 失败掉回展示柜；false: 成功出货
}

// GachaState 抓娃娃机会话状态
//
// 每次进入小游戏时重置，只由状态机及其子动画修改；
// 渲染器和输入路由只读（输入路由通过状态机修改）。
type GachaState struct {
	Position MachinePosition
	Phase    GachaPhase

	// 装饰计时器
	BlinkOn       bool
	BlinkTimer    time.Duration
	JoystickDir   JoystickDir
	JoystickTimer time.Duration
	ButtonPressed bool
	ButtonTimer   time.Duration

	// 爪子
	ClawY       float64 // 张开爪子的下降偏移（0=顶部）
	GrabY       float64 // 闭合爪子（带娃娃）的下降偏移
	ClawSlideX  float64 // 当前横向偏移（平滑动画中）
	ClawTargetX float64 // 横向目标偏移
	ShowGrab    bool    // 显示闭合爪子+娃娃
	HiddenPlush string  // 被爪子抓住、不在原位绘制的娃娃

	Fallen *FallenSet
	Drop   DropState

	// FadeProgress 淡出进度 0..1
	FadeProgress float64
}

// NewGachaState 创建初始会话状态
func NewGachaState() *GachaState {
	s := &GachaState{}
	s.Reset()
	return s
}

// Reset 重置为会话初始状态（back 槽位，idle）
func (s *GachaState) Reset() {
	*s = GachaState{
		Position: PositionBack,
		Phase:    PhaseIdle,
		Fallen:   NewFallenSet(),
	}
}
