package systems

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/decker502/clawtrip/pkg/components"
	"github.com/decker502/clawtrip/pkg/config"
	"github.com/decker502/clawtrip/pkg/utils"
)

// ErrUnknownCollectible 掉落开始时找不到娃娃的图层定义
var ErrUnknownCollectible = errors.New("unknown collectible")

// motionStep 抓取流程中的子动画
// 多个子动画可以共享同一个阶段（例如失败后的停顿仍处于 dropping）
type motionStep int

const (
	stepNone motionStep = iota
	stepDescend
	stepGrabPause
	stepAscend
	stepFailDrop
	stepFailSettle
	stepSlide
	stepDropPause
	stepDrop
	stepFadeout
)

// stepPhases 子动画对应的阶段
var stepPhases = map[motionStep]components.GachaPhase{
	stepDescend:    components.PhaseDescending,
	stepGrabPause:  components.PhaseGrabbed,
	stepAscend:     components.PhaseAscending,
	stepFailDrop:   components.PhaseDropping,
	stepFailSettle: components.PhaseDropping,
	stepSlide:      components.PhaseSlideToDrop,
	stepDropPause:  components.PhaseSlideToDrop,
	stepDrop:       components.PhaseDropping,
	stepFadeout:    components.PhaseFadeout,
}

// GachaStats 抓取统计（跨会话累计）
type GachaStats struct {
	Attempts  int
	Successes int
	Fails     int
	Aborts    int
}

// attempt 当前这一次抓取的上下文
type attempt struct {
	slot     config.SlotSpec
	willFail bool
}

// tween 基于绝对时间的补间
type tween struct {
	from, to float64
}

func (t tween) at(p float64) float64 { return utils.Lerp(t.from, t.to, p) }

// GachaSystem 抓娃娃机状态机
//
// 职责：
//   - 处理移动和按下请求（仅 idle/joystickTilt 接受）
//   - 驱动每帧的装饰计时器和横向平滑移动
//   - 按绝对时间推进抓取流程的各个子动画
//   - 成功后触发一次完成回调，携带路线ID
//
// 所有时长动画都用 Clock.Now() 计算进度，帧率变化只影响采样密度，不影响总时长。
type GachaSystem struct {
	state    *components.GachaState
	registry *config.LayerRegistry
	tuning   *config.GachaTuningConfig
	clock    utils.Clock
	rng      RandomSource

	onComplete    func(routeID string)
	onPhaseChange func(from, to components.GachaPhase)

	running   bool
	completed bool
	lastTick  time.Time

	// 当前子动画
	step      motionStep
	stepStart time.Time
	stepDur   time.Duration
	motion    tween // 主补间（爪子Y、横向X或掉落Y）

	current attempt
	lastErr error
	stats   GachaStats
}

// NewGachaSystem 创建状态机
//
// 参数:
//   - state: 会话状态（由状态机独占修改）
//   - registry: 图层注册表
//   - tuning: 时序参数
//   - clock: 时钟，nil 时使用系统时钟
//   - rng: 随机源，nil 时使用默认随机源
//   - onComplete: 成功出货并淡出后调用，每个会话最多一次
func NewGachaSystem(
	state *components.GachaState,
	registry *config.LayerRegistry,
	tuning *config.GachaTuningConfig,
	clock utils.Clock,
	rng RandomSource,
	onComplete func(routeID string),
) *GachaSystem {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	if tuning == nil {
		tuning = config.DefaultGachaTuning()
	}
	return &GachaSystem{
		state:      state,
		registry:   registry,
		tuning:     tuning,
		clock:      clock,
		rng:        rng,
		onComplete: onComplete,
	}
}

// OnPhaseChange 注册阶段变化观察者（调试日志、模拟器统计）
func (s *GachaSystem) OnPhaseChange(fn func(from, to components.GachaPhase)) {
	s.onPhaseChange = fn
}

// State 返回会话状态（只读使用）
func (s *GachaSystem) State() *components.GachaState { return s.state }

// Running 动画循环是否在运行
func (s *GachaSystem) Running() bool { return s.running }

// Completed 本会话是否已经触发过完成回调
func (s *GachaSystem) Completed() bool { return s.completed }

// Stats 返回累计统计
func (s *GachaSystem) Stats() GachaStats { return s.stats }

// LastError 返回最近一次中止抓取的原因
func (s *GachaSystem) LastError() error { return s.lastErr }

// AcceptsInput 当前阶段是否接受输入
func (s *GachaSystem) AcceptsInput() bool { return s.state.Phase.AcceptsInput() }

// StartSession 重置会话状态并启动动画循环
func (s *GachaSystem) StartSession() {
	s.state.Reset()
	s.running = true
	s.completed = false
	s.step = stepNone
	s.lastErr = nil
	s.lastTick = s.clock.Now()
	log.Printf("[GachaSystem] Session started at %s", s.state.Position)
}

// Stop 停止动画循环（宿主离开小游戏时调用）
func (s *GachaSystem) Stop() {
	s.running = false
	s.step = stepNone
}

// Move 摇杆移动
//
// 向左：位置+1；向右：位置-1；超出边界时无效果。
// 返回是否接受了这次移动。
func (s *GachaSystem) Move(dir components.JoystickDir) bool {
	if !s.AcceptsInput() {
		return false
	}

	pos := s.state.Position
	switch dir {
	case components.JoystickLeft:
		if pos >= components.PositionFront {
			return false
		}
		pos++
	case components.JoystickRight:
		if pos <= components.PositionBack {
			return false
		}
		pos--
	default:
		return false
	}

	s.state.Position = pos
	s.setPhase(components.PhaseJoystickTilt)
	s.state.JoystickDir = dir
	s.state.JoystickTimer = s.tuning.JoystickHold()
	s.state.ClawTargetX = pos.Slot().ClawOffsetX
	log.Printf("[GachaSystem] Move %s -> %s", dir, pos)
	return true
}

// Press 按下抓取按钮
//
// 立即对齐到当前槽位，预先决定本次结果（结果在上升结束前不可见），然后开始下降。
// 返回是否开始了新的抓取。
func (s *GachaSystem) Press() bool {
	if !s.AcceptsInput() {
		return false
	}

	slot := s.state.Position.Slot()
	s.state.ClawSlideX = slot.ClawOffsetX
	s.state.ClawTargetX = slot.ClawOffsetX

	s.setPhase(components.PhaseGrabbing)
	s.state.ButtonPressed = true
	s.state.ButtonTimer = s.tuning.ButtonHold()

	s.current = attempt{
		slot:     slot,
		willFail: s.rng.Float64() < s.tuning.FailChance,
	}
	s.stats.Attempts++

	// 之前在这里掉落的娃娃被重新抓起
	if s.state.Fallen.Remove(slot.TargetPlush) {
		log.Printf("[GachaSystem] %s picked up again from the fallen set", slot.TargetPlush)
	}

	log.Printf("[GachaSystem] Press at %s (target=%s)", slot.Name, slot.TargetPlush)
	s.beginStep(stepDescend, s.clock.Now(), tween{from: 0, to: slot.DescendPixels})
	return true
}

// Update 推进一帧
//
// 先运行装饰计时器，再推进当前子动画。
// 返回是否需要重新绘制（动画循环停止后返回 false）。
func (s *GachaSystem) Update() bool {
	if !s.running {
		return false
	}
	now := s.clock.Now()
	dt := now.Sub(s.lastTick)
	if dt < 0 {
		dt = 0
	}
	s.lastTick = now

	s.Tick(dt)
	s.advance(now)
	return true
}

// Tick 装饰计时器：招牌闪烁、摇杆回正、按钮回弹、横向平滑移动
func (s *GachaSystem) Tick(dt time.Duration) {
	st := s.state

	if interval := s.tuning.BlinkInterval(); interval > 0 {
		st.BlinkTimer += dt
		for st.BlinkTimer >= interval {
			st.BlinkTimer -= interval
			st.BlinkOn = !st.BlinkOn
		}
	}

	if st.JoystickDir != components.JoystickNeutral {
		st.JoystickTimer -= dt
		if st.JoystickTimer <= 0 {
			st.JoystickTimer = 0
			st.JoystickDir = components.JoystickNeutral
			if st.Phase == components.PhaseJoystickTilt {
				s.setPhase(components.PhaseIdle)
			}
		}
	}

	if st.ButtonPressed {
		st.ButtonTimer -= dt
		if st.ButtonTimer <= 0 {
			st.ButtonTimer = 0
			st.ButtonPressed = false
		}
	}

	diff := st.ClawTargetX - st.ClawSlideX
	if math.Abs(diff) > s.tuning.SlideSnap {
		dtMs := float64(dt) / float64(time.Millisecond)
		st.ClawSlideX += diff * math.Min(s.tuning.SlideSpeed*dtMs, 1)
	} else {
		st.ClawSlideX = st.ClawTargetX
	}
}

// advance 按绝对时间推进子动画
// 下一个子动画从上一个的理论结束时刻开始，一帧内可以连续完成多个
func (s *GachaSystem) advance(now time.Time) {
	for s.step != stepNone && s.running {
		p := 1.0
		if s.stepDur > 0 {
			p = utils.Clamp01(float64(now.Sub(s.stepStart)) / float64(s.stepDur))
		}
		s.applyStep(p)
		if p < 1 {
			return
		}
		s.finishStep(s.stepStart.Add(s.stepDur))
	}
}

func (s *GachaSystem) beginStep(step motionStep, start time.Time, motion tween) {
	s.step = step
	s.stepStart = start
	s.stepDur = s.stepDuration(step)
	s.motion = motion
	if phase, ok := stepPhases[step]; ok {
		s.setPhase(phase)
	}
}

func (s *GachaSystem) stepDuration(step motionStep) time.Duration {
	switch step {
	case stepDescend:
		return s.tuning.Descend()
	case stepGrabPause:
		return s.tuning.GrabPause()
	case stepAscend:
		return s.tuning.Ascend(s.current.willFail)
	case stepFailDrop:
		return s.tuning.FailDrop()
	case stepFailSettle:
		return s.tuning.FailSettle()
	case stepSlide:
		return s.tuning.SlideToDrop()
	case stepDropPause:
		return s.tuning.DropPause()
	case stepDrop:
		return s.tuning.Drop()
	case stepFadeout:
		return s.tuning.Fadeout()
	}
	return 0
}

// applyStep 按进度 p∈[0,1] 写入子动画的当前值
func (s *GachaSystem) applyStep(p float64) {
	st := s.state
	switch s.step {
	case stepDescend:
		st.ClawY = s.motion.at(utils.EaseInOutQuad(p))
	case stepAscend:
		st.GrabY = s.motion.at(utils.EaseInOutQuad(p))
	case stepFailDrop:
		st.Drop.Y = s.motion.at(utils.EaseOutBounce(p))
		st.Drop.Rotation = s.tuning.FailRotation() * utils.EaseOutQuad(p)
	case stepSlide:
		st.ClawSlideX = s.motion.at(utils.EaseInOutQuad(p))
		st.ClawTargetX = s.motion.to
	case stepDrop:
		st.Drop.Y = s.motion.at(utils.EaseInQuad(p))
	case stepFadeout:
		st.FadeProgress = p
	}
}

// finishStep 子动画结束，进入下一个
func (s *GachaSystem) finishStep(end time.Time) {
	st := s.state
	switch s.step {
	case stepDescend:
		st.ClawY = s.motion.to
		s.beginStep(stepGrabPause, end, tween{})

	case stepGrabPause:
		// 合上爪子，娃娃离开原位
		slot := s.current.slot
		st.HiddenPlush = slot.TargetPlush
		st.Fallen.Remove(slot.TargetPlush)
		st.ShowGrab = true
		st.ClawY = 0
		st.GrabY = slot.DescendPixels

		top := 0.0
		if s.current.willFail {
			top = slot.DescendPixels * (1 - s.tuning.FailAscendFraction)
		}
		s.beginStep(stepAscend, end, tween{from: slot.DescendPixels, to: top})

	case stepAscend:
		st.GrabY = s.motion.to
		if s.current.willFail {
			s.startFailDrop(end)
		} else {
			s.startSlide(end)
		}

	case stepFailDrop:
		st.Drop.Y = s.motion.to
		st.Drop.Rotation = s.tuning.FailRotation()
		st.Fallen.Put(components.FallenPose{
			Key:      st.Drop.Plush,
			X:        st.Drop.X,
			Y:        st.Drop.Y,
			Rotation: st.Drop.Rotation,
		})
		log.Printf("[GachaSystem] Grab failed, %s fell back at (%.0f, %.0f)", st.Drop.Plush, st.Drop.X, st.Drop.Y)
		st.Drop = components.DropState{}
		s.beginStep(stepFailSettle, end, tween{})

	case stepFailSettle:
		st.ShowGrab = false
		st.ClawY = 0
		st.GrabY = 0
		s.step = stepNone
		s.stats.Fails++
		s.setPhase(components.PhaseIdle)

	case stepSlide:
		st.ClawSlideX = s.motion.to
		st.ClawTargetX = s.motion.to
		s.beginStep(stepDropPause, end, tween{})

	case stepDropPause:
		s.startSuccessDrop(end)

	case stepDrop:
		st.Drop = components.DropState{}
		s.beginStep(stepFadeout, end, tween{from: 0, to: 1})

	case stepFadeout:
		st.FadeProgress = 1
		s.finishSession()
	}
}

// startFailDrop 失败：娃娃从爪子位置弹跳着掉回原来的高度并倾斜
func (s *GachaSystem) startFailDrop(start time.Time) {
	st := s.state
	key := st.HiddenPlush
	layer, err := s.collectible(key)
	if err != nil {
		s.abort(err)
		return
	}

	x := config.FingersCenterX + st.ClawSlideX - layer.W/2
	y := config.GrabPlushY + st.GrabY
	st.Drop = components.DropState{Active: true, Plush: key, X: x, Y: y, IsFail: true}
	st.ShowGrab = false
	st.HiddenPlush = ""
	st.ClawY = 0
	s.beginStep(stepFailDrop, start, tween{from: y, to: layer.Y})
}

// startSlide 成功：移动到出货口（back 槽位上方），已经在出货口时跳过移动
func (s *GachaSystem) startSlide(start time.Time) {
	st := s.state
	target := components.PositionBack.Slot().ClawOffsetX
	st.ClawTargetX = target
	if math.Abs(st.ClawSlideX-target) < s.tuning.SlideSkipEps {
		st.ClawSlideX = target
		s.beginStep(stepDropPause, start, tween{})
		return
	}
	s.beginStep(stepSlide, start, tween{from: st.ClawSlideX, to: target})
}

// startSuccessDrop 成功：爪子张开，娃娃掉进出货口
func (s *GachaSystem) startSuccessDrop(start time.Time) {
	st := s.state
	key := st.HiddenPlush
	layer, err := s.collectible(key)
	if err != nil {
		s.abort(err)
		return
	}

	x := config.FingersCenterX + st.ClawSlideX - layer.W/2
	st.Drop = components.DropState{Active: true, Plush: key, X: x, Y: config.GrabPlushY}
	st.ShowGrab = false
	st.HiddenPlush = ""
	st.ClawY = 0
	s.beginStep(stepDrop, start, tween{from: config.GrabPlushY, to: config.GrabPlushY + s.tuning.DropDistance})
}

func (s *GachaSystem) collectible(key string) (config.Layer, error) {
	layer, ok := s.registry.Lookup(key)
	if !ok || key == "" {
		return config.Layer{}, fmt.Errorf("%w: %q", ErrUnknownCollectible, key)
	}
	return layer, nil
}

// abort 中止本次抓取：丢弃掉落，爪子复位，回到 idle
func (s *GachaSystem) abort(err error) {
	log.Printf("[GachaSystem] ERROR: drop aborted: %v", err)
	st := s.state
	st.Drop = components.DropState{}
	st.ShowGrab = false
	st.HiddenPlush = ""
	st.ClawY = 0
	st.GrabY = 0
	s.lastErr = err
	s.step = stepNone
	s.stats.Aborts++
	s.setPhase(components.PhaseIdle)
}

// finishSession 淡出结束：停止循环，进入 done，调用一次完成回调
func (s *GachaSystem) finishSession() {
	s.step = stepNone
	s.running = false
	s.stats.Successes++
	s.setPhase(components.PhaseDone)

	if s.completed {
		return
	}
	s.completed = true
	routeID := s.current.slot.RouteID
	log.Printf("[GachaSystem] Session complete, route=%s", routeID)
	if s.onComplete != nil {
		s.onComplete(routeID)
	}
}

func (s *GachaSystem) setPhase(phase components.GachaPhase) {
	prev := s.state.Phase
	if prev == phase {
		return
	}
	s.state.Phase = phase
	if s.onPhaseChange != nil {
		s.onPhaseChange(prev, phase)
	}
}
