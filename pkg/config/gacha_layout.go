package config

// 抓娃娃机布局配置
// 本文件定义了抓娃娃机画布中的所有图层位置、槽位参数和点击区域
// 所有坐标使用"逻辑画布坐标系"（固定 500×500，与屏幕实际像素无关）

// Logical canvas configuration (逻辑画布配置)
const (
	// CanvasSize 是逻辑画布的边长（正方形）
	CanvasSize = 500

	// GrabPlushY 是被抓起的娃娃顶部所在的Y坐标（刚好在爪子指尖下方）
	GrabPlushY = 100.0

	// FingersCenterX 是 back 槽位爪子指尖的水平中心
	// 其他槽位在此基础上加上爪子的横向偏移
	FingersCenterX = 297.0

	// GlassAlpha 玻璃面板透明度
	GlassAlpha = 0.10

	// GlassShineAlpha 玻璃高光透明度
	GlassShineAlpha = 0.50
)

// Layer 描述一个精灵图层在逻辑画布中的位置和尺寸
type Layer struct {
	Key string  // 图层标识，如 "inside4"
	Src string  // 图片文件名（相对于素材目录）
	X   float64 // 左上角X
	Y   float64 // 左上角Y
	W   float64 // 绘制宽度
	H   float64 // 绘制高度
}

// Rect 逻辑画布中的轴对齐矩形
type Rect struct {
	X, Y, W, H float64
}

// Contains 判断点是否落在矩形内（边界包含在内）
func (r Rect) Contains(px, py float64) bool {
	return px >= r.X && px <= r.X+r.W &&
		py >= r.Y && py <= r.Y+r.H
}

// LayerRegistry 图层注册表：图层标识 -> 图层
// 启动时构建一次，之后只读
type LayerRegistry struct {
	layers map[string]Layer
	keys   []string // 保持定义顺序，便于按固定顺序加载
}

// NewLayerRegistry 使用给定图层列表构建注册表
// 重复的 key 以后出现的为准
func NewLayerRegistry(layers []Layer) *LayerRegistry {
	r := &LayerRegistry{
		layers: make(map[string]Layer, len(layers)),
		keys:   make([]string, 0, len(layers)),
	}
	for _, l := range layers {
		if _, exists := r.layers[l.Key]; !exists {
			r.keys = append(r.keys, l.Key)
		}
		r.layers[l.Key] = l
	}
	return r
}

// Lookup 按标识查找图层
func (r *LayerRegistry) Lookup(key string) (Layer, bool) {
	l, ok := r.layers[key]
	return l, ok
}

// Keys 返回所有图层标识（定义顺序）
func (r *LayerRegistry) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len 返回图层数量
func (r *LayerRegistry) Len() int {
	return len(r.layers)
}

// Sources 返回 图层标识 -> 图片文件名 映射，供资源加载器使用
func (r *LayerRegistry) Sources() map[string]string {
	out := make(map[string]string, len(r.layers))
	for k, l := range r.layers {
		out[k] = l.Src
	}
	return out
}

// gachaLayers 所有图层的精确像素位置（来自原始像素稿）
var gachaLayers = []Layer{
	// 最底层
	{Key: "bg", Src: "bg.png", X: 0, Y: 0, W: 500, H: 500},
	// 展示柜内的娃娃
	{Key: "inside1", Src: "inside-1.png", X: 211, Y: 138, W: 78, H: 82},
	{Key: "inside2", Src: "inside-2.png", X: 199, Y: 220, W: 82, H: 48},
	{Key: "inside3", Src: "inside-3.png", X: 157, Y: 190, W: 74, H: 76},
	{Key: "inside4", Src: "inside-4.png", X: 258, Y: 181, W: 74, H: 76},
	{Key: "inside5", Src: "inside-5.png", X: 163, Y: 168, W: 82, H: 78},
	{Key: "inside6", Src: "inside-6.png", X: 298, Y: 195, W: 47, H: 74},
	{Key: "inside7", Src: "inside-7.png", X: 155, Y: 185, W: 59, H: 82},
	// 待机爪子（张开，短杆，默认在 back 槽位）
	{Key: "clawOpen", Src: "claw-open.png", X: 275, Y: 74, W: 45, H: 38},
	{Key: "clawHolder", Src: "claw-holder.png", X: 289, Y: 54, W: 17, H: 8},
	{Key: "clawBarShort", Src: "claw-bar-short.png", X: 295, Y: 55, W: 5, H: 29},
	// 抓取状态：各槽位的闭合爪子
	{Key: "grabBackPlush", Src: "claw-back-plush.png", X: 258, Y: 101, W: 74, H: 76},
	{Key: "grabBackBar", Src: "claw-back-bar.png", X: 295, Y: 54, W: 5, H: 27},
	{Key: "grabBackFingers", Src: "claw-back-fingers.png", X: 275, Y: 74, W: 45, H: 40},
	{Key: "grabBackHolder", Src: "claw-back-holder.png", X: 289, Y: 54, W: 17, H: 8},
	{Key: "grabMidPlush", Src: "claw-mid-plush.png", X: 156, Y: 101, W: 74, H: 76},
	{Key: "grabMidBar", Src: "claw-mid-bar.png", X: 193, Y: 54, W: 5, H: 27},
	{Key: "grabMidFingers", Src: "claw-mid-fingers.png", X: 173, Y: 74, W: 45, H: 40},
	{Key: "grabMidHolder", Src: "claw-mid-holder.png", X: 187, Y: 54, W: 17, H: 8},
	{Key: "grabFrontPlush", Src: "claw-front-plush.png", X: 211, Y: 94, W: 78, H: 82},
	{Key: "grabFrontBar", Src: "claw-front-bar.png", X: 248, Y: 54, W: 5, H: 27},
	{Key: "grabFrontFingers", Src: "claw-front-fingers.png", X: 228, Y: 74, W: 45, H: 40},
	{Key: "grabFrontHolder", Src: "claw-front-holder.png", X: 242, Y: 54, W: 17, H: 8},
	// 玻璃
	{Key: "glass", Src: "glass.png", X: 154, Y: 38, W: 192, H: 231},
	{Key: "glassShine", Src: "glass-shine.png", X: 155, Y: 82, W: 190, H: 149},
	// 机身结构
	{Key: "machine", Src: "machine.png", X: 123, Y: 3, W: 254, H: 487},
	{Key: "dither", Src: "dither.png", X: 129, Y: 12, W: 241, H: 465},
	// 招牌文字
	{Key: "gacha1off", Src: "gacha1-off.png", X: 160, Y: 387, W: 119, H: 32},
	{Key: "gacha1on", Src: "gacha1-on.png", X: 160, Y: 387, W: 119, H: 32},
	{Key: "gacha2off", Src: "gacha2-off.png", X: 160, Y: 420, W: 119, H: 32},
	{Key: "gacha2on", Src: "gacha2-on.png", X: 160, Y: 420, W: 119, H: 32},
	// 按钮
	{Key: "btnStandby", Src: "btn-standby.png", X: 306, Y: 306, W: 20, H: 16},
	{Key: "btnPressed", Src: "btn-pressed.png", X: 306, Y: 309, W: 20, H: 13},
	// 摇杆
	{Key: "joyUpStick", Src: "joy-up-stick.png", X: 246, Y: 285, W: 6, H: 30},
	{Key: "joyUpBase", Src: "joy-up-base.png", X: 237, Y: 262, W: 24, H: 24},
	{Key: "joyRightStick", Src: "joy-right-stick.png", X: 246, Y: 289, W: 25, H: 26},
	{Key: "joyRightBase", Src: "joy-right-base.png", X: 265, Y: 271, W: 24, H: 24},
	{Key: "joyLeftStick", Src: "joy-left-stick.png", X: 225, Y: 289, W: 25, H: 26},
	{Key: "joyLeftBase", Src: "joy-left-base.png", X: 207, Y: 271, W: 24, H: 24},
}

// DefaultLayerRegistry 返回内置的完整图层注册表
func DefaultLayerRegistry() *LayerRegistry {
	return NewLayerRegistry(gachaLayers)
}

// PlushDrawOrder 展示柜内娃娃的绘制顺序（从后往前）
var PlushDrawOrder = []string{"inside7", "inside6", "inside5", "inside4", "inside3", "inside2", "inside1"}

// GlassClip 展示柜玻璃视口，掉落中的娃娃被裁剪在此区域内
var GlassClip = Rect{X: 154, Y: 38, W: 192, H: 231}

// Hit areas (点击区域，逻辑画布坐标)
// 摇杆中心约 (249,280)，按钮中心约 (316,314)
var (
	HitJoyLeft  = Rect{X: 155, Y: 235, W: 95, H: 95}
	HitJoyRight = Rect{X: 245, Y: 235, W: 60, H: 95}
	HitButton   = Rect{X: 295, Y: 295, W: 45, H: 45}
)

// SlotSpec 单个爪子槽位的固定参数
type SlotSpec struct {
	Name          string  // 槽位名称
	ClawOffsetX   float64 // 爪子相对 back 槽位的横向偏移
	TargetPlush   string  // 在此槽位能抓到的娃娃
	DescendPixels float64 // 下降距离
	RouteID       string  // 成功后展示的路线
}

// SlotCount 槽位数量
const SlotCount = 3

// Slots 按槽位序号排列：0=back, 1=mid, 2=front
// back 在最右侧，mid 在最左侧，front 居中
var Slots = [SlotCount]SlotSpec{
	{Name: "back", ClawOffsetX: 0, TargetPlush: "inside4", DescendPixels: 75, RouteID: "a"},
	{Name: "mid", ClawOffsetX: -102, TargetPlush: "inside3", DescendPixels: 82, RouteID: "b"},
	{Name: "front", ClawOffsetX: -47, TargetPlush: "inside1", DescendPixels: 35, RouteID: "a"},
}
