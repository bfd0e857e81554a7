package config

import (
	"fmt"
	"math"
	"time"

	"gopkg.in/yaml.v3"
)

// GachaTuningConfig 抓娃娃机时序与手感参数
//
// 所有时长以毫秒为单位配置，通过对应的方法转换为 time.Duration。
//
// 配置文件位置: data/gacha_tuning.yaml
type GachaTuningConfig struct {
	// 装饰计时器
	BlinkIntervalMs int `yaml:"blinkIntervalMs"` // 招牌闪烁间隔
	JoystickHoldMs  int `yaml:"joystickHoldMs"`  // 摇杆倾斜保持时间
	ButtonHoldMs    int `yaml:"buttonHoldMs"`    // 按钮按下的视觉保持时间

	// 横向平滑移动：每帧 x += diff * min(SlideSpeed*dt, 1)
	SlideSpeed float64 `yaml:"slideSpeed"` // 每毫秒的收敛系数
	SlideSnap  float64 `yaml:"slideSnap"`  // 差值小于等于此值时直接对齐

	// 抓取流程
	DescendMs   int `yaml:"descendMs"`   // 下降时长
	GrabPauseMs int `yaml:"grabPauseMs"` // 到底后停顿
	AscendMs    int `yaml:"ascendMs"`    // 完整上升时长

	// 失败机制
	FailChance         float64 `yaml:"failChance"`         // 失败概率
	FailAscendFraction float64 `yaml:"failAscendFraction"` // 失败时只上升的比例
	FailDropMs         int     `yaml:"failDropMs"`         // 失败掉落时长
	FailRotationDeg    float64 `yaml:"failRotationDeg"`    // 掉落后的倾斜角度
	FailSettleMs       int     `yaml:"failSettleMs"`       // 掉落后回到 idle 前的停顿

	// 成功出货
	SlideToDropMs int     `yaml:"slideToDropMs"` // 移动到出货口的时长
	SlideSkipEps  float64 `yaml:"slideSkipEps"`  // 已在出货口时跳过移动的阈值
	DropPauseMs   int     `yaml:"dropPauseMs"`   // 出货前停顿
	DropMs        int     `yaml:"dropMs"`        // 出货掉落时长
	DropDistance  float64 `yaml:"dropDistance"`  // 出货掉落距离
	FadeoutMs     int     `yaml:"fadeoutMs"`     // 整体淡出时长
	FadeoutShift  float64 `yaml:"fadeoutShift"`  // 淡出时向上平移的距离

	// 输入
	DragThreshold float64 `yaml:"dragThreshold"` // 摇杆拖拽判定阈值（逻辑坐标）
}

// DefaultGachaTuning 返回默认参数
func DefaultGachaTuning() *GachaTuningConfig {
	return &GachaTuningConfig{
		BlinkIntervalMs:    500,
		JoystickHoldMs:     400,
		ButtonHoldMs:       200,
		SlideSpeed:         0.004,
		SlideSnap:          0.5,
		DescendMs:          2000,
		GrabPauseMs:        600,
		AscendMs:           2500,
		FailChance:         0.35,
		FailAscendFraction: 0.45,
		FailDropMs:         800,
		FailRotationDeg:    45,
		FailSettleMs:       400,
		SlideToDropMs:      800,
		SlideSkipEps:       1,
		DropPauseMs:        300,
		DropMs:             600,
		DropDistance:       200,
		FadeoutMs:          500,
		FadeoutShift:       16,
		DragThreshold:      4,
	}
}

// LoadGachaTuningConfig 加载抓娃娃机参数
//
// 参数:
//   - path: 配置文件路径（如 "data/gacha_tuning.yaml"）
//
// 返回:
//   - *GachaTuningConfig: 加载并验证后的配置；文件中缺失的字段沿用默认值
//   - error: 读取、解析或验证失败
func LoadGachaTuningConfig(path string) (*GachaTuningConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gacha tuning config: %w", err)
	}
	return ParseGachaTuningConfig(data)
}

// ParseGachaTuningConfig 从 YAML 数据解析参数
func ParseGachaTuningConfig(data []byte) (*GachaTuningConfig, error) {
	cfg := DefaultGachaTuning()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse gacha tuning config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gacha tuning config: %w", err)
	}
	return cfg, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 概率在 [0, 1] 内
//   - 失败上升比例在 (0, 1) 内
//   - 所有时长为正数（停顿类可以为 0）
//   - 距离、角度、阈值不为负
func (c *GachaTuningConfig) Validate() error {
	if c.FailChance < 0 || c.FailChance > 1 {
		return fmt.Errorf("failChance must be within [0,1], got %.3f", c.FailChance)
	}
	if c.FailAscendFraction <= 0 || c.FailAscendFraction >= 1 {
		return fmt.Errorf("failAscendFraction must be within (0,1), got %.3f", c.FailAscendFraction)
	}

	positive := map[string]int{
		"blinkIntervalMs": c.BlinkIntervalMs,
		"joystickHoldMs":  c.JoystickHoldMs,
		"buttonHoldMs":    c.ButtonHoldMs,
		"descendMs":       c.DescendMs,
		"ascendMs":        c.AscendMs,
		"failDropMs":      c.FailDropMs,
		"slideToDropMs":   c.SlideToDropMs,
		"dropMs":          c.DropMs,
		"fadeoutMs":       c.FadeoutMs,
	}
	for name, v := range positive {
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %d", name, v)
		}
	}

	nonNegative := map[string]int{
		"grabPauseMs":  c.GrabPauseMs,
		"failSettleMs": c.FailSettleMs,
		"dropPauseMs":  c.DropPauseMs,
	}
	for name, v := range nonNegative {
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, v)
		}
	}

	nonNegativeFloat := map[string]float64{
		"slideSnap":       c.SlideSnap,
		"slideSkipEps":    c.SlideSkipEps,
		"dropDistance":    c.DropDistance,
		"fadeoutShift":    c.FadeoutShift,
		"failRotationDeg": c.FailRotationDeg,
	}
	for name, v := range nonNegativeFloat {
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %.3f", name, v)
		}
	}

	if c.SlideSpeed <= 0 {
		return fmt.Errorf("slideSpeed must be positive, got %.4f", c.SlideSpeed)
	}
	if c.DragThreshold <= 0 {
		return fmt.Errorf("dragThreshold must be positive, got %.1f", c.DragThreshold)
	}
	return nil
}

func ms(v int) time.Duration { return time.Duration(v) * time.Millisecond }

// BlinkInterval 招牌闪烁间隔
func (c *GachaTuningConfig) BlinkInterval() time.Duration { return ms(c.BlinkIntervalMs) }

// JoystickHold 摇杆倾斜保持时间
func (c *GachaTuningConfig) JoystickHold() time.Duration { return ms(c.JoystickHoldMs) }

// ButtonHold 按钮按下视觉保持时间
func (c *GachaTuningConfig) ButtonHold() time.Duration { return ms(c.ButtonHoldMs) }

// Descend 下降时长
func (c *GachaTuningConfig) Descend() time.Duration { return ms(c.DescendMs) }

// GrabPause 到底停顿
func (c *GachaTuningConfig) GrabPause() time.Duration { return ms(c.GrabPauseMs) }

// Ascend 返回上升时长；失败时只走完 FailAscendFraction 比例
func (c *GachaTuningConfig) Ascend(fail bool) time.Duration {
	if fail {
		return time.Duration(math.Round(float64(c.AscendMs) * c.FailAscendFraction * float64(time.Millisecond)))
	}
	return ms(c.AscendMs)
}

// FailDrop 失败掉落时长
func (c *GachaTuningConfig) FailDrop() time.Duration { return ms(c.FailDropMs) }

// FailSettle 失败后停顿
func (c *GachaTuningConfig) FailSettle() time.Duration { return ms(c.FailSettleMs) }

// FailRotation 失败掉落的最终角度（弧度）
func (c *GachaTuningConfig) FailRotation() float64 { return c.FailRotationDeg * math.Pi / 180 }

// SlideToDrop 移动到出货口的时长
func (c *GachaTuningConfig) SlideToDrop() time.Duration { return ms(c.SlideToDropMs) }

// DropPause 出货前停顿
func (c *GachaTuningConfig) DropPause() time.Duration { return ms(c.DropPauseMs) }

// Drop 出货掉落时长
func (c *GachaTuningConfig) Drop() time.Duration { return ms(c.DropMs) }

// Fadeout 整体淡出时长
func (c *GachaTuningConfig) Fadeout() time.Duration { return ms(c.FadeoutMs) }
