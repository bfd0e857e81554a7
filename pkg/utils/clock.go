package utils

import "time"

// Clock 帧时钟抽象
// 所有基于时长的动画都以 Clock.Now() 的绝对时间计算进度，与帧率无关
type Clock interface {
	Now() time.Time
}

// SystemClock 使用系统时间的时钟
type SystemClock struct{}

// Now 返回当前系统时间
func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock 手动推进的时钟
// 用于单元测试和无界面模拟器
type ManualClock struct {
	now time.Time
}

// NewManualClock 创建从固定起点开始的手动时钟
func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now 返回当前时间
func (c *ManualClock) Now() time.Time { return c.now }

// Advance 推进时钟
func (c *ManualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
