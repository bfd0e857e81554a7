package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClientToLogical(t *testing.T) {
	rect := ScreenRect{Left: 100, Top: 50, Width: 250, Height: 250}

	tests := []struct {
		name         string
		cx, cy       float64
		wantX, wantY float64
	}{
		{"左上角", 100, 50, 0, 0},
		{"右下角", 350, 300, 500, 500},
		{"中心", 225, 175, 250, 250},
		{"画布外", 50, 25, -100, -50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := ClientToLogical(tt.cx, tt.cy, rect, 500)
			assert.True(t, ok)
			assert.InDelta(t, tt.wantX, x, 1e-9)
			assert.InDelta(t, tt.wantY, y, 1e-9)
		})
	}

	_, _, ok := ClientToLogical(10, 10, ScreenRect{}, 500)
	assert.False(t, ok, "空包围盒无法转换")
}

func TestFitCanvas(t *testing.T) {
	tests := []struct {
		name      string
		w, h      int
		wantRect  ScreenRect
		wantScale float64
	}{
		{"等尺寸", 500, 500, ScreenRect{0, 0, 500, 500}, 1},
		{"宽屏取整", 1280, 1100, ScreenRect{140, 50, 1000, 1000}, 2},
		{"非整数倍向下取整", 750, 750, ScreenRect{125, 125, 500, 500}, 1},
		{"小屏按比例缩小", 375, 600, ScreenRect{0, 112.5, 375, 375}, 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rect, scale := FitCanvas(tt.w, tt.h, 500)
			assert.Equal(t, tt.wantRect, rect)
			assert.Equal(t, tt.wantScale, scale)
		})
	}
}

func TestManualClock(t *testing.T) {
	c := NewManualClock()
	start := c.Now()
	c.Advance(1500 * time.Millisecond)
	assert.Equal(t, int64(1500), c.Now().Sub(start).Milliseconds())
}
