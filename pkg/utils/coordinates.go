// Package utils 提供游戏开发中常用的工具函数
//
// coordinates.go 提供逻辑画布与屏幕坐标之间的转换。
//
// # 坐标系统概述
//
//   - **逻辑画布坐标**：固定 500×500，所有图层和点击区域都定义在此坐标系中
//   - **屏幕坐标**：相对于游戏窗口左上角（Ebitengine Layout 返回的外部尺寸）
//   - **画布矩形**：逻辑画布在屏幕上的包围盒（居中、等比缩放）
//
// 坐标转换只依赖画布在屏幕上的包围盒，与设备像素比无关。
package utils

import "math"

// ScreenRect 屏幕上的矩形（画布包围盒）
type ScreenRect struct {
	Left, Top, Width, Height float64
}

// Contains 判断屏幕点是否在矩形内
func (r ScreenRect) Contains(x, y float64) bool {
	return x >= r.Left && x <= r.Left+r.Width &&
		y >= r.Top && y <= r.Top+r.Height
}

// ClientToLogical 将屏幕坐标转换为逻辑画布坐标
//
// 参数：
//   - clientX, clientY: 屏幕坐标
//   - rect: 画布在屏幕上的包围盒
//   - logicalSize: 逻辑画布边长
//
// 返回：
//   - x, y: 逻辑坐标
//   - ok: 包围盒无效（宽或高为0）时为 false
func ClientToLogical(clientX, clientY float64, rect ScreenRect, logicalSize float64) (x, y float64, ok bool) {
	if rect.Width <= 0 || rect.Height <= 0 {
		return 0, 0, false
	}
	x = (clientX - rect.Left) * logicalSize / rect.Width
	y = (clientY - rect.Top) * logicalSize / rect.Height
	return x, y, true
}

// FitCanvas 计算逻辑画布在屏幕上的包围盒
//
// 画布保持正方形并居中。屏幕足够大时缩放倍数取整，保证像素画清晰
// （小于 1 倍时按比例缩小）。
func FitCanvas(screenW, screenH int, logicalSize float64) (rect ScreenRect, scale float64) {
	side := math.Min(float64(screenW), float64(screenH))
	scale = side / logicalSize
	if scale >= 1 {
		scale = math.Floor(scale)
	}
	size := logicalSize * scale
	rect = ScreenRect{
		Left:   (float64(screenW) - size) / 2,
		Top:    (float64(screenH) - size) / 2,
		Width:  size,
		Height: size,
	}
	return rect, scale
}
