package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLayerRegistry(t *testing.T) {
	reg := DefaultLayerRegistry()

	assert.Equal(t, len(gachaLayers), reg.Len())
	assert.Equal(t, "bg", reg.Keys()[0], "定义顺序应保留")

	bg, ok := reg.Lookup("bg")
	require.True(t, ok)
	assert.Equal(t, Layer{Key: "bg", Src: "bg.png", X: 0, Y: 0, W: 500, H: 500}, bg)

	_, ok = reg.Lookup("nope")
	assert.False(t, ok)

	// 所有图层都在画布内
	for _, key := range reg.Keys() {
		l, _ := reg.Lookup(key)
		assert.GreaterOrEqual(t, l.X, 0.0, key)
		assert.GreaterOrEqual(t, l.Y, 0.0, key)
		assert.LessOrEqual(t, l.X+l.W, float64(CanvasSize), key)
		assert.LessOrEqual(t, l.Y+l.H, float64(CanvasSize), key)
	}
}

func TestSlotsReferenceRegisteredPlushies(t *testing.T) {
	reg := DefaultLayerRegistry()
	for _, slot := range Slots {
		_, ok := reg.Lookup(slot.TargetPlush)
		assert.True(t, ok, "槽位 %s 的娃娃 %s 未注册", slot.Name, slot.TargetPlush)
		assert.Contains(t, PlushDrawOrder, slot.TargetPlush)
	}
	assert.Equal(t, 0.0, Slots[0].ClawOffsetX, "back 槽位为基准位置")
}

func TestLayerRegistrySources(t *testing.T) {
	reg := NewLayerRegistry([]Layer{
		{Key: "a", Src: "a.png"},
		{Key: "b", Src: "b.png"},
		{Key: "a", Src: "a2.png"},
	})

	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []string{"a", "b"}, reg.Keys())
	assert.Equal(t, map[string]string{"a": "a2.png", "b": "b.png"}, reg.Sources())
}

func TestRectContains(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"内部", 300, 300, true},
		{"左上角", 295, 295, true},
		{"右下角", 340, 340, true},
		{"左侧外", 294.9, 300, false},
		{"下方外", 300, 340.1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HitButton.Contains(tt.x, tt.y))
		})
	}
}
