package systems

import (
	"math"
	"testing"

	"github.com/decker502/clawtrip/pkg/components"
	"github.com/decker502/clawtrip/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func layerKeys(cmds []DrawCommand) []string {
	keys := make([]string, len(cmds))
	for i, c := range cmds {
		keys[i] = c.Layer
	}
	return keys
}

func findCommand(t *testing.T, cmds []DrawCommand, key string) (DrawCommand, int) {
	t.Helper()
	for i, c := range cmds {
		if c.Layer == key {
			return c, i
		}
	}
	require.Failf(t, "missing layer", "layer %q not drawn", key)
	return DrawCommand{}, -1
}

func TestBuildFrameIdleOrder(t *testing.T) {
	r := NewGachaRenderSystem(config.DefaultLayerRegistry())
	cmds := r.BuildFrame(components.NewGachaState())

	assert.Equal(t, []string{
		"bg", "machine", "dither",
		"inside7", "inside6", "inside5", "inside4", "inside3", "inside2", "inside1",
		"clawHolder", "clawBarShort", "clawOpen",
		"glass", "glassShine",
		"gacha1off", "gacha2on",
		"btnStandby",
		"joyUpStick", "joyUpBase",
	}, layerKeys(cmds))

	glass, _ := findCommand(t, cmds, "glass")
	assert.Equal(t, 0.10, glass.Alpha)
	shine, _ := findCommand(t, cmds, "glassShine")
	assert.Equal(t, 0.50, shine.Alpha)
	bg, _ := findCommand(t, cmds, "bg")
	assert.Equal(t, 1.0, bg.Alpha)
	assert.Nil(t, bg.Clip)
}

func TestBuildFrameDecorations(t *testing.T) {
	r := NewGachaRenderSystem(config.DefaultLayerRegistry())
	state := components.NewGachaState()
	state.BlinkOn = true
	state.ButtonPressed = true
	state.JoystickDir = components.JoystickLeft

	keys := layerKeys(r.BuildFrame(state))
	assert.Contains(t, keys, "gacha1on")
	assert.Contains(t, keys, "gacha2off")
	assert.NotContains(t, keys, "gacha1off")
	assert.NotContains(t, keys, "gacha2on")
	assert.Contains(t, keys, "btnPressed")
	assert.NotContains(t, keys, "btnStandby")
	assert.Contains(t, keys, "joyLeftBase")
	assert.Contains(t, keys, "joyLeftStick")
	assert.NotContains(t, keys, "joyUpStick")

	assert.Equal(t, []string{"joyLeftStick", "joyLeftBase"}, keys[len(keys)-2:], "底座盖在杆上")

	state.JoystickDir = components.JoystickRight
	keys = layerKeys(r.BuildFrame(state))
	assert.Equal(t, []string{"joyRightStick", "joyRightBase"}, keys[len(keys)-2:], "底座盖在杆上")
}

func TestBuildFrameOpenClaw(t *testing.T) {
	tests := []struct {
		name    string
		clawY   float64
		slideX  float64
		barH    float64
		openTop float64
	}{
		{"顶部", 0, 0, 29, 74},
		{"下降中", 30, -102, 59, 104},
		{"吊杆最短1像素", -100, -47, 1, -26},
	}

	r := NewGachaRenderSystem(config.DefaultLayerRegistry())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := components.NewGachaState()
			state.ClawY = tt.clawY
			state.ClawSlideX = tt.slideX
			cmds := r.BuildFrame(state)

			holder, _ := findCommand(t, cmds, "clawHolder")
			assert.Equal(t, 289+tt.slideX, holder.X)
			assert.Equal(t, 54.0, holder.Y, "支架不随下降移动")

			bar, _ := findCommand(t, cmds, "clawBarShort")
			assert.Equal(t, 295+tt.slideX, bar.X)
			assert.Equal(t, 55.0, bar.Y)
			assert.Equal(t, tt.barH, bar.H)

			open, _ := findCommand(t, cmds, "clawOpen")
			assert.Equal(t, 275+tt.slideX, open.X)
			assert.Equal(t, tt.openTop, open.Y)
		})
	}
}

func TestBuildFrameClosedClawCarriesPlush(t *testing.T) {
	r := NewGachaRenderSystem(config.DefaultLayerRegistry())
	state := components.NewGachaState()
	state.ShowGrab = true
	state.HiddenPlush = "inside4"
	state.GrabY = 20
	state.ClawSlideX = -10

	cmds := r.BuildFrame(state)
	keys := layerKeys(cmds)
	assert.NotContains(t, keys, "clawOpen")
	assert.NotContains(t, keys, "clawHolder")

	plush, plushIdx := findCommand(t, cmds, "inside4")
	assert.Equal(t, 297.0-10-37, plush.X)
	assert.Equal(t, 120.0, plush.Y)
	assert.Nil(t, plush.Clip)

	_, holderIdx := findCommand(t, cmds, "grabBackHolder")
	bar, barIdx := findCommand(t, cmds, "clawBarShort")
	fingers, fingersIdx := findCommand(t, cmds, "grabBackFingers")
	assert.Equal(t, 49.0, bar.H)
	assert.Equal(t, 265.0, fingers.X)
	assert.Equal(t, 94.0, fingers.Y)
	assert.True(t, holderIdx < barIdx && barIdx < plushIdx && plushIdx < fingersIdx, "爪子组件的叠放顺序")

	count := 0
	for _, k := range keys {
		if k == "inside4" {
			count++
		}
	}
	assert.Equal(t, 1, count, "被抓住的娃娃不在原位绘制")
}

func TestBuildFrameFallenAndFailDrop(t *testing.T) {
	r := NewGachaRenderSystem(config.DefaultLayerRegistry())
	state := components.NewGachaState()
	state.Fallen.Put(components.FallenPose{Key: "inside3", X: 180, Y: 190, Rotation: math.Pi / 4})
	state.Drop = components.DropState{Active: true, Plush: "inside4", X: 260, Y: 150, Rotation: 0.3, IsFail: true}

	cmds := r.BuildFrame(state)

	fallen, fallenIdx := findCommand(t, cmds, "inside3")
	assert.Equal(t, 180.0, fallen.X)
	assert.Equal(t, 190.0, fallen.Y)
	assert.InDelta(t, math.Pi/4, fallen.Rotation, 1e-9)
	require.NotNil(t, fallen.Clip)
	assert.Equal(t, config.GlassClip, *fallen.Clip)

	dropping, droppingIdx := findCommand(t, cmds, "inside4")
	assert.Equal(t, 150.0, dropping.Y)
	assert.Equal(t, 0.3, dropping.Rotation)
	require.NotNil(t, dropping.Clip)

	// 失败掉落沿用娃娃自己的叠放层级
	assert.Less(t, droppingIdx, fallenIdx)
}

func TestBuildFrameSuccessDropBehindCabinet(t *testing.T) {
	r := NewGachaRenderSystem(config.DefaultLayerRegistry())
	state := components.NewGachaState()
	state.Drop = components.DropState{Active: true, Plush: "inside1", X: 258, Y: 200}

	cmds := r.BuildFrame(state)
	assert.Equal(t, []string{"bg", "machine", "dither", "inside1", "inside7"}, layerKeys(cmds)[:5])

	drop := cmds[3]
	assert.Equal(t, 258.0, drop.X)
	assert.Equal(t, 200.0, drop.Y)
	require.NotNil(t, drop.Clip)

	count := 0
	for _, k := range layerKeys(cmds) {
		if k == "inside1" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestBuildFrameSkipsUnregisteredLayers(t *testing.T) {
	r := NewGachaRenderSystem(config.NewLayerRegistry([]config.Layer{
		{Key: "bg", Src: "bg.png", W: 500, H: 500},
	}))
	state := components.NewGachaState()
	state.ShowGrab = true
	state.HiddenPlush = "inside4"

	assert.Equal(t, []string{"bg"}, layerKeys(r.BuildFrame(state)))
}
