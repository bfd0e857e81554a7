package game

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// countingFS 统计 Open 调用次数
type countingFS struct {
	fs.FS
	opens atomic.Int32
}

func (c *countingFS) Open(name string) (fs.File, error) {
	c.opens.Add(1)
	return c.FS.Open(name)
}

func waitLoaded(t *testing.T, l *AssetLoader) {
	t.Helper()
	require.Eventually(t, l.Poll, 2*time.Second, time.Millisecond)
}

func TestAssetLoaderLoadsAndToleratesFailures(t *testing.T) {
	fsys := fstest.MapFS{
		"bg.png":       {Data: pngBytes(t, 5, 5)},
		"inside-1.png": {Data: pngBytes(t, 78, 82)},
		"broken.png":   {Data: []byte("not a png")},
	}
	l := NewAssetLoader(fsys)
	l.SetWorkers(2)

	calls := 0
	l.Load(map[string]string{
		"bg":      "bg.png",
		"inside1": "inside-1.png",
		"glass":   "broken.png",
		"missing": "nope.png",
	}, func() { calls++ })

	waitLoaded(t, l)
	assert.Equal(t, 1, calls)
	assert.True(t, l.Done())
	assert.Equal(t, 2, l.Loaded())
	assert.Equal(t, []string{"glass", "missing"}, l.FailedKeys())

	img := l.Image("inside1")
	require.NotNil(t, img)
	assert.Equal(t, image.Rect(0, 0, 78, 82), img.Bounds())
	assert.Nil(t, l.Image("glass"))
	assert.Nil(t, l.Sprite("glass"), "失败的图层没有精灵")
	assert.Nil(t, l.Sprite("unknown"))
}

func TestAssetLoaderIsIdempotent(t *testing.T) {
	fsys := &countingFS{FS: fstest.MapFS{
		"bg.png": {Data: pngBytes(t, 2, 2)},
	}}
	l := NewAssetLoader(fsys)
	sources := map[string]string{"bg": "bg.png"}

	first, second, third := 0, 0, 0
	l.Load(sources, func() { first++ })
	// 加载中重复调用只追加回调
	l.Load(sources, func() { second++ })
	waitLoaded(t, l)

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
	assert.Equal(t, int32(1), fsys.opens.Load())

	// 完成后立即回调，不重新读取
	l.Load(sources, func() { third++ })
	assert.Equal(t, 1, third)
	assert.Equal(t, int32(1), fsys.opens.Load())

	// 回调不会重复触发
	l.Poll()
	assert.Equal(t, 1, first)
}

func TestAssetLoaderPollBeforeLoad(t *testing.T) {
	l := NewAssetLoader(fstest.MapFS{})
	assert.False(t, l.Poll())
	assert.False(t, l.Done())
	assert.Nil(t, l.Sprite("bg"))
}

func TestAssetLoaderEmptySources(t *testing.T) {
	l := NewAssetLoader(fstest.MapFS{})
	done := false
	l.Load(map[string]string{}, func() { done = true })
	waitLoaded(t, l)
	assert.True(t, done)
	assert.Zero(t, l.Loaded())
}
