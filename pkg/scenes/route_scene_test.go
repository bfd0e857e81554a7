package scenes

import (
	"testing"
	"time"

	"github.com/decker502/clawtrip/pkg/config"
	"github.com/decker502/clawtrip/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoute(t *testing.T, id string) *config.Route {
	t.Helper()
	route, err := config.DefaultRouteCatalog().Get(id)
	require.NoError(t, err)
	return route
}

func TestRouteSceneTyping(t *testing.T) {
	clock := utils.NewManualClock()
	replays := 0
	s, err := NewRouteScene(testRoute(t, "a"), clock, false, func() { replays++ })
	require.NoError(t, err)

	assert.Equal(t, 0, s.visibleChars())
	clock.Advance(10 * routeCharDelay)
	assert.Equal(t, 10, s.visibleChars())
	assert.False(t, s.TypingDone())

	// 打字中点击：跳过
	s.Tap()
	assert.True(t, s.TypingDone())
	assert.Zero(t, replays)

	// 打完后点击：重玩
	s.Tap()
	assert.Equal(t, 1, replays)
}

func TestRouteSceneTypingFinishesByItself(t *testing.T) {
	clock := utils.NewManualClock()
	route := testRoute(t, "b")
	s, err := NewRouteScene(route, clock, false, nil)
	require.NoError(t, err)

	clock.Advance(time.Duration(len(route.Text)) * routeCharDelay)
	assert.True(t, s.TypingDone())
	assert.Equal(t, s.total, s.visibleChars())

	// 没有重玩回调时点击不做任何事
	s.Tap()
}

func TestRouteSceneReducedMotion(t *testing.T) {
	s, err := NewRouteScene(testRoute(t, "a"), utils.NewManualClock(), true, nil)
	require.NoError(t, err)
	assert.True(t, s.TypingDone(), "减少动态效果时文本立即完整显示")
}

func TestRoutePhotoLabelsNumbered(t *testing.T) {
	route := testRoute(t, "b")
	labels := make([]string, len(route.Photos))
	for i := range route.Photos {
		labels[i] = photoLabel(i)
	}
	assert.Equal(t, []string{"Photo 1", "Photo 2", "Photo 3", "Photo 4"}, labels)
}
