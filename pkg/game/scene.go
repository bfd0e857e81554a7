package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a screen of the reveal flow (claw machine, route page).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Exitable 是一个可选接口，场景被切换掉时收到通知
//
// 实现此接口的场景会在以下时机被调用 OnExit()：
//   - SceneManager 切换到另一个场景
//   - 游戏窗口关闭
type Exitable interface {
	// OnExit 停止场景持有的动画循环等后台活动
	OnExit()
}
