package scenes

import (
	"github.com/decker502/clawtrip/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

var (
	_ Scene         = (*GachaScene)(nil)
	_ game.Exitable = (*GachaScene)(nil)
	_ Scene         = (*RouteScene)(nil)
)
