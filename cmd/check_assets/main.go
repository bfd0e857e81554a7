// Package main 检查抓娃娃机的配置文件和精灵素材是否完整
//
// Usage:
//
//	go run ./cmd/check_assets -assets img/gacha
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/decker502/clawtrip/pkg/config"
	"github.com/decker502/clawtrip/pkg/game"
)

var (
	assetsDir  = flag.String("assets", config.DefaultAssetsDir, "精灵图片目录")
	tuningPath = flag.String("tuning", config.TuningConfigPath, "时序参数文件")
	routesPath = flag.String("routes", config.RouteCatalogPath, "路线目录文件")
	timeout    = flag.Duration("timeout", 30*time.Second, "加载超时")
)

func main() {
	flag.Parse()
	log.SetOutput(io.Discard)

	ok := checkConfigs(os.Stdout, *tuningPath, *routesPath)
	ok = checkSprites(os.Stdout, game.NewAssetLoader(os.DirFS(*assetsDir)), config.DefaultLayerRegistry(), *timeout) && ok
	if !ok {
		os.Exit(1)
	}
}

// checkConfigs 解析并验证配置文件
func checkConfigs(w io.Writer, tuningPath, routesPath string) bool {
	ok := true
	if tuning, err := config.LoadGachaTuningConfig(tuningPath); err != nil {
		fmt.Fprintf(w, "❌ %v\n", err)
		ok = false
	} else {
		fmt.Fprintf(w, "✅ %s: failChance=%.2f\n", tuningPath, tuning.FailChance)
	}

	if routes, err := config.LoadRouteCatalog(routesPath); err != nil {
		fmt.Fprintf(w, "❌ %v\n", err)
		ok = false
	} else {
		fmt.Fprintf(w, "✅ %s: %d 条路线 %v\n", routesPath, len(routes.IDs()), routes.IDs())
	}
	return ok
}

// checkSprites 加载所有图层，报告缺失的图片和尺寸不一致的图片
// 尺寸不一致只是警告：绘制时会缩放到注册的尺寸
func checkSprites(w io.Writer, loader *game.AssetLoader, registry *config.LayerRegistry, timeout time.Duration) bool {
	loader.Load(registry.Sources(), nil)
	deadline := time.Now().Add(timeout)
	for !loader.Poll() {
		if time.Now().After(deadline) {
			fmt.Fprintf(w, "❌ 加载超时 (%s)\n", timeout)
			return false
		}
		time.Sleep(10 * time.Millisecond)
	}

	for _, key := range registry.Keys() {
		layer, _ := registry.Lookup(key)
		img := loader.Image(key)
		if img == nil {
			continue
		}
		b := img.Bounds()
		if float64(b.Dx()) != layer.W || float64(b.Dy()) != layer.H {
			fmt.Fprintf(w, "⚠️  %s (%s): 图片 %dx%d，绘制为 %.0fx%.0f\n", key, layer.Src, b.Dx(), b.Dy(), layer.W, layer.H)
		}
	}

	failed := loader.FailedKeys()
	for _, key := range failed {
		layer, _ := registry.Lookup(key)
		fmt.Fprintf(w, "❌ %s: %s 无法加载\n", key, layer.Src)
	}
	if len(failed) > 0 {
		fmt.Fprintf(w, "❌ %d/%d 个精灵缺失\n", len(failed), registry.Len())
		return false
	}
	fmt.Fprintf(w, "✅ 全部 %d 个精灵加载成功\n", loader.Loaded())
	return true
}
