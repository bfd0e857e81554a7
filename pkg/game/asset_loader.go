package game

import (
	"fmt"
	"image"
	_ "image/png" // PNG 解码器
	"io/fs"
	"log"
	"sort"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/errgroup"
)

// DefaultDecodeWorkers 并发解码的最大数量
const DefaultDecodeWorkers = 8

type loadState int

const (
	loadIdle loadState = iota
	loadRunning
	loadDone
)

// AssetLoader 抓娃娃机精灵加载器
//
// 从文件系统并发读取并解码所有图层图片。单张图片失败不会中止加载，
// 失败的图层在渲染时直接跳过。
//
// 线程模型：解码在后台 goroutine 中进行；Poll/Sprite/Load 只能在游戏主循环中调用。
// 加载是幂等的：完成后再次调用 Load 会立即回调，不会重新读取。
type AssetLoader struct {
	fsys    fs.FS
	workers int

	state     loadState
	callbacks []func()
	finished  chan struct{}

	// 后台解码写入，finished 关闭后由主循环接管
	mu      sync.Mutex
	pending map[string]image.Image
	errs    map[string]error

	decoded map[string]image.Image
	sprites map[string]*ebiten.Image
	failed  map[string]error
}

// NewAssetLoader 创建加载器
// fsys 为素材目录（例如 os.DirFS("img/gacha")），图层的 Src 相对于此目录
func NewAssetLoader(fsys fs.FS) *AssetLoader {
	return &AssetLoader{
		fsys:    fsys,
		workers: DefaultDecodeWorkers,
		decoded: make(map[string]image.Image),
		sprites: make(map[string]*ebiten.Image),
		failed:  make(map[string]error),
	}
}

// SetWorkers 设置并发解码数量
func (l *AssetLoader) SetWorkers(n int) {
	if n > 0 {
		l.workers = n
	}
}

// Load 开始加载 图层标识 -> 文件名 映射中的所有图片
//
// 全部图片处理完（无论成功失败）后，在下一次 Poll 中调用 done。
// 已经加载完成时立即调用 done；加载中重复调用只追加回调。
func (l *AssetLoader) Load(sources map[string]string, done func()) {
	switch l.state {
	case loadDone:
		if done != nil {
			done()
		}
		return
	case loadRunning:
		if done != nil {
			l.callbacks = append(l.callbacks, done)
		}
		return
	}

	if done != nil {
		l.callbacks = append(l.callbacks, done)
	}
	l.state = loadRunning
	l.finished = make(chan struct{})
	l.pending = make(map[string]image.Image, len(sources))
	l.errs = make(map[string]error)

	log.Printf("[AssetLoader] Loading %d sprites", len(sources))
	go l.decodeAll(sources)
}

// decodeAll 后台并发解码
func (l *AssetLoader) decodeAll(sources map[string]string) {
	defer close(l.finished)

	var g errgroup.Group
	g.SetLimit(l.workers)
	for key, src := range sources {
		g.Go(func() error {
			img, err := decodeImage(l.fsys, src)
			l.mu.Lock()
			defer l.mu.Unlock()
			if err != nil {
				l.errs[key] = err
				return nil
			}
			l.pending[key] = img
			return nil
		})
	}
	// 单张失败记录在 errs 中，不向上传播
	_ = g.Wait()
}

func decodeImage(fsys fs.FS, path string) (image.Image, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// Poll 检查后台加载是否完成（每帧调用）
// 完成时接管解码结果并依次调用所有回调，返回 true
func (l *AssetLoader) Poll() bool {
	switch l.state {
	case loadDone:
		return true
	case loadIdle:
		return false
	}

	select {
	case <-l.finished:
	default:
		return false
	}

	l.mu.Lock()
	for key, img := range l.pending {
		l.decoded[key] = img
	}
	for key, err := range l.errs {
		l.failed[key] = err
	}
	l.pending, l.errs = nil, nil
	l.mu.Unlock()

	for _, key := range l.FailedKeys() {
		log.Printf("[AssetLoader] WARNING: %s: %v", key, l.failed[key])
	}
	log.Printf("[AssetLoader] Loaded %d sprites, %d failed", len(l.decoded), len(l.failed))

	l.state = loadDone
	callbacks := l.callbacks
	l.callbacks = nil
	for _, cb := range callbacks {
		cb()
	}
	return true
}

// Done 是否已经加载完成
func (l *AssetLoader) Done() bool { return l.state == loadDone }

// Loaded 成功加载的图片数量
func (l *AssetLoader) Loaded() int { return len(l.decoded) }

// FailedKeys 加载失败的图层（排序后）
func (l *AssetLoader) FailedKeys() []string {
	keys := make([]string, 0, len(l.failed))
	for k := range l.failed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Image 返回解码后的原始图片，不存在时返回 nil
func (l *AssetLoader) Image(key string) image.Image {
	return l.decoded[key]
}

// Sprite 返回图层的 Ebitengine 图片，加载失败或不存在时返回 nil
// 首次访问时才上传到 GPU
func (l *AssetLoader) Sprite(key string) *ebiten.Image {
	if img, ok := l.sprites[key]; ok {
		return img
	}
	src, ok := l.decoded[key]
	if !ok {
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	l.sprites[key] = img
	return img
}
