package scenes

import (
	"bytes"
	"fmt"
	"image/color"
	"log"
	"time"
	"unicode/utf8"

	"github.com/decker502/clawtrip/pkg/config"
	"github.com/decker502/clawtrip/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// 路线展示页参数
const (
	routeCharDelay    = 45 * time.Millisecond // 打字机每个字符的间隔
	routeHeadingSize  = 28
	routeBodySize     = 18
	routeLineHeight   = 26
	routeMargin       = 40
	routeMaxWidth     = 640
	routePhotoHeight  = 90
	routePhotoSpacing = 16
)

var (
	routeTextColor   = color.RGBA{R: 0xf4, G: 0xee, B: 0xe0, A: 0xff}
	routeAccentColor = color.RGBA{R: 0xff, G: 0xc8, B: 0x57, A: 0xff}
	routePhotoFill   = color.RGBA{R: 0x33, G: 0x2b, B: 0x40, A: 0xff}
)

// RouteScene 抓取成功后展示路线
//
// 标题 → 逐字打出的叙述 → 照片占位。
// 减少动态效果时文本立即完整显示。
// 打字过程中点击跳过打字；打完后点击调用 onReplay。
type RouteScene struct {
	route         *config.Route
	clock         utils.Clock
	reducedMotion bool
	onReplay      func()

	headingFace *text.GoTextFace
	bodyFace    *text.GoTextFace
	labelFace   *text.GoTextFace

	start   time.Time
	skipped bool
	total   int // 叙述的字符数
}

// NewRouteScene 创建路线展示场景
func NewRouteScene(route *config.Route, clock utils.Clock, reducedMotion bool, onReplay func()) (*RouteScene, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load route font: %w", err)
	}
	if clock == nil {
		clock = utils.SystemClock{}
	}

	log.Printf("[RouteScene] Showing %s", route.Heading())
	return &RouteScene{
		route:         route,
		clock:         clock,
		reducedMotion: reducedMotion,
		onReplay:      onReplay,
		headingFace:   &text.GoTextFace{Source: src, Size: routeHeadingSize},
		bodyFace:      &text.GoTextFace{Source: src, Size: routeBodySize},
		labelFace:     &text.GoTextFace{Source: src, Size: 14},
		start:         clock.Now(),
		total:         utf8.RuneCountInString(route.Text),
	}, nil
}

// visibleChars 当前应该显示的字符数
func (s *RouteScene) visibleChars() int {
	if s.reducedMotion || s.skipped {
		return s.total
	}
	n := int(s.clock.Now().Sub(s.start) / routeCharDelay)
	if n > s.total {
		return s.total
	}
	return n
}

// TypingDone 叙述是否已经完整显示
func (s *RouteScene) TypingDone() bool {
	return s.visibleChars() >= s.total
}

// Tap 点击：打字中则跳过，否则重玩
func (s *RouteScene) Tap() {
	if !s.TypingDone() {
		s.skipped = true
		return
	}
	if s.onReplay != nil {
		s.onReplay()
	}
}

// Update 每帧调用
func (s *RouteScene) Update(deltaTime float64) {
	tapped := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	if tapped {
		s.Tap()
	}
}

// Draw 绘制场景
func (s *RouteScene) Draw(screen *ebiten.Image) {
	screen.Fill(backdropColor)

	bounds := screen.Bounds()
	width := float64(bounds.Dx()) - 2*routeMargin
	if width > routeMaxWidth {
		width = routeMaxWidth
	}
	left := (float64(bounds.Dx()) - width) / 2
	y := float64(routeMargin)

	for _, line := range utils.WrapText(s.route.Heading(), s.headingFace, width) {
		drawRouteText(screen, line, s.headingFace, left, y, routeAccentColor)
		y += routeHeadingSize * 1.4
	}
	y += routeLineHeight / 2

	body := utils.TypewriterText(s.route.Text, s.visibleChars())
	for _, line := range utils.WrapText(body, s.bodyFace, width) {
		drawRouteText(screen, line, s.bodyFace, left, y, routeTextColor)
		y += routeLineHeight
	}

	if !s.TypingDone() {
		return
	}

	// 照片占位：两列
	y += routeLineHeight
	photoW := (width - routePhotoSpacing) / 2
	for i := range s.route.Photos {
		px := left + float64(i%2)*(photoW+routePhotoSpacing)
		py := y + float64(i/2)*(routePhotoHeight+routePhotoSpacing)
		vector.DrawFilledRect(screen, float32(px), float32(py), float32(photoW), routePhotoHeight, routePhotoFill, false)
		vector.StrokeRect(screen, float32(px), float32(py), float32(photoW), routePhotoHeight, 1, routeAccentColor, false)
		drawRouteText(screen, photoLabel(i), s.labelFace, px+8, py+8, routeTextColor)
	}

	rows := (len(s.route.Photos) + 1) / 2
	hintY := y + float64(rows)*(routePhotoHeight+routePhotoSpacing) + routeLineHeight/2
	drawRouteText(screen, replayHint(), s.labelFace, left, hintY, routeAccentColor)
}

// photoLabel 照片占位的编号标签（从 1 开始）
func photoLabel(i int) string {
	return fmt.Sprintf("Photo %d", i+1)
}

func replayHint() string {
	if utils.IsMobile() {
		return "Tap to play again"
	}
	return "Click or press Space to play again"
}

func drawRouteText(dst *ebiten.Image, str string, face text.Face, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, str, face, op)
}
