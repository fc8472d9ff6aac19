package tui

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// cellAspect is the height of a terminal cell relative to its width.
const cellAspect = 2.0

// viewport maps world units onto a block of terminal cells.
type viewport struct {
	rect   core.Rect
	sx, sy float64 // Cells per world unit
}

// fitViewport scales a world of worldW x worldH units to the largest block of
// cells that fits in w x h while keeping the world's proportions.
func fitViewport(worldW, worldH float64, w, h int) viewport {
	rows := h
	cols := int(worldW / worldH * float64(rows) * cellAspect)
	if cols > w {
		cols = w
		rows = int(worldH / worldW * float64(cols) / cellAspect)
	}
	cols, rows = max(cols, 1), max(rows, 1)

	return viewport{
		rect: core.NewRect((w-cols)/2, (h-rows)/2, cols, rows),
		sx:   float64(cols) / worldW,
		sy:   float64(rows) / worldH,
	}
}

func (v viewport) col(x float64) int {
	return v.rect.X + int(math.Floor(x*v.sx))
}

func (v viewport) row(y float64) int {
	return v.rect.Y + int(math.Floor(y*v.sy))
}

// cells converts a world box to the cells it covers, clipped to the viewport.
// Any box with positive size covers at least one cell.
func (v viewport) cells(b core.Box) core.Rect {
	x0, y0 := v.col(b.X), v.row(b.Y)
	x1, y1 := v.col(b.Right()), v.row(b.Bottom())
	r := core.NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
	return v.rect.Intersect(r)
}

// Renderer draws snapshots onto a screen buffer.
type Renderer struct {
	cfg    config.Config
	bundle *assets.Bundle
}

// NewRenderer creates a renderer for the given tuning and assets.
func NewRenderer(cfg config.Config, bundle *assets.Bundle) *Renderer {
	return &Renderer{cfg: cfg, bundle: bundle}
}

// Draw renders one frame. The bottom row of the screen is the status line.
func (r *Renderer) Draw(scr *core.Screen, snap flappy.Snapshot) {
	scr.Clear()
	if scr.Width() == 0 || scr.Height() < 2 {
		return
	}

	v := fitViewport(r.cfg.Screen.Width, r.cfg.Screen.Height, scr.Width(), scr.Height()-1)

	r.drawFrame(scr, v)
	r.drawPipes(scr, v, snap.Pairs)
	r.drawGround(scr, v)
	r.drawAvatar(scr, v, snap.Avatar)

	switch snap.Phase {
	case flappy.PhaseWelcome:
		r.drawBanner(scr, v, r.bundle.Sprite(assets.SpriteWelcome), "")
	case flappy.PhasePlaying:
		score := fmt.Sprintf(" %d ", snap.Score)
		scr.DrawText(v.rect.X+(v.rect.W-len(score))/2, v.rect.Y, score, core.ColorWhite)
	case flappy.PhaseGameOver:
		r.drawBanner(scr, v, r.bundle.Sprite(assets.SpriteGameOver), fmt.Sprintf("score %d", snap.Score))
	}

	status := fmt.Sprintf(" score %d   best %d", snap.Score, snap.BestScore)
	scr.DrawText(0, scr.Height()-1, status, core.ColorGray)
}

func (r *Renderer) drawFrame(scr *core.Screen, v viewport) {
	for y := v.rect.Y; y < v.rect.Bottom(); y++ {
		scr.SetColor(v.rect.X-1, y, '│', core.ColorGray)
		scr.SetColor(v.rect.Right(), y, '│', core.ColorGray)
	}
}

func (r *Renderer) drawPipes(scr *core.Screen, v viewport, pairs []flappy.Pair) {
	body := r.bundle.Sprite(assets.SpritePipeBody)
	pipeCap := r.bundle.Sprite(assets.SpritePipeCap)

	for _, p := range pairs {
		for _, seg := range p.Segments(r.cfg.Obstacles.PipeWidth, r.cfg.GroundY()) {
			rect := v.cells(seg.Box)
			if rect.W == 0 || rect.H == 0 {
				continue
			}
			scr.DrawRect(rect, body.Fill(), body.Color)

			// The cap sits on the row facing the gap
			capY := rect.Y
			if seg.Kind == flappy.SegmentUpper {
				capY = rect.Bottom() - 1
			}
			scr.DrawHLine(rect.X, capY, rect.W, pipeCap.Fill(), pipeCap.Color)
		}
	}
}

func (r *Renderer) drawGround(scr *core.Screen, v viewport) {
	ground := r.bundle.Sprite(assets.SpriteGround)
	top := v.row(r.cfg.GroundY())
	rect := v.rect.Intersect(core.NewRect(v.rect.X, top, v.rect.W, v.rect.Bottom()-top))
	scr.DrawRect(rect, ground.Fill(), ground.Color)
}

func (r *Renderer) drawAvatar(scr *core.Screen, v viewport, a flappy.Avatar) {
	sprite := r.bundle.Sprite(assets.SpriteAvatar)
	x, y := v.col(a.X), v.row(a.Y)

	for i, line := range sprite.Lines {
		row := y + i
		if row < v.rect.Y || row >= v.rect.Bottom() {
			continue
		}
		j := 0
		for _, ch := range line {
			if c := x + j; c >= v.rect.X && c < v.rect.Right() {
				scr.SetColor(c, row, ch, sprite.Color)
			}
			j++
		}
	}
}

// drawBanner centers a boxed sprite near the top of the viewport with an
// optional caption below it. The box is left out when it does not fit.
func (r *Renderer) drawBanner(scr *core.Screen, v viewport, banner assets.Sprite, caption string) {
	lines := append([]string(nil), banner.Lines...)
	if caption != "" {
		lines = append(lines, "", caption)
	}

	w := banner.Width() + 4
	if n := len([]rune(caption)) + 4; n > w {
		w = n
	}
	h := len(lines) + 2
	y := v.rect.Y + v.rect.H/5

	if w <= v.rect.W {
		box := core.NewRect(v.rect.X+(v.rect.W-w)/2, y-1, w, h)
		scr.DrawRect(box, ' ', core.ColorDefault)
		scr.DrawBox(box, core.ColorGray)
	}

	for i, line := range lines {
		c := banner.Color
		if i >= banner.Height() {
			c = core.ColorWhite
		}
		drawCentered(scr, v, y+i, line, c)
	}
}

// drawCentered centers text in the viewport, or on the whole screen when the
// viewport is too narrow.
func drawCentered(scr *core.Screen, v viewport, y int, text string, c core.Color) {
	n := len([]rune(text))
	if n > v.rect.W {
		scr.DrawTextCentered(y, text, c)
		return
	}
	scr.DrawText(v.rect.X+(v.rect.W-n)/2, y, text, c)
}
