package viewer

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"solar-sim/internal/camera"
	"solar-sim/pkg/physics"
)

const (
	graphW = 360
	graphH = 120

	// bodyPixels converts a body's visual radius to screen pixels.
	bodyPixels  = 16.0
	minBodySize = 2.0
)

var (
	background = color.RGBA{0, 0, 0, 255}
	focusColor = color.RGBA{255, 255, 255, 180}
	arrowColor = color.RGBA{255, 200, 0, 220}
	panelColor = color.RGBA{10, 10, 20, 200}
	labelColor = color.RGBA{220, 220, 220, 255}
	graphColor = color.RGBA{100, 100, 255, 255}
	gridColor  = color.RGBA{40, 40, 60, 120}
)

// Draw renders the latest snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	snap := g.sim.Snapshot()
	center := g.cam.Center(snap)

	// trails
	for i, trail := range g.trails {
		if i >= len(snap.Bodies) {
			break
		}
		c := snap.Bodies[i].Color
		c.A = 110
		for j := 1; j < len(trail); j++ {
			x0, y0 := g.cam.ToScreen(center, trail[j-1])
			x1, y1 := g.cam.ToScreen(center, trail[j])
			vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, c, true)
		}
	}

	// bodies
	for _, b := range snap.Bodies {
		x, y := g.cam.ToScreen(center, b.Pos)
		r := math.Max(b.Radius*bodyPixels, minBodySize)
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(r), b.Color, true)
		if b.ID == g.cam.Focus || b.ID == g.pair {
			vector.StrokeCircle(screen, float32(x), float32(y), float32(r+3), 1.5, focusColor, true)
		}
	}

	if g.cam.Focus != camera.NoFocus && g.pair != camera.NoFocus {
		g.drawPair(screen, center)
	}

	focus := "none"
	if b, ok := snap.Find(g.cam.Focus); ok {
		focus = b.Name
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("Env: %s\nTick: %d  t=%.3f\nPaused: %v\nFocus: %s\nZoom: %.1f",
		snap.Name, snap.Tick, snap.Time, snap.Paused, focus, g.cam.Zoom))

	if g.shortcutsVisible {
		drawShortcuts(screen)
	}
}

func (g *Game) drawPair(screen *ebiten.Image, center physics.Vec2) {
	snap := g.sim.Snapshot()
	a, okA := snap.Find(g.cam.Focus)
	b, okB := snap.Find(g.pair)
	if !okA || !okB {
		return
	}
	x1, y1 := g.cam.ToScreen(center, a.Pos)
	x2, y2 := g.cam.ToScreen(center, b.Pos)
	vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), 1.5, arrowColor, true)

	if f, ok := g.pairForce(); ok {
		label := fmt.Sprintf("F = %.3e", physics.Len(f))
		midX := (x1 + x2) / 2
		midY := (y1 + y2) / 2
		text.Draw(screen, label, basicfont.Face7x13, int(midX)-len(label)*4, int(midY)-6, color.RGBA{255, 255, 200, 255})
	}
	drawGraph(screen, g.forceHistory, g.opts.Width-graphW-16, g.opts.Height-graphH-16)
}

// drawGraph plots data with an auto-scaled Y axis.
func drawGraph(screen *ebiten.Image, data []float64, x, y int) {
	vector.DrawFilledRect(screen, float32(x), float32(y), graphW, graphH, panelColor, false)
	text.Draw(screen, "|F|", basicfont.Face7x13, x+6, y+14, labelColor)
	if len(data) < 2 {
		return
	}

	minV, maxV := data[0], data[0]
	for _, v := range data {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	if minV == maxV {
		minV, maxV = minV-1, maxV+1
	}

	const padding = 6
	gw := float64(graphW - padding*2)
	gh := float64(graphH - padding*2)
	for i := 0; i <= 4; i++ {
		yy := float32(float64(y+padding) + gh*float64(i)/4)
		vector.StrokeLine(screen, float32(x+padding), yy, float32(x+graphW-padding), yy, 1, gridColor, false)
	}

	stepX := gw / float64(len(data)-1)
	var px, py float64
	for i, v := range data {
		nx := float64(x+padding) + stepX*float64(i)
		ny := float64(y+padding) + gh*(1-(v-minV)/(maxV-minV))
		if i > 0 {
			vector.StrokeLine(screen, float32(px), float32(py), float32(nx), float32(ny), 1, graphColor, true)
		}
		px, py = nx, ny
	}
	lbl := fmt.Sprintf("%.3e..%.3e", minV, maxV)
	text.Draw(screen, lbl, basicfont.Face7x13, x+6, y+graphH-6, color.RGBA{180, 180, 200, 180})
}

var shortcuts = []string{
	"P / Space - Pause/Resume",
	"N - Step (when paused)",
	"Click - focus body",
	"Shift+Click - force pair",
	"Tab - cycle focus",
	"Esc - clear focus",
	"Wheel - zoom",
	"Right drag - pan",
	"R - reload",
	"H - hide shortcuts",
}

func drawShortcuts(screen *ebiten.Image) {
	const (
		pad   = 6
		charW = 7
		lineH = 14
		top   = 100
	)
	maxLen := 0
	for _, l := range shortcuts {
		maxLen = max(maxLen, len(l))
	}
	w := maxLen*charW + pad*2
	h := len(shortcuts)*lineH + pad*2
	vector.DrawFilledRect(screen, 12, top, float32(w), float32(h), panelColor, false)
	for i, l := range shortcuts {
		text.Draw(screen, l, basicfont.Face7x13, 12+pad, top+pad+(i+1)*lineH-2, labelColor)
	}
}
