// Package camera maps between world and screen coordinates for the viewers.
// It holds all zoom, pan and focus state; the simulation never sees it.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"solar-sim/pkg/physics"
	"solar-sim/pkg/simulation"
)

// Zoom limits, in screen units per world unit.
const (
	MinZoom     = 0.5
	MaxZoom     = 500.0
	DefaultZoom = 40.0
)

// NoFocus means the camera is not tracking a body.
const NoFocus = -1

// Camera is a 2D view onto the simulation plane. Screen Y grows downwards.
type Camera struct {
	Width, Height int
	Zoom          float64
	// Aspect stretches X, for character cells that are taller than wide.
	Aspect float64
	// Offset is added to the focus position, in world units.
	Offset physics.Vec2
	Focus  int
}

// New returns a camera centered on the origin.
func New(width, height int) *Camera {
	return &Camera{
		Width:  width,
		Height: height,
		Zoom:   DefaultZoom,
		Aspect: 1,
		Focus:  NoFocus,
	}
}

// ZoomBy scales the zoom by 1.1 per step; negative steps zoom out.
func (c *Camera) ZoomBy(steps float64) {
	c.Zoom = math.Min(MaxZoom, math.Max(MinZoom, c.Zoom*math.Pow(1.1, steps)))
}

// Pan moves the view by a screen-space drag.
func (c *Camera) Pan(dx, dy float64) {
	c.Offset.X -= dx / (c.Zoom * c.aspect())
	c.Offset.Y += dy / c.Zoom
}

// Center is the world point shown in the middle of the screen.
func (c *Camera) Center(snap simulation.Snapshot) physics.Vec2 {
	if c.Focus != NoFocus {
		if b, ok := snap.Find(c.Focus); ok {
			return r2.Add(b.Pos, c.Offset)
		}
	}
	return c.Offset
}

// ToScreen projects p for a view centered on center.
func (c *Camera) ToScreen(center, p physics.Vec2) (x, y float64) {
	x = float64(c.Width)/2 + (p.X-center.X)*c.Zoom*c.aspect()
	y = float64(c.Height)/2 - (p.Y-center.Y)*c.Zoom
	return x, y
}

// ToWorld is the inverse of ToScreen.
func (c *Camera) ToWorld(center physics.Vec2, x, y float64) physics.Vec2 {
	return physics.Vec2{
		X: center.X + (x-float64(c.Width)/2)/(c.Zoom*c.aspect()),
		Y: center.Y - (y-float64(c.Height)/2)/c.Zoom,
	}
}

// Select focuses the body under the screen point, if any, and reports
// whether one was hit. Clicking empty space keeps the current focus.
func (c *Camera) Select(snap simulation.Snapshot, x, y float64) (simulation.BodyView, bool) {
	b, ok := snap.Pick(c.ToWorld(c.Center(snap), x, y))
	if !ok {
		return b, false
	}
	c.Focus = b.ID
	c.Offset = physics.Vec2{}
	return b, true
}

// Cycle moves the focus to the next body in store order, wrapping to no
// focus after the last one.
func (c *Camera) Cycle(snap simulation.Snapshot) {
	n := len(snap.Bodies)
	if n == 0 {
		c.Focus = NoFocus
		return
	}
	c.Offset = physics.Vec2{}
	if c.Focus == NoFocus {
		c.Focus = snap.Bodies[0].ID
		return
	}
	for i, b := range snap.Bodies {
		if b.ID == c.Focus {
			if i+1 < n {
				c.Focus = snap.Bodies[i+1].ID
			} else {
				c.Focus = NoFocus
			}
			return
		}
	}
	c.Focus = NoFocus
}

// ClearFocus stops tracking and recenters on the origin.
func (c *Camera) ClearFocus() {
	c.Focus = NoFocus
	c.Offset = physics.Vec2{}
}

func (c *Camera) aspect() float64 {
	if c.Aspect <= 0 {
		return 1
	}
	return c.Aspect
}
