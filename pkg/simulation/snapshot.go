package simulation

import (
	"image/color"
	"math"

	"solar-sim/pkg/physics"
)

// MinPickRadius is the smallest hit radius used by Pick, in world units.
const MinPickRadius = 0.5

// BodyView is the presentation view of one body.
type BodyView struct {
	ID     int
	Name   string
	Pos    physics.Vec2
	Radius float64
	Color  color.RGBA
}

// Snapshot is the state published at a tick boundary. A snapshot is never
// modified after it is published.
type Snapshot struct {
	Name   string
	Tick   uint64
	Time   float64
	Paused bool
	Bodies []BodyView
}

// PickRadius is the hit radius for a body drawn with the given radius.
func PickRadius(radius float64) float64 {
	return math.Max(2*radius, MinPickRadius)
}

// Pick returns the body under p: the nearest body whose hit radius contains
// p, earliest in store order on ties.
func (s Snapshot) Pick(p physics.Vec2) (BodyView, bool) {
	best := -1
	bestD := math.Inf(1)
	for i, b := range s.Bodies {
		d := physics.Dist(p, b.Pos)
		if d < PickRadius(b.Radius) && d < bestD {
			best, bestD = i, d
		}
	}
	if best < 0 {
		return BodyView{}, false
	}
	return s.Bodies[best], true
}

// Find returns the body with the given ID.
func (s Snapshot) Find(id int) (BodyView, bool) {
	if id >= 0 && id < len(s.Bodies) && s.Bodies[id].ID == id {
		return s.Bodies[id], true
	}
	for _, b := range s.Bodies {
		if b.ID == id {
			return b, true
		}
	}
	return BodyView{}, false
}
