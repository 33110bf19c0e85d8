package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec2 is a point or displacement in the simulation plane.
type Vec2 = r2.Vec

// Len returns the Euclidean length of v.
func Len(v Vec2) float64 {
	return r2.Norm(v)
}

// Dist returns the distance between a and b.
func Dist(a, b Vec2) float64 {
	return r2.Norm(r2.Sub(b, a))
}

func finite(v Vec2) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
