package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// G is the gravitational constant in AU³ / (M☉ · yr²).
const G = 4 * math.Pi * math.Pi

// MinDistance is the default separation below which a pair contributes no
// acceleration.
const MinDistance = 1e-4

// Accelerations computes the net gravitational acceleration on every body by
// direct pairwise summation in store order. Positions are only read, so every
// entry is derived from the same configuration. dst is reused when it has
// enough capacity.
func Accelerations(bodies []Body, g, minDist float64, dst []Vec2) []Vec2 {
	if cap(dst) < len(bodies) {
		dst = make([]Vec2, len(bodies))
	}
	dst = dst[:len(bodies)]

	for i := range bodies {
		var acc Vec2
		for j := range bodies {
			if i == j {
				continue
			}
			acc = r2.Add(acc, pull(bodies[i].Pos, bodies[j], g, minDist))
		}
		dst[i] = acc
	}
	return dst
}

// PairForce returns the force exerted on a by b.
func PairForce(a, b Body, g, minDist float64) Vec2 {
	return r2.Scale(a.Mass, pull(a.Pos, b, g, minDist))
}

// pull is the acceleration src induces at point at: G·m·d/|d|³.
func pull(at Vec2, src Body, g, minDist float64) Vec2 {
	d := r2.Sub(src.Pos, at)
	dist2 := d.X*d.X + d.Y*d.Y
	dist := math.Sqrt(dist2)
	if dist == 0 || dist < minDist {
		return Vec2{}
	}
	return r2.Scale(g*src.Mass/(dist2*dist), d)
}
