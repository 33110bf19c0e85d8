package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// TotalMomentum returns Σ m·v.
func TotalMomentum(bodies []Body) Vec2 {
	var p Vec2
	for _, b := range bodies {
		p = r2.Add(p, b.Momentum())
	}
	return p
}

// AngularMomentum returns the z component of Σ m·(r × v) about the origin.
func AngularMomentum(bodies []Body) float64 {
	var l float64
	for _, b := range bodies {
		l += b.Mass * (b.Pos.X*b.Vel.Y - b.Pos.Y*b.Vel.X)
	}
	return l
}

// KineticEnergy returns Σ ½·m·|v|².
func KineticEnergy(bodies []Body) float64 {
	var e float64
	for _, b := range bodies {
		e += 0.5 * b.Mass * (b.Vel.X*b.Vel.X + b.Vel.Y*b.Vel.Y)
	}
	return e
}

// PotentialEnergy returns the pairwise gravitational potential energy. Pairs
// closer than minDist are skipped, matching Accelerations.
func PotentialEnergy(bodies []Body, g, minDist float64) float64 {
	var e float64
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			r := Dist(bodies[i].Pos, bodies[j].Pos)
			if r == 0 || r < minDist {
				continue
			}
			e -= g * bodies[i].Mass * bodies[j].Mass / r
		}
	}
	return e
}

// CenterOfMass returns the mass-weighted mean position, or the zero vector for
// an empty set.
func CenterOfMass(bodies []Body) Vec2 {
	var (
		sum   Vec2
		total float64
	)
	for _, b := range bodies {
		sum = r2.Add(sum, r2.Scale(b.Mass, b.Pos))
		total += b.Mass
	}
	if total == 0 || math.IsInf(total, 0) {
		return Vec2{}
	}
	return r2.Scale(1/total, sum)
}
