package physics

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

var (
	// ErrInvalidMass reports a zero, negative or non-finite mass.
	ErrInvalidMass = errors.New("mass must be positive and finite")
	// ErrNonFinite reports a NaN or infinite position or velocity component.
	ErrNonFinite = errors.New("non-finite value")
)

// --- Body ---

// Body is a point mass. Radius and Color are carried for presentation and
// never enter the dynamics.
type Body struct {
	ID     int
	Name   string
	Mass   float64
	Pos    Vec2
	Vel    Vec2
	Radius float64
	Color  color.RGBA
}

// Momentum returns mass times velocity.
func (b Body) Momentum() Vec2 {
	return r2.Scale(b.Mass, b.Vel)
}

// Validate checks the physical fields of b.
func (b Body) Validate() error {
	if !(b.Mass > 0) || math.IsInf(b.Mass, 0) {
		return fmt.Errorf("body %q: %w (got %g)", b.Name, ErrInvalidMass, b.Mass)
	}
	if !finite(b.Pos) {
		return fmt.Errorf("body %q: position: %w", b.Name, ErrNonFinite)
	}
	if !finite(b.Vel) {
		return fmt.Errorf("body %q: velocity: %w", b.Name, ErrNonFinite)
	}
	return nil
}

// CloneBodies returns a copy of bodies that shares no backing array.
func CloneBodies(bodies []Body) []Body {
	if bodies == nil {
		return nil
	}
	out := make([]Body, len(bodies))
	copy(out, bodies)
	return out
}
