package physics

import (
	"math"
	"testing"
)

func TestVectorHelpers(t *testing.T) {
	a := Vec2{X: 1, Y: 2}
	b := Vec2{X: 4, Y: 6}
	if d := Dist(a, b); d != 5 {
		t.Fatalf("Dist = %g, want 5", d)
	}
	if l := Len(Vec2{X: -3, Y: 4}); l != 5 {
		t.Fatalf("Len = %g, want 5", l)
	}
	if !finite(a) || finite(Vec2{X: math.NaN()}) || finite(Vec2{Y: math.Inf(-1)}) {
		t.Fatal("finite misclassified a vector")
	}
}

func TestBodyMomentum(t *testing.T) {
	b := Body{Mass: 2, Vel: Vec2{X: 1.5, Y: -3}}
	if p := b.Momentum(); p != (Vec2{X: 3, Y: -6}) {
		t.Fatalf("momentum = %v", p)
	}
	bodies := []Body{b, {Mass: 1, Vel: Vec2{X: -3, Y: 6}}}
	if p := TotalMomentum(bodies); p != (Vec2{}) {
		t.Fatalf("total momentum = %v, want zero", p)
	}
}
