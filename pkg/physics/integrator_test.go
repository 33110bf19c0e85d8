package physics

import (
	"math"
	"testing"
)

func TestIntegrateUsesUpdatedVelocity(t *testing.T) {
	bodies := []Body{{Mass: 1, Pos: Vec2{X: 1, Y: 1}, Vel: Vec2{X: 1, Y: 0}}}
	acc := []Vec2{{X: 0, Y: 2}}
	IntegrateEulerSymplectic(bodies, acc, 0.5)

	// v = (1, 0) + (0, 2)·0.5 = (1, 1); p = (1, 1) + (1, 1)·0.5.
	if bodies[0].Vel != (Vec2{X: 1, Y: 1}) {
		t.Fatalf("vel = %v", bodies[0].Vel)
	}
	if bodies[0].Pos != (Vec2{X: 1.5, Y: 1.5}) {
		t.Fatalf("pos = %v", bodies[0].Pos)
	}
}

func TestIntegrateLengthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	IntegrateEulerSymplectic(make([]Body, 2), make([]Vec2, 1), 0.1)
}

func TestStepZeroAndOneBody(t *testing.T) {
	var none []Body
	if acc := Step(none, G, MinDistance, 0.01, nil); len(acc) != 0 {
		t.Fatalf("len = %d", len(acc))
	}

	one := []Body{{Mass: 1, Pos: Vec2{X: 2, Y: -1}}}
	var acc []Vec2
	for i := 0; i < 1000; i++ {
		acc = Step(one, G, MinDistance, 0.01, acc)
	}
	if one[0].Pos != (Vec2{X: 2, Y: -1}) || one[0].Vel != (Vec2{}) {
		t.Fatalf("lone body moved: %+v", one[0])
	}
}

func threeBodies() []Body {
	return []Body{
		{Mass: 1, Pos: Vec2{X: 0, Y: 0}, Vel: Vec2{X: 0, Y: -0.01}},
		{Mass: 0.001, Pos: Vec2{X: 1, Y: 0}, Vel: Vec2{X: 0, Y: 1}},
		{Mass: 0.01, Pos: Vec2{X: -2.5, Y: 0.3}, Vel: Vec2{X: 0.05, Y: -0.6}},
	}
}

func TestStepConservesMomentum(t *testing.T) {
	for _, dt := range []float64{0.001, 0.01, 0.05} {
		bodies := threeBodies()
		p0 := TotalMomentum(bodies)
		var acc []Vec2
		for i := 0; i < 2000; i++ {
			acc = Step(bodies, 1, MinDistance, dt, acc)
		}
		p := TotalMomentum(bodies)
		if !near(p.X, p0.X, 1e-12) || !near(p.Y, p0.Y, 1e-12) {
			t.Fatalf("dt=%g: momentum drifted from %v to %v", dt, p0, p)
		}
	}
}

func TestStepBoundedEnergyError(t *testing.T) {
	bodies := []Body{
		{Mass: 1},
		{Mass: 3.003e-6, Pos: Vec2{X: 1}, Vel: Vec2{Y: 1}},
	}
	e0 := KineticEnergy(bodies) + PotentialEnergy(bodies, 1, MinDistance)
	l0 := AngularMomentum(bodies)
	var acc []Vec2
	for i := 0; i < 10*628; i++ {
		acc = Step(bodies, 1, MinDistance, 0.01, acc)
	}
	e := KineticEnergy(bodies) + PotentialEnergy(bodies, 1, MinDistance)
	if rel := math.Abs((e - e0) / e0); rel > 2e-2 {
		t.Fatalf("energy drifted by %g over ten orbits", rel)
	}
	if rel := math.Abs((AngularMomentum(bodies) - l0) / l0); rel > 1e-9 {
		t.Fatalf("angular momentum drifted by %g", rel)
	}
}

func TestStepCircularOrbitCloses(t *testing.T) {
	const dt = 0.01
	bodies := []Body{
		{Mass: 1},
		{Mass: 3.003e-6, Pos: Vec2{X: 1, Y: 0}, Vel: Vec2{X: 0, Y: 1}},
	}
	start := bodies[1].Pos
	steps := int(math.Round(2 * math.Pi / dt))
	var acc []Vec2
	for i := 0; i < steps; i++ {
		acc = Step(bodies, 1, MinDistance, dt, acc)
	}
	if d := Dist(start, bodies[1].Pos); d > 0.05 {
		t.Fatalf("secondary ended %g from its start after one period", d)
	}
	if r := Dist(bodies[0].Pos, bodies[1].Pos); !near(r, 1, 0.01) {
		t.Fatalf("orbital radius drifted to %g", r)
	}
}

func TestCenterOfMass(t *testing.T) {
	bodies := []Body{{Mass: 3, Pos: Vec2{X: 0}}, {Mass: 1, Pos: Vec2{X: 4}}}
	if c := CenterOfMass(bodies); c != (Vec2{X: 1}) {
		t.Fatalf("center = %v", c)
	}
	if c := CenterOfMass(nil); c != (Vec2{}) {
		t.Fatalf("empty center = %v", c)
	}
}
