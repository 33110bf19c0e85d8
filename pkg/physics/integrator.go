package physics

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// IntegrateEulerSymplectic advances every body by dt with semi-implicit Euler:
// velocity first, then position from the updated velocity. acc must hold one
// entry per body.
func IntegrateEulerSymplectic(bodies []Body, acc []Vec2, dt float64) {
	if len(acc) != len(bodies) {
		panic(fmt.Sprintf("physics: %d accelerations for %d bodies", len(acc), len(bodies)))
	}
	for i := range bodies {
		bodies[i].Vel = r2.Add(bodies[i].Vel, r2.Scale(dt, acc[i]))
		bodies[i].Pos = r2.Add(bodies[i].Pos, r2.Scale(dt, bodies[i].Vel))
	}
}

// Step runs one tick over bodies: all accelerations are accumulated before
// any body is integrated. The acceleration buffer is returned for reuse.
func Step(bodies []Body, g, minDist, dt float64, acc []Vec2) []Vec2 {
	acc = Accelerations(bodies, g, minDist, acc)
	IntegrateEulerSymplectic(bodies, acc, dt)
	return acc
}
