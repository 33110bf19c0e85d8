package simulation

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"solar-sim/pkg/physics"
)

// --- Environment files ---

// EnvironmentConfig is a self-contained scene: every body carries its own
// mass, state and look. Dt and G override the run parameters when set.
type EnvironmentConfig struct {
	Name      string       `json:"name"`
	Dt        float64      `json:"dt,omitempty"`
	G         float64      `json:"g,omitempty"`
	Bodies    []BodyConfig `json:"bodies"`
	AutoOrbit bool         `json:"auto_orbit,omitempty"`
}

// BodyConfig is one body of an environment file. Vel may be omitted.
type BodyConfig struct {
	Name   string    `json:"name"`
	Mass   float64   `json:"mass"`
	Pos    []float64 `json:"pos"`
	Vel    []float64 `json:"vel,omitempty"`
	Radius float64   `json:"radius,omitempty"`
	Color  string    `json:"color,omitempty"`
}

// ReadEnvironment loads an environment JSON file.
func ReadEnvironment(path string) (*EnvironmentConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	defer f.Close()

	env, err := ParseEnvironment(f)
	if err != nil {
		return nil, withSource(path, err)
	}
	return env, nil
}

// ParseEnvironment decodes an environment document. Trailing data after the
// object is malformed.
func ParseEnvironment(r io.Reader) (*EnvironmentConfig, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	var env EnvironmentConfig
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &LoadError{Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}
	if env.Dt < 0 || env.G < 0 {
		return nil, loadErr("", "dt/g", fmt.Errorf("%w: negative value", ErrInvalidParams))
	}
	return &env, nil
}

// BuildBodies validates the environment and returns its bodies in file
// order. With AutoOrbit, resting bodies are put on circular orbits around
// the first body using gravitational constant g.
func (env *EnvironmentConfig) BuildBodies(g float64) ([]physics.Body, error) {
	table := make([]Species, len(env.Bodies))
	for i, bc := range env.Bodies {
		name := bc.Name
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("body-%d", i)
		}
		table[i] = Species{Name: name, Mass: bc.Mass, Radius: bc.Radius, Color: parseColor(bc.Color)}
	}
	if err := validateSpecies(table); err != nil {
		return nil, err
	}

	bodies := make([]physics.Body, len(table))
	for i, sp := range table {
		pos, err := vec2(sp.Name, "pos", env.Bodies[i].Pos)
		if err != nil {
			return nil, err
		}
		var vel physics.Vec2
		if env.Bodies[i].Vel != nil {
			if vel, err = vec2(sp.Name, "vel", env.Bodies[i].Vel); err != nil {
				return nil, err
			}
		}
		bodies[i] = physics.Body{
			ID:     i,
			Name:   sp.Name,
			Mass:   sp.Mass,
			Pos:    pos,
			Vel:    vel,
			Radius: sp.Radius,
			Color:  sp.Color,
		}
	}

	if env.AutoOrbit {
		SetOrbitalVelocities(bodies, g)
	}
	return bodies, nil
}

// SetOrbitalVelocities gives every resting body after the first the circular
// speed around the first body, perpendicular to their separation. The
// central body's own velocity is added so the orbit follows it.
func SetOrbitalVelocities(bodies []physics.Body, g float64) {
	if len(bodies) == 0 {
		return
	}
	central := bodies[0]
	for i := 1; i < len(bodies); i++ {
		if bodies[i].Vel != (physics.Vec2{}) {
			continue
		}
		d := r2.Sub(bodies[i].Pos, central.Pos)
		r := physics.Len(d)
		if r == 0 {
			continue
		}
		v := math.Sqrt(g * central.Mass / r)
		bodies[i].Vel = r2.Add(physics.Vec2{X: -d.Y / r * v, Y: d.X / r * v}, central.Vel)
	}
}

// parseColor reads "#rrggbb"; anything else gets the default body color.
func parseColor(hex string) color.RGBA {
	var r, g, b uint8
	if len(hex) == 7 && hex[0] == '#' {
		n, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b)
		if err == nil && n == 3 {
			return color.RGBA{r, g, b, 255}
		}
	}
	return color.RGBA{200, 200, 255, 255}
}
