package simulation

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"solar-sim/pkg/physics"
)

// Params are the numerical constants of a run. G must match the units of the
// loaded data.
type Params struct {
	G           float64
	Dt          float64
	MinDistance float64
}

// DefaultParams uses AU, years and solar masses.
func DefaultParams() Params {
	return Params{
		G:           physics.G,
		Dt:          0.001,
		MinDistance: physics.MinDistance,
	}
}

// Validate rejects parameters that would make every trajectory meaningless.
func (p Params) Validate() error {
	bad := func(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }
	switch {
	case bad(p.G) || p.G <= 0:
		return fmt.Errorf("%w: G = %g", ErrInvalidParams, p.G)
	case bad(p.Dt) || p.Dt <= 0:
		return fmt.Errorf("%w: dt = %g", ErrInvalidParams, p.Dt)
	case bad(p.MinDistance) || p.MinDistance < 0:
		return fmt.Errorf("%w: min distance = %g", ErrInvalidParams, p.MinDistance)
	}
	return nil
}

// Config selects the initial-condition source and run parameters. Exactly
// one of EphemerisPath and EnvironmentPath must be set.
type Config struct {
	Name            string
	EphemerisPath   string
	EnvironmentPath string
	// Species defaults to DefaultSpecies when nil.
	Species     []Species
	Anchor      string
	DaysPerYear float64
	Params      Params
	StartPaused bool
}

// DefaultConfig reads the bundled ephemeris.
func DefaultConfig() Config {
	return Config{
		EphemerisPath: filepath.Join("pkg", "assets", "planets.json"),
		Anchor:        DefaultAnchor,
		DaysPerYear:   DaysPerYear,
		Params:        DefaultParams(),
	}
}

// Path returns the initial-condition file the config reads.
func (c Config) Path() string {
	if c.EnvironmentPath != "" {
		return c.EnvironmentPath
	}
	return c.EphemerisPath
}

// Load builds the initial body store and the effective parameters.
func (c Config) Load() (string, Params, []physics.Body, error) {
	params := c.Params
	switch {
	case c.EphemerisPath != "" && c.EnvironmentPath != "":
		return "", params, nil, errors.New("both an ephemeris and an environment were given")

	case c.EnvironmentPath != "":
		env, err := ReadEnvironment(c.EnvironmentPath)
		if err != nil {
			return "", params, nil, err
		}
		if env.Dt > 0 {
			params.Dt = env.Dt
		}
		if env.G > 0 {
			params.G = env.G
		}
		bodies, err := env.BuildBodies(params.G)
		if err != nil {
			return "", params, nil, withSource(c.EnvironmentPath, err)
		}
		name := c.Name
		if name == "" {
			name = env.Name
		}
		return name, params, bodies, nil

	case c.EphemerisPath != "":
		eph, err := ReadEphemeris(c.EphemerisPath)
		if err != nil {
			return "", params, nil, err
		}
		table := c.Species
		if table == nil {
			table = DefaultSpecies()
		}
		bodies, err := LoadBodies(table, eph, c.Anchor, c.DaysPerYear)
		if err != nil {
			return "", params, nil, withSource(c.EphemerisPath, err)
		}
		name := c.Name
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(c.EphemerisPath), filepath.Ext(c.EphemerisPath))
		}
		return name, params, bodies, nil
	}
	return "", params, nil, errors.New("no initial-condition source configured")
}

// Start loads the initial conditions and returns a simulator ready to tick.
// Any error is a startup failure; no simulator is returned.
func Start(c Config) (*Simulator, error) {
	name, params, bodies, err := c.Load()
	if err != nil {
		return nil, err
	}
	sim, err := NewSimulator(name, bodies, params)
	if err != nil {
		return nil, err
	}
	if c.StartPaused {
		sim.Pause()
	}
	return sim, nil
}

// Reload reads the config's source again and restarts sim from it. On error
// sim is left untouched.
func Reload(sim *Simulator, c Config) error {
	_, params, bodies, err := c.Load()
	if err != nil {
		return err
	}
	return sim.Reset(bodies, params)
}
