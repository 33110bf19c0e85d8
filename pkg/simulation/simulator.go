package simulation

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"solar-sim/pkg/physics"
)

// Simulator owns the body store and drives ticks. Each tick accumulates
// forces, integrates and publishes a snapshot under one lock, so readers only
// ever see tick boundaries.
type Simulator struct {
	mu     sync.RWMutex
	name   string
	params Params
	bodies []physics.Body
	acc    []physics.Vec2
	paused bool
	tick   uint64
	snap   Snapshot
}

// Stats summarizes the conserved quantities at the current tick. Every field
// comes from the same tick.
type Stats struct {
	Name            string
	Tick            uint64
	Time            float64
	Paused          bool
	Bodies          int
	Momentum        physics.Vec2
	AngularMomentum float64
	Energy          float64
}

// NewSimulator validates params and bodies and takes a private copy of the
// bodies. IDs are reassigned to the store index.
func NewSimulator(name string, bodies []physics.Body, params Params) (*Simulator, error) {
	if err := checkRun(bodies, params); err != nil {
		return nil, err
	}
	s := &Simulator{name: name}
	s.load(bodies, params)
	return s, nil
}

func checkRun(bodies []physics.Body, params Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(bodies))
	for _, b := range bodies {
		if err := b.Validate(); err != nil {
			return err
		}
		if b.Name == "" {
			continue
		}
		key := strings.ToLower(b.Name)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("body %q: %w", b.Name, ErrDuplicateBody)
		}
		seen[key] = struct{}{}
	}
	return nil
}

func (s *Simulator) load(bodies []physics.Body, params Params) {
	s.params = params
	s.bodies = physics.CloneBodies(bodies)
	for i := range s.bodies {
		s.bodies[i].ID = i
	}
	s.acc = make([]physics.Vec2, len(s.bodies))
	s.tick = 0
	s.publish()
}

// Name returns the run name.
func (s *Simulator) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

// Params returns the run parameters.
func (s *Simulator) Params() Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params
}

// Step runs one tick unless paused and reports whether it did.
func (s *Simulator) Step() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paused {
		return false
	}
	s.step()
	return true
}

// StepOnce runs exactly one tick whatever the pause state.
func (s *Simulator) StepOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step()
}

// StepIfPaused runs exactly one tick if the simulator is paused and reports
// whether it did. The check and the tick happen under one lock, so a
// concurrent Resume cannot slip in between.
func (s *Simulator) StepIfPaused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.paused {
		return false
	}
	s.step()
	return true
}

// Advance runs up to n ticks, stopping early if paused, and returns how many
// ran.
func (s *Simulator) Advance(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	done := 0
	for ; done < n && !s.paused; done++ {
		s.step()
	}
	return done
}

func (s *Simulator) step() {
	s.acc = physics.Step(s.bodies, s.params.G, s.params.MinDistance, s.params.Dt, s.acc)
	s.tick++
	s.publish()
}

func (s *Simulator) publish() {
	views := make([]BodyView, len(s.bodies))
	for i, b := range s.bodies {
		views[i] = BodyView{ID: b.ID, Name: b.Name, Pos: b.Pos, Radius: b.Radius, Color: b.Color}
	}
	s.snap = Snapshot{
		Name:   s.name,
		Tick:   s.tick,
		Time:   float64(s.tick) * s.params.Dt,
		Paused: s.paused,
		Bodies: views,
	}
}

// Pause stops Step from advancing.
func (s *Simulator) Pause() {
	s.setPaused(true)
}

// Resume lets Step advance again from the exact paused state.
func (s *Simulator) Resume() {
	s.setPaused(false)
}

// TogglePause flips the pause state and returns the new one.
func (s *Simulator) TogglePause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = !s.paused
	s.snap.Paused = s.paused
	return s.paused
}

func (s *Simulator) setPaused(p bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = p
	s.snap.Paused = p
}

// Paused reports the pause state.
func (s *Simulator) Paused() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paused
}

// Snapshot returns the last published snapshot. The Bodies slice is the
// caller's own copy.
func (s *Simulator) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.snap
	snap.Bodies = slices.Clone(s.snap.Bodies)
	return snap
}

// Pick runs a selection query against the current snapshot.
func (s *Simulator) Pick(p physics.Vec2) (BodyView, bool) {
	return s.Snapshot().Pick(p)
}

// Bodies returns a copy of the full body state.
func (s *Simulator) Bodies() []physics.Body {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return physics.CloneBodies(s.bodies)
}

// Stats computes momentum and energy for the current tick.
func (s *Simulator) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		Name:            s.name,
		Tick:            s.tick,
		Time:            float64(s.tick) * s.params.Dt,
		Paused:          s.paused,
		Bodies:          len(s.bodies),
		Momentum:        physics.TotalMomentum(s.bodies),
		AngularMomentum: physics.AngularMomentum(s.bodies),
		Energy:          physics.KineticEnergy(s.bodies) + physics.PotentialEnergy(s.bodies, s.params.G, s.params.MinDistance),
	}
}

// Reset replaces the body set and parameters and starts a new run at tick
// zero. The pause state is kept. On error nothing changes.
func (s *Simulator) Reset(bodies []physics.Body, params Params) error {
	if err := checkRun(bodies, params); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(bodies, params)
	return nil
}
