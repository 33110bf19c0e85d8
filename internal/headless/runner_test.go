package headless

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"solar-sim/pkg/physics"
	"solar-sim/pkg/simulation"
)

func newSim(t *testing.T) *simulation.Simulator {
	t.Helper()
	sim, err := simulation.NewSimulator("headless", []physics.Body{
		{Name: "Sun", Mass: 1},
		{Name: "Earth", Mass: 3.003e-6, Pos: physics.Vec2{X: 1}, Vel: physics.Vec2{Y: 1}},
	}, simulation.Params{G: 1, Dt: 0.01, MinDistance: physics.MinDistance})
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	return sim
}

func TestRunTicksAndFrames(t *testing.T) {
	sim := newSim(t)
	var out bytes.Buffer
	if err := Run(context.Background(), sim, Options{Ticks: 100, Every: 25, Out: &out}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if tick := sim.Snapshot().Tick; tick != 100 {
		t.Fatalf("tick = %d, want 100", tick)
	}

	var frames []Frame
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		var f Frame
		if err := json.Unmarshal(sc.Bytes(), &f); err != nil {
			t.Fatalf("decode %q: %v", sc.Text(), err)
		}
		frames = append(frames, f)
	}
	if len(frames) != 4 {
		t.Fatalf("frames = %d, want 4", len(frames))
	}
	if frames[3].Tick != 100 || len(frames[3].Bodies) != 2 || frames[3].Bodies[1].Name != "Earth" {
		t.Fatalf("last frame = %+v", frames[3])
	}
}

func TestRunRateLimited(t *testing.T) {
	sim := newSim(t)
	start := time.Now()
	if err := Run(context.Background(), sim, Options{Hz: 100, Ticks: 10}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	// burst of one: the first tick is free, the other nine wait 10ms each
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Fatalf("ran 10 ticks at 100Hz in %v", elapsed)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	for _, hz := range []float64{0, 1000} {
		sim := newSim(t)
		sim.Pause()
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		err := Run(ctx, sim, Options{Hz: hz})
		cancel()
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("hz=%g: err = %v", hz, err)
		}
		if tick := sim.Snapshot().Tick; tick != 0 {
			t.Fatalf("hz=%g: paused sim advanced to %d", hz, tick)
		}
	}
}
