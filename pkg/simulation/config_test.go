package simulation

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestParamsValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("default params: %v", err)
	}
	bad := []Params{
		{G: 0, Dt: 0.01},
		{G: -1, Dt: 0.01},
		{G: 1, Dt: 0},
		{G: 1, Dt: math.NaN()},
		{G: math.Inf(1), Dt: 0.01},
		{G: 1, Dt: 0.01, MinDistance: -1},
	}
	for _, p := range bad {
		if err := p.Validate(); !errors.Is(err, ErrInvalidParams) {
			t.Fatalf("%+v: err = %v", p, err)
		}
	}
}

func TestStartEphemeris(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EphemerisPath = "../assets/planets.json"
	cfg.StartPaused = true
	sim, err := Start(cfg)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if sim.Name() != "planets" {
		t.Fatalf("name = %q", sim.Name())
	}
	if !sim.Paused() {
		t.Fatal("expected a paused start")
	}
	if n := len(sim.Snapshot().Bodies); n != 9 {
		t.Fatalf("bodies = %d", n)
	}
}

func TestStartEnvironmentOverridesParams(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EphemerisPath = ""
	cfg.EnvironmentPath = "../assets/earth-sun.json"
	sim, err := Start(cfg)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	p := sim.Params()
	if p.G != 1 || p.Dt != 0.01 {
		t.Fatalf("params = %+v, want file values", p)
	}
	if sim.Name() != "earth-sun" {
		t.Fatalf("name = %q", sim.Name())
	}
}

func TestStartFailsOnMissingBody(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.json")
	doc := `{"planets": {"mercury": {"pos": [0.39, 0], "vel": [0, 0.027]}}}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.EphemerisPath = path
	sim, err := Start(cfg)
	if sim != nil {
		t.Fatal("simulator returned despite a load failure")
	}
	if !errors.Is(err, ErrMissingBody) {
		t.Fatalf("err = %v, want ErrMissingBody", err)
	}
	var le *LoadError
	if !errors.As(err, &le) || le.Body != "Venus" || le.Source != path {
		t.Fatalf("error = %#v", err)
	}
}

func TestStartNeedsExactlyOneSource(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnvironmentPath = "../assets/binary.json"
	if _, err := Start(cfg); err == nil {
		t.Fatal("expected an error for two sources")
	}
	cfg = Config{Params: DefaultParams()}
	if _, err := Start(cfg); err == nil {
		t.Fatal("expected an error for no source")
	}
}

func TestReloadKeepsStateOnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json")
	good := `{"name": "s", "g": 1, "dt": 0.01, "bodies": [{"name": "A", "mass": 1, "pos": [0, 0]}, {"name": "B", "mass": 1, "pos": [1, 0]}]}`
	if err := os.WriteFile(path, []byte(good), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Config{EnvironmentPath: path, Params: DefaultParams()}
	sim, err := Start(cfg)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	sim.Advance(10)

	if err := os.WriteFile(path, []byte(`{"bodies": [{"name": "A", "mass": -1, "pos": [0, 0]}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Reload(sim, cfg); !errors.Is(err, ErrInvalidMass) {
		t.Fatalf("err = %v, want ErrInvalidMass", err)
	}
	if sim.Snapshot().Tick != 10 {
		t.Fatal("failed reload changed the run")
	}

	if err := os.WriteFile(path, []byte(good), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Reload(sim, cfg); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if sim.Snapshot().Tick != 0 {
		t.Fatal("reload did not restart the run")
	}
}
