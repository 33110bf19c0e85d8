package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"solar-sim/internal/headless"
)

const planets = "../../pkg/assets/planets.json"

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func TestConfigFromFlags(t *testing.T) {
	o := options{
		ephemeris:   "eph.json",
		anchor:      "Sun",
		g:           1,
		dt:          0.01,
		minDistance: 1e-3,
		daysPerYear: 365,
		paused:      true,
	}
	c := o.config()
	if c.EphemerisPath != "eph.json" || c.EnvironmentPath != "" {
		t.Fatalf("paths: %q %q", c.EphemerisPath, c.EnvironmentPath)
	}
	if c.Params.G != 1 || c.Params.Dt != 0.01 || c.Params.MinDistance != 1e-3 {
		t.Fatalf("params: %+v", c.Params)
	}
	if c.DaysPerYear != 365 || !c.StartPaused || c.Anchor != "Sun" {
		t.Fatalf("config: %+v", c)
	}

	o.env = "env.json"
	c = o.config()
	if c.EphemerisPath != "" || c.EnvironmentPath != "env.json" || c.Path() != "env.json" {
		t.Fatalf("env should replace the ephemeris: %q %q", c.EphemerisPath, c.EnvironmentPath)
	}
}

func TestVersionCommand(t *testing.T) {
	out := execute(t, "version")
	if !strings.HasPrefix(out, "solar-sim v") {
		t.Fatalf("version output: %q", out)
	}
}

func TestHeadlessCommand(t *testing.T) {
	out := execute(t, "headless", "--ephemeris", planets, "--ticks", "20", "--every", "10")

	var frames []headless.Frame
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		var f headless.Frame
		if err := json.Unmarshal(sc.Bytes(), &f); err != nil {
			t.Fatalf("decode %q: %v", sc.Text(), err)
		}
		frames = append(frames, f)
	}
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	if frames[0].Tick != 10 || frames[1].Tick != 20 {
		t.Fatalf("ticks: %d %d", frames[0].Tick, frames[1].Tick)
	}
	if len(frames[1].Bodies) != 9 || frames[1].Bodies[0].Name != "Sun" {
		t.Fatalf("bodies: %+v", frames[1].Bodies)
	}
}

func TestHeadlessCommandRejectsMissingSource(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"headless", "--ephemeris", "does-not-exist.json", "--ticks", "1"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected an error for a missing ephemeris")
	}
}
