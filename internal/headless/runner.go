// Package headless ticks a simulator without any window.
package headless

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"golang.org/x/time/rate"

	"solar-sim/pkg/simulation"
)

// pausePoll is how often an unthrottled runner rechecks a paused simulator.
const pausePoll = 10 * time.Millisecond

// Options controls a headless run.
type Options struct {
	// Hz caps the tick rate; zero runs as fast as possible.
	Hz float64
	// Ticks stops the run after that many ticks; zero runs until ctx is done.
	Ticks uint64
	// Every writes a frame to Out every that many ticks; zero writes none.
	Every uint64
	Out   io.Writer
}

// Frame is one JSON line of output.
type Frame struct {
	Tick   uint64      `json:"tick"`
	Time   float64     `json:"time"`
	Bodies []FrameBody `json:"bodies"`
}

// FrameBody is a body's position in a Frame.
type FrameBody struct {
	ID   int     `json:"id"`
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// NewFrame converts a snapshot to its output form.
func NewFrame(snap simulation.Snapshot) Frame {
	f := Frame{Tick: snap.Tick, Time: snap.Time, Bodies: make([]FrameBody, len(snap.Bodies))}
	for i, b := range snap.Bodies {
		f.Bodies[i] = FrameBody{ID: b.ID, Name: b.Name, X: b.Pos.X, Y: b.Pos.Y}
	}
	return f
}

// Run steps sim until opts.Ticks ticks have run or ctx is done. Paused time
// does not count towards Ticks. It returns ctx.Err() when cancelled.
func Run(ctx context.Context, sim *simulation.Simulator, opts Options) error {
	var lim *rate.Limiter
	if opts.Hz > 0 {
		lim = rate.NewLimiter(rate.Limit(opts.Hz), 1)
	}
	var enc *json.Encoder
	if opts.Out != nil && opts.Every > 0 {
		enc = json.NewEncoder(opts.Out)
	}

	var ran uint64
	for opts.Ticks == 0 || ran < opts.Ticks {
		if lim != nil {
			if err := lim.Wait(ctx); err != nil {
				// Wait also fails early when the deadline lands before the next token.
				<-ctx.Done()
				return ctx.Err()
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		if !sim.Step() {
			if lim == nil {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(pausePoll):
				}
			}
			continue
		}
		ran++
		if enc != nil && ran%opts.Every == 0 {
			if err := enc.Encode(NewFrame(sim.Snapshot())); err != nil {
				return fmt.Errorf("headless: write frame: %w", err)
			}
		}
	}
	return nil
}
