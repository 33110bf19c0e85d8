// Package cli wires the simulator, its front ends and the HTTP API into a
// single cobra command tree.
//
// main only needs to call cli.Execute().
package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"solar-sim/pkg/simulation"
)

const version = "0.3.0"

// options are the flags shared by every run command.
type options struct {
	name        string
	ephemeris   string
	env         string
	anchor      string
	g           float64
	dt          float64
	minDistance float64
	daysPerYear float64
	paused      bool
	watch       bool
}

var opts options

var rootCmd = &cobra.Command{
	Use:   "solar-sim",
	Short: "2D n-body gravity simulator",
	Long: `Simulates a fixed set of bodies under Newtonian gravity.

Initial conditions come from an ephemeris file (the bundled solar system by
default) or an environment file given with --env.`,
	SilenceUsage: true,
}

// Execute runs the CLI. Typically called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	def := simulation.DefaultConfig()
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.name, "name", "", "run name (defaults to the source file name)")
	pf.StringVar(&opts.ephemeris, "ephemeris", def.EphemerisPath, "ephemeris JSON file")
	pf.StringVar(&opts.env, "env", "", "environment JSON file; replaces --ephemeris")
	pf.StringVar(&opts.anchor, "anchor", def.Anchor, "species placed at rest at the origin")
	pf.Float64Var(&opts.g, "g", def.Params.G, "gravitational constant")
	pf.Float64Var(&opts.dt, "dt", def.Params.Dt, "time step")
	pf.Float64Var(&opts.minDistance, "min-distance", def.Params.MinDistance, "pairs closer than this exert no force")
	pf.Float64Var(&opts.daysPerYear, "days-per-year", def.DaysPerYear, "converts ephemeris velocities to per-year")
	pf.BoolVar(&opts.paused, "paused", false, "start paused")
	pf.BoolVar(&opts.watch, "watch", false, "reload when the source file changes")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the solar-sim version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "solar-sim v%s\n", version)
		},
	})
}

// config turns the flags into a simulation config.
func (o options) config() simulation.Config {
	c := simulation.DefaultConfig()
	c.Name = o.name
	c.EphemerisPath = o.ephemeris
	c.EnvironmentPath = o.env
	if o.env != "" {
		c.EphemerisPath = ""
	}
	c.Anchor = o.anchor
	c.DaysPerYear = o.daysPerYear
	c.Params = simulation.Params{G: o.g, Dt: o.dt, MinDistance: o.minDistance}
	c.StartPaused = o.paused
	return c
}

// start builds the simulator and, with --watch, reloads it from its source
// until ctx is done. The returned reload func is for front ends with a
// reload key.
func (o options) start(ctx context.Context) (*simulation.Simulator, func() error, error) {
	cfg := o.config()
	sim, err := simulation.Start(cfg)
	if err != nil {
		return nil, nil, err
	}
	reload := func() error { return simulation.Reload(sim, cfg) }
	log.Printf("loaded %q: %d bodies from %s", sim.Name(), len(sim.Bodies()), cfg.Path())

	if o.watch {
		go func() {
			if err := simulation.Watch(ctx, cfg.Path(), reload); err != nil {
				log.Printf("watch: %v", err)
			}
		}()
	}
	return sim, reload, nil
}
