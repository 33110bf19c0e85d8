package cli

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"solar-sim/internal/headless"
	"solar-sim/internal/server"
)

func init() {
	var (
		sc server.Config
		hz float64
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run headless and expose the simulation over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			sim, _, err := opts.start(ctx)
			if err != nil {
				return err
			}
			srv, err := server.New(sc, sim)
			if err != nil {
				return err
			}
			go func() {
				err := headless.Run(ctx, sim, headless.Options{Hz: hz})
				if err != nil && !errors.Is(err, context.Canceled) {
					log.Printf("driver: %v", err)
				}
			}()
			return srv.Start(ctx)
		},
	}
	f := cmd.Flags()
	f.StringVar(&sc.Bind, "bind", "127.0.0.1", "listen address")
	f.IntVar(&sc.Port, "port", 8080, "listen port")
	f.StringVar(&sc.LogFile, "log-file", "", "append an access log to this file")
	f.Float64Var(&sc.ControlRate, "control-rate", 5, "control requests per second; 0 disables the limit")
	f.IntVar(&sc.ControlBurst, "control-burst", 10, "control request burst")
	f.Float64Var(&hz, "hz", 60, "ticks per second")
	rootCmd.AddCommand(cmd)
}
