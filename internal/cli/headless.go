package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"solar-sim/internal/headless"
)

func init() {
	var ho headless.Options
	cmd := &cobra.Command{
		Use:   "headless",
		Short: "Run without a window and print JSON frames",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			sim, _, err := opts.start(ctx)
			if err != nil {
				return err
			}
			ho.Out = cmd.OutOrStdout()
			if err := headless.Run(ctx, sim, ho); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&ho.Hz, "hz", 0, "ticks per second; 0 is unthrottled")
	cmd.Flags().Uint64Var(&ho.Ticks, "ticks", 1000, "stop after this many ticks; 0 runs until interrupted")
	cmd.Flags().Uint64Var(&ho.Every, "every", 100, "print a frame every this many ticks; 0 prints none")
	rootCmd.AddCommand(cmd)
}
