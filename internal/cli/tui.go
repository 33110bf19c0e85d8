package cli

import (
	"context"

	"github.com/spf13/cobra"

	"solar-sim/internal/tui"
)

func init() {
	var to tui.Options
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Watch the simulation in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			sim, _, err := opts.start(ctx)
			if err != nil {
				return err
			}
			return tui.Run(sim, to)
		},
	}
	cmd.Flags().IntVar(&to.FPS, "fps", 30, "redraws per second")
	cmd.Flags().IntVar(&to.StepsPerFrame, "steps-per-frame", 1, "ticks per redraw")
	rootCmd.AddCommand(cmd)
}
