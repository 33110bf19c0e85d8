package cli

import (
	"context"

	"github.com/spf13/cobra"

	"solar-sim/internal/viewer"
)

func init() {
	var vo viewer.Options
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the simulation window",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			sim, reload, err := opts.start(ctx)
			if err != nil {
				return err
			}
			vo.Reload = reload
			return viewer.Run(sim, vo)
		},
	}
	cmd.Flags().IntVar(&vo.Width, "width", 1280, "window width")
	cmd.Flags().IntVar(&vo.Height, "height", 720, "window height")
	cmd.Flags().IntVar(&vo.StepsPerFrame, "steps-per-frame", 1, "ticks per rendered frame")
	rootCmd.AddCommand(cmd)
}
