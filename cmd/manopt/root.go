package main

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// newRootCmd assembles the command tree.
func newRootCmd(ctx context.Context) *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "manopt",
		Short:         "Riemannian optimization on the Stiefel manifold",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			zerolog.SetGlobalLevel(level)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every iteration")
	root.AddCommand(runCmd(ctx), versionCmd())

	return root
}

// Execute runs the CLI with args.
func Execute(ctx context.Context, args []string) error {
	root := newRootCmd(ctx)
	root.SetArgs(args)

	return root.ExecuteContext(ctx)
}
