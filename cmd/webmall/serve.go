package main

import (
	"github.com/spf13/cobra"

	"webmall/internal/config"
	"webmall/internal/delivery/eval/bootstrap"
)

func newServeCommand(cli *CLI) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the evaluation HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return bootstrap.RunEvalServer(cmd.Context(), cli.settings,
				bootstrap.WithShopOptions(config.WithEnv(cli.envLookup)))
		},
	}
	cmd.Flags().String("port", "", "Listen port")
	cmd.Flags().StringSlice("allowed-origins", nil, "CORS origins")
	cmd.Flags().Int("session-cache-size", 0, "Maximum number of live sessions")
	bindFlag(cli.v, "port", cmd, "port")
	bindFlag(cli.v, "allowed_origins", cmd, "allowed-origins")
	bindFlag(cli.v, "session_cache_size", cmd, "session-cache-size")
	return cmd
}
