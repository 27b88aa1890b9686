package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"roster/internal/app/bootstrap"
)

func NewServeCommand(_ *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cmd)
		},
	}
}

func serve(ctx context.Context, cmd *cobra.Command) error {
	runtime, err := openRuntime(cmd, "api")
	if err != nil {
		return err
	}
	app := bootstrap.NewAPIApp(runtime)
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			runtime.Logger.Error("api shutdown close failed",
				"event", "cli_serve_close_failed",
				"module", "internal/cli",
				"layer", "platform",
				"error", closeErr.Error(),
			)
		}
	}()
	return app.Run(ctx)
}
