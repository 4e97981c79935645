package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/cubeql/internal/ui"
)

// NewUICommand creates the ui command.
func NewUICommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Start the model API server",
		Long: `Start a local HTTP server exposing the cube model as JSON.

The API provides the graph export, cube and relation management, and
SQL generation for column selections.`,
		Example: `  # Start on the configured port
  cubeql ui

  # Start on a custom port
  cubeql ui --port 3000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd, port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to serve on (default from config)")

	return cmd
}

func runUI(cmd *cobra.Command, port int) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if port == 0 {
		port = cmdCtx.Cfg.Port
	}

	srv := ui.NewServer(ui.Config{
		Engine: cmdCtx.Engine,
		Port:   port,
		Logger: cmdCtx.Logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Serve(ctx)
}
