package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/brachisto/brachisto-go/internal/infrastructure/daemon"
)

// NewRunCommand creates the run command: the full daemon loop in the
// foreground, without PID file handling
func NewRunCommand() *cobra.Command {
	var resume bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation loop in the foreground",
		Long: `Run starts the tick loop with the configured stream and metrics
servers and blocks until interrupted. State is autosaved on the
configured cadence and once more on shutdown.

Examples:
  brachisto run
  brachisto run --resume`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()

			d, err := daemon.New(cfg)
			if err != nil {
				return fmt.Errorf("failed to start: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if resume {
				if err := d.RestoreAutosave(ctx); err != nil {
					return fmt.Errorf("failed to resume: %w", err)
				}
			}

			fmt.Println("Simulation running, Ctrl-C to stop")
			return d.Run(ctx)
		},
	}

	cmd.Flags().BoolVar(&resume, "resume", false, "Resume from the autosave slot if present")
	return cmd
}
