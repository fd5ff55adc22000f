package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brachisto/brachisto-go/internal/adapters/persistence"
	"github.com/brachisto/brachisto-go/internal/infrastructure/database"
)

// NewStateCommand creates the state command
func NewStateCommand() *cobra.Command {
	var (
		slot   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "state",
		Short: "Print a saved simulation state",
		Long: `State loads a save slot and prints it, as a short summary by
default or the full snapshot with --json.

Examples:
  brachisto state
  brachisto state --slot endgame --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()

			db, err := database.NewConnection(&cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer database.Close(db)

			snap, err := persistence.NewGormSaveRepository(db).Load(context.Background(), resolveSlot(slot))
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(snap)
			}
			printSummary(snap)
			return nil
		},
	}

	cmd.Flags().StringVar(&slot, "slot", "", "Save slot to read (default: user config or autosave)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full snapshot as JSON")
	return cmd
}
