package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/brachisto/brachisto-go/internal/adapters/persistence"
	"github.com/brachisto/brachisto-go/internal/infrastructure/config"
	"github.com/brachisto/brachisto-go/internal/infrastructure/database"
)

// NewSavesCommand creates the saves command with subcommands
func NewSavesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saves",
		Short: "Manage save slots",
	}

	cmd.AddCommand(newSavesListCommand())
	cmd.AddCommand(newSavesDeleteCommand())
	cmd.AddCommand(newSavesDefaultCommand())

	return cmd
}

func newSavesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List save slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()

			db, err := database.NewConnection(&cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer database.Close(db)

			infos, err := persistence.NewGormSaveRepository(db).List(context.Background())
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				fmt.Println("No save slots")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SLOT\tSAVED\tGAME TIME\tPROBES")
			for _, info := range infos {
				fmt.Fprintf(w, "%s\t%s\t%.1f days\t%d\n",
					info.Name,
					info.SavedAt.Format("2006-01-02 15:04"),
					info.GameTime,
					info.TotalProbe,
				)
			}
			return w.Flush()
		},
	}
}

func newSavesDeleteCommand() *cobra.Command {
	var slot string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a save slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if slot == "" {
				return fmt.Errorf("--slot is required")
			}
			cfg := loadConfig()

			db, err := database.NewConnection(&cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer database.Close(db)

			if err := persistence.NewGormSaveRepository(db).Delete(context.Background(), slot); err != nil {
				return err
			}
			fmt.Printf("Deleted slot %q\n", slot)
			return nil
		},
	}

	cmd.Flags().StringVar(&slot, "slot", "", "Save slot to delete")
	return cmd
}

func newSavesDefaultCommand() *cobra.Command {
	var slot string

	cmd := &cobra.Command{
		Use:   "default",
		Short: "Set the default save slot for state commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			if slot == "" {
				return fmt.Errorf("--slot is required")
			}
			handler, err := config.NewUserConfigHandler()
			if err != nil {
				return err
			}
			if err := handler.SetDefaultSlot(slot); err != nil {
				return err
			}
			fmt.Printf("Default slot set to %q (%s)\n", slot, handler.GetConfigPath())
			return nil
		},
	}

	cmd.Flags().StringVar(&slot, "slot", "", "Save slot to use by default")
	return cmd
}
