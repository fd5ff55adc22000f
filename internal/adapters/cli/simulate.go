package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/brachisto/brachisto-go/internal/adapters/persistence"
	"github.com/brachisto/brachisto-go/internal/application/engine"
	"github.com/brachisto/brachisto-go/internal/application/setup"
	"github.com/brachisto/brachisto-go/internal/domain/sim"
	"github.com/brachisto/brachisto-go/internal/infrastructure/daemon"
	"github.com/brachisto/brachisto-go/internal/infrastructure/database"
)

// NewSimulateCommand creates the simulate command: a headless
// fast-forward useful for balance checks and scripted scenarios
func NewSimulateCommand() *cobra.Command {
	var (
		days        float64
		stepsPerDay float64
		saveSlot    string
		actions     []string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Fast-forward a fresh simulation and print the outcome",
		Long: `Simulate runs a new game for the given number of simulated days as
fast as the CPU allows, applying any --action flags at day zero, then
prints a summary (or the full snapshot with --json).

Actions are "name {json-payload}" pairs, the same surface the
websocket accepts.

Examples:
  brachisto simulate --days 365
  brachisto simulate --days 3650 --save longrun
  brachisto simulate --days 90 --action 'set_mine_build_slider {"value":40}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days <= 0 {
				return fmt.Errorf("--days must be positive")
			}
			cfg := loadConfig()

			provider, err := daemon.NewProvider(&cfg.Engine)
			if err != nil {
				return err
			}
			service := engine.NewService(daemon.NewEngine(&cfg.Engine, provider))

			registry := setup.NewHandlerRegistry(service)
			m, err := registry.CreateConfiguredMediator()
			if err != nil {
				return err
			}
			dispatcher := setup.NewDispatcher(m)

			ctx := context.Background()
			for _, action := range actions {
				name, payload, err := parseAction(action)
				if err != nil {
					return err
				}
				if _, err := dispatcher.Dispatch(ctx, name, payload); err != nil {
					return fmt.Errorf("action %s: %w", name, err)
				}
			}

			delta := 1.0 / stepsPerDay
			for elapsed := 0.0; elapsed < days; elapsed += delta {
				service.Tick(delta)
			}

			snap := service.Snapshot()

			if saveSlot != "" {
				db, err := database.NewConnection(&cfg.Database)
				if err != nil {
					return fmt.Errorf("failed to open database: %w", err)
				}
				defer database.Close(db)
				if err := database.AutoMigrate(db); err != nil {
					return err
				}
				if err := persistence.NewGormSaveRepository(db).Save(ctx, saveSlot, snap); err != nil {
					return err
				}
				fmt.Printf("Saved slot %q\n", saveSlot)
			}

			if asJSON {
				return printJSON(snap)
			}
			printSummary(snap)
			return nil
		},
	}

	cmd.Flags().Float64Var(&days, "days", 365, "Simulated days to run")
	cmd.Flags().Float64Var(&stepsPerDay, "steps-per-day", 10, "Tick resolution in steps per simulated day")
	cmd.Flags().StringVar(&saveSlot, "save", "", "Save the final state under this slot")
	cmd.Flags().StringArrayVar(&actions, "action", nil, "Action to apply before running (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full snapshot as JSON")
	return cmd
}

// parseAction splits "name {json}" into its parts; a bare name gets an
// empty payload
func parseAction(raw string) (string, map[string]any, error) {
	name, rest, found := strings.Cut(strings.TrimSpace(raw), " ")
	if name == "" {
		return "", nil, fmt.Errorf("empty action")
	}
	if !found || strings.TrimSpace(rest) == "" {
		return name, nil, nil
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(rest), &payload); err != nil {
		return "", nil, fmt.Errorf("action %s: bad payload: %w", name, err)
	}
	return name, payload, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSummary(snap *sim.Snapshot) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Game time\t%.1f days\n", snap.TimeDays)
	fmt.Fprintf(w, "Metal\t%.3g kg\n", snap.Metal)
	fmt.Fprintf(w, "Slag\t%.3g kg\n", snap.Slag)
	fmt.Fprintf(w, "Energy stored\t%.3g Wd\n", snap.EnergyStored)
	fmt.Fprintf(w, "Swarm mass\t%.3g / %.3g kg\n", snap.DysonMass, snap.DysonTargetMass)

	var totalProbes int
	for _, n := range snap.Probes {
		totalProbes += n
	}
	fmt.Fprintf(w, "Probes\t%d\n", totalProbes)
	fmt.Fprintf(w, "Energy limited\t%v\n", snap.EnergyLimited)
	fmt.Fprintf(w, "Metal limited\t%v\n", snap.MetalLimited)
	w.Flush()
}
