package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	dataFile   string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "brachisto",
		Short: "Brachisto CLI - drive the orbital economy simulation",
		Long: `Brachisto CLI runs and inspects the orbital economy simulation.

Examples:
  brachisto run
  brachisto simulate --days 365 --save endgame
  brachisto simulate --days 30 --action 'allocate_research {"tree":"robotic_systems","tier":"I"}'
  brachisto state --slot autosave
  brachisto saves list
  brachisto saves delete --slot old-run`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataFile, "data", "",
		"Path to YAML static data file (default: built-in dataset)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewSimulateCommand())
	rootCmd.AddCommand(NewStateCommand())
	rootCmd.AddCommand(NewSavesCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
