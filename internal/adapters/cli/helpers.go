package cli

import (
	"github.com/brachisto/brachisto-go/internal/infrastructure/config"
)

// loadConfig builds the effective configuration, letting the --data
// flag override the configured static data file
func loadConfig() *config.Config {
	cfg := config.LoadConfigOrDefault(configPath)
	if dataFile != "" {
		cfg.Engine.DataFile = dataFile
	}
	return cfg
}

// resolveSlot picks the save slot: explicit flag, then user config
// default, then "autosave"
func resolveSlot(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if handler, err := config.NewUserConfigHandler(); err == nil {
		if userCfg, err := handler.Load(); err == nil && userCfg.DefaultSlot != "" {
			return userCfg.DefaultSlot
		}
	}
	return "autosave"
}
