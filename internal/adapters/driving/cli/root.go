// Package cli provides the swamp command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/swamp/internal/adapters/driven/config/file"
	"github.com/custodia-labs/swamp/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/swamp/internal/core/ports/driving"
	"github.com/custodia-labs/swamp/internal/core/services"
	"github.com/custodia-labs/swamp/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose   bool
	configDir string
	noConfig  bool
)

var (
	// settingsService backs every command that reads settings.
	settingsService driving.SettingsService

	// settingsInjected is set when SetSettingsService supplied the service,
	// so the flags must not replace it.
	settingsInjected bool
)

var rootCmd = &cobra.Command{
	Use:   "swamp",
	Short: "A todo list with subsequence search",
	Long: `swamp stores todo records and finds them by subsequence.

Records are added with a quoted description and optional #tags, marked done
by id, and searched with terms that need only appear in order, not
contiguously: "bn" matches both banana and bandana.

Commands are read one per line:
  add "buy milk" #errand
  done 0
  search mk #err`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.swamp)")
	rootCmd.PersistentFlags().BoolVar(&noConfig, "no-config", false, "use default settings and never touch the config file")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetSettingsService injects the settings service, bypassing --config-dir
// and --no-config.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
	settingsInjected = s != nil
}

// setup applies the global flags before any subcommand runs.
func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	id := logger.NewSession()
	logger.Debug("swamp %s, session %s, command %q", version, id, cmd.CommandPath())

	if settingsInjected {
		return nil
	}

	if noConfig {
		settingsService = services.NewSettingsService(memory.NewConfigStore(nil))
		return nil
	}

	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger.Debug("Using config file %s", store.Path())
	settingsService = services.NewSettingsService(store)
	return nil
}
