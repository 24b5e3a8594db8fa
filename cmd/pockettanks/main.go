// pockettanks drives a single tank around an implicit grid, in the terminal,
// over SSH, or in a desktop window.
//
// Usage:
//
//	pockettanks play              - Play in the terminal
//	pockettanks window            - Play in a 480x480 desktop window
//	pockettanks serve             - Start SSH server for remote play
//	pockettanks recordings        - List (or browse) saved sessions
//	pockettanks replay <id>       - Re-simulate a saved session and verify it
//	pockettanks config            - Print the effective configuration
//	pockettanks list              - List registered games
//
// Global flags:
//
//	--fps <rate>        - Override the tick rate (default: from config, 8)
//	--config <path>     - Use a specific config file
//	--db <path>         - Set database path (default: ~/.pockettanks/recordings.db)
//	--log-level <lvl>   - Override the log level
//	--log-file <path>   - Override the log file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pocket-tanks/internal/config"
	"github.com/vovakirdan/pocket-tanks/internal/games/tank"
	"github.com/vovakirdan/pocket-tanks/internal/logging"
)

var (
	// Global flags
	flagFPS      int
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string

	// Set by loadConfig before any subcommand runs.
	appConfig config.Config
	appSource config.Source
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pockettanks",
	Short: "Pocket Tanks - steer a tank with the arrow keys",
	Long: `Pocket Tanks drives a single tank across an implicit grid. The arrow
keys turn it; the tank never reverses in place.

Available commands:
  play        - Play in the terminal
  window      - Play in a desktop window
  serve       - Start SSH server for remote play
  recordings  - List or browse saved sessions
  replay      - Re-simulate a saved session
  config      - Print the effective configuration

Examples:
  pockettanks play
  pockettanks window --fps 16
  pockettanks serve --ssh :2222
  pockettanks recordings --browse
  pockettanks replay 12 --watch`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate override (0 = use config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pockettanks/recordings.db", "Path to recordings database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file override")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(recordingsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the config file, applies flag overrides and hands the
// tank settings to the game registry.
func loadConfig(_ *cobra.Command, _ []string) error {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	if flagFPS > 0 {
		cfg.Simulation.TickRate = flagFPS
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	if flagLogFile != "" {
		cfg.Logging.File = flagLogFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	settings, err := tank.SettingsFrom(cfg)
	if err != nil {
		return err
	}
	tank.Configure(settings)

	appConfig = cfg
	appSource = source
	return nil
}

// newLogger builds the command's logger. Interactive commands own the
// terminal, so they log to the default file unless one is configured.
func newLogger(prefix string, interactive bool) (*log.Logger, io.Closer, error) {
	opts := logging.FromConfig(appConfig.Logging)
	opts.Prefix = prefix
	if interactive && opts.File == "" {
		opts.File = logging.DefaultFile
	}
	return logging.New(opts)
}
