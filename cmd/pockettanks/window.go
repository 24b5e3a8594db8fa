package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pocket-tanks/internal/core"
	"github.com/vovakirdan/pocket-tanks/internal/games/tank"
	"github.com/vovakirdan/pocket-tanks/internal/platform/window"
	"github.com/vovakirdan/pocket-tanks/internal/registry"
	"github.com/vovakirdan/pocket-tanks/internal/storage"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open the game in a desktop window sized from the config (480x480 by
default) on a white background.

Controls:
  Arrows  - Turn
  P/Esc   - Pause
  R       - Restart
  Q       - Quit and save the recording`,
	Args: cobra.NoArgs,
	Run:  runWindow,
}

func runWindow(cmd *cobra.Command, args []string) {
	w := appConfig.Window
	cfg := core.RuntimeConfig{
		ScreenW:  w.Width,
		ScreenH:  w.Height,
		TickRate: appConfig.Simulation.TickRate,
	}

	game, err := registry.Create(tank.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	game.Reset(cfg)

	logger, closer, err := newLogger("window", true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open recordings database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	err = window.Run(game, window.Options{
		Title:    w.Title,
		Width:    w.Width,
		Height:   w.Height,
		TickRate: cfg.TickRate,
		Store:    store,
		Logger:   logger,
		Player:   playerName(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running window: %v\n", err)
		os.Exit(1)
	}
}
