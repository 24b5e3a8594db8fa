package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pocket-tanks/internal/core"
	"github.com/vovakirdan/pocket-tanks/internal/games/tank"
	"github.com/vovakirdan/pocket-tanks/internal/platform/tui"
	"github.com/vovakirdan/pocket-tanks/internal/registry"
	"github.com/vovakirdan/pocket-tanks/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Drive the tank in the terminal.

Controls:
  Arrows     - Turn (the tank never reverses in place)
  P/Esc      - Pause
  R          - Restart
  Ctrl+S     - Save a screenshot to ~/.pockettanks/screenshots
  Ctrl+Y     - Copy the tank state to the clipboard
  Q/Ctrl+C   - Quit and save the recording

Examples:
  pockettanks play
  pockettanks play --fps 16
  pockettanks play --config ./my-tank.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

// playerName identifies local sessions in the recordings table.
func playerName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}

func runPlay(cmd *cobra.Command, args []string) {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: appConfig.Simulation.TickRate,
	}

	game, err := registry.Create(tank.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	game.Reset(cfg)

	logger, closer, err := newLogger("play", true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()
	logger.Debug("config loaded", "source", appSource)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open recordings database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	id, runErr := tui.Run(game, cfg, tui.Options{
		Store:     store,
		Logger:    logger,
		Player:    playerName(),
		Clipboard: true,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
	if id != 0 {
		fmt.Printf("Recording saved as #%d. Replay it with 'pockettanks replay %d --watch'.\n", id, id)
	}
}
