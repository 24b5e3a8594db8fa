package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pocket-tanks/internal/core"
	"github.com/vovakirdan/pocket-tanks/internal/games/tank"
	"github.com/vovakirdan/pocket-tanks/internal/platform/tui"
	"github.com/vovakirdan/pocket-tanks/internal/storage"
)

var flagReplayWatch bool

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a saved session",
	Long: `Replay a recorded session from its stored inputs and check that the
final tank state matches what was recorded.

Recordings carry the settings they were played with, so replays do not
depend on the current config.

Examples:
  pockettanks replay 12
  pockettanks replay 12 --watch`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayWatch, "watch", false, "Play the recording back in the terminal")
}

func runReplay(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid recording id %q\n", args[0])
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening recordings database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagReplayWatch {
		watchRecording(store, id)
		return
	}

	entry, err := store.RecordingByID(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	g, err := tank.Verify(entry.Recording)
	switch {
	case errors.Is(err, tank.ErrReplayMismatch):
		fmt.Fprintf(os.Stderr, "Recording #%d does NOT reproduce.\n%v\n", id, err)
		os.Exit(2)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error replaying recording: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Recording #%d by %s reproduces after %d ticks.\n\n", id, entry.Player, entry.Ticks)
	fmt.Print(g.DebugState())
}

// watchRecording plays a stored session back in the terminal.
func watchRecording(store *storage.Store, id int64) {
	entry, err := store.RecordingByID(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	settings, err := tank.DecodeSettings(entry.Setup)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	cfg := core.RuntimeConfig{ScreenW: width, ScreenH: height, TickRate: appConfig.Simulation.TickRate}

	logger, closer, err := newLogger("replay", true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	game := tank.NewWithSettings(settings)
	game.Reset(cfg)
	rec := entry.Recording
	if _, err := tui.Run(game, cfg, tui.Options{Logger: logger, Playback: &rec, Clipboard: true}); err != nil {
		fmt.Fprintf(os.Stderr, "Error running playback: %v\n", err)
		os.Exit(1)
	}
}
