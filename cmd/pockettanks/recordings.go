package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pocket-tanks/internal/games/tank"
	"github.com/vovakirdan/pocket-tanks/internal/platform/tui"
	"github.com/vovakirdan/pocket-tanks/internal/storage"
)

var (
	flagRecLimit  int
	flagRecBrowse bool
	flagRecClear  bool
)

var recordingsCmd = &cobra.Command{
	Use:   "recordings",
	Short: "List saved sessions",
	Long: `Display the most recent recorded sessions.

With --browse, opens an interactive table: Enter watches a recording,
V verifies it reproduces, D deletes it.

Examples:
  pockettanks recordings
  pockettanks recordings --limit 50
  pockettanks recordings --browse
  pockettanks recordings --clear`,
	Args: cobra.NoArgs,
	Run:  runRecordings,
}

func init() {
	recordingsCmd.Flags().IntVar(&flagRecLimit, "limit", 10, "Number of recordings to list")
	recordingsCmd.Flags().BoolVar(&flagRecBrowse, "browse", false, "Open the interactive browser")
	recordingsCmd.Flags().BoolVar(&flagRecClear, "clear", false, "Delete every recording")
}

func verifyEntry(e storage.RecordingEntry) error {
	_, err := tank.Verify(e.Recording)
	return err
}

func runRecordings(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening recordings database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagRecClear {
		if err := store.ClearRecordings(tank.GameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing recordings: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All recordings deleted.")
		return
	}

	if flagRecBrowse {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		id, err := tui.RunRecordings(store, tank.GameID, "Pocket Tanks", verifyEntry, width, height)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running browser: %v\n", err)
			os.Exit(1)
		}
		if id != 0 {
			watchRecording(store, id)
		}
		return
	}

	entries, err := store.RecentRecordings(tank.GameID, flagRecLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving recordings: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recordings - Pocket Tanks")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No recordings yet.")
		fmt.Println()
		fmt.Println("Play 'pockettanks play' and quit with q to save one!")
		return
	}

	fmt.Printf("  %-6s  %-12s  %-7s  %-7s  %-7s  %s\n", "ID", "Player", "Ticks", "Moves", "Inputs", "Date")
	fmt.Printf("  %-6s  %-12s  %-7s  %-7s  %-7s  %s\n", "--", "------", "-----", "-----", "------", "----")

	for _, e := range entries {
		fmt.Printf("  %-6d  %-12s  %-7d  %-7d  %-7d  %s\n",
			e.ID, e.Player, e.Ticks, e.Score, len(e.Inputs), e.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.Stats(tank.GameID); err == nil {
		fmt.Println()
		fmt.Printf("%d sessions, %d ticks played, best run %d moves\n",
			stats.Sessions, stats.TotalTicks, stats.BestScore)
	}
}
