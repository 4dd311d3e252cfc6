package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/plume-player/plume/internal/core"
)

var historyClear bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show play history",
	Long:  `List recently played tracks, most recent first.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "clear all history")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if historyClear {
		if err := store.ClearHistory(); err != nil {
			return fmt.Errorf("clearing history: %w", err)
		}
		if !JSONOutput() {
			fmt.Println("History cleared")
		}
		return nil
	}

	entries, err := store.History()
	if err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No history yet")
		return nil
	}

	t := NewTable("TITLE", "ARTIST", "DURATION", "PLAYED")
	for _, e := range entries {
		t.Row(
			e.Track.Title,
			e.Track.ArtistLine(),
			core.FormatDuration(e.Track.Duration),
			humanize.Time(e.PlayedAt),
		)
	}
	t.Flush()
	return nil
}
