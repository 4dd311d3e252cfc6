package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plume-player/plume/internal/core"
)

var playlistsCmd = &cobra.Command{
	Use:   "playlists",
	Short: "Manage playlists",
	Long:  `List, inspect and delete locally stored playlists.`,
	RunE:  runPlaylistsList,
}

var playlistsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a playlist's tracks",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistsShow,
}

var playlistsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an empty playlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistsCreate,
}

var playlistsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a playlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistsDelete,
}

func init() {
	playlistsCmd.AddCommand(playlistsShowCmd)
	playlistsCmd.AddCommand(playlistsCreateCmd)
	playlistsCmd.AddCommand(playlistsDeleteCmd)
	rootCmd.AddCommand(playlistsCmd)
}

func runPlaylistsList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	names, err := store.Playlists()
	if err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(names)
	}

	if len(names) == 0 {
		fmt.Println("No playlists yet")
		return nil
	}

	t := NewTable("NAME", "TRACKS")
	for _, name := range names {
		tracks, err := store.Playlist(name)
		if err != nil {
			return err
		}
		t.Row(name, fmt.Sprintf("%d", len(tracks)))
	}
	t.Flush()
	return nil
}

func runPlaylistsShow(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	tracks, err := store.Playlist(args[0])
	if err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(tracks)
	}

	t := NewTable("#", "TITLE", "ARTIST", "DURATION")
	for i, track := range tracks {
		t.Row(
			fmt.Sprintf("%d", i+1),
			track.Title,
			track.ArtistLine(),
			core.FormatDuration(track.Duration),
		)
	}
	t.Flush()
	return nil
}

func runPlaylistsCreate(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.CreatePlaylist(args[0]); err != nil {
		return err
	}
	if !JSONOutput() {
		fmt.Printf("Created playlist %q\n", args[0])
	}
	return nil
}

func runPlaylistsDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeletePlaylist(args[0]); err != nil {
		return err
	}
	if !JSONOutput() {
		fmt.Printf("Deleted playlist %q\n", args[0])
	}
	return nil
}
