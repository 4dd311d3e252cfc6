package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plume-player/plume/internal/config"
	plumeerr "github.com/plume-player/plume/internal/errors"
	"github.com/plume-player/plume/internal/player"
	"github.com/plume-player/plume/internal/provider"
	"github.com/plume-player/plume/internal/storage"
	"github.com/plume-player/plume/internal/tui"
)

var (
	cfgFile string
	jsonOut bool
	verbose bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "plume",
	Short: "Stream music from the terminal",
	Long: `Plume is a modal, keyboard-driven music player for the terminal.
It searches a streaming provider, plays audio through mpv, and keeps your
history and playlists in a local store.

Running plume with no arguments launches the player.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE:          runPlayer,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.plumerc)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initConfig() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

func runPlayer(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctrl := player.New(cfg.Player)
	defer ctrl.Shutdown()

	app := &tui.App{
		Provider: provider.NewYTDLP(cfg.Provider),
		Player:   ctrl,
		Store:    store,
		Config:   cfg,
	}
	return tui.Run(app)
}

func openStore() (*storage.Store, error) {
	store, err := storage.Open(cfg.Storage.Path, cfg.History.Retention)
	if err != nil {
		return nil, fmt.Errorf("opening store at %s: %w", cfg.Storage.Path, err)
	}
	return store, nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, plumeerr.Format(err))
		os.Exit(1)
	}
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}
