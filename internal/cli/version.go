package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

// Populated via ldflags at release build time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if JSONOutput() {
			_ = json.NewEncoder(os.Stdout).Encode(struct {
				Version   string `json:"version"`
				Commit    string `json:"commit"`
				BuildDate string `json:"build_date"`
				GoVersion string `json:"go_version"`
				Platform  string `json:"platform"`
			}{Version, Commit, BuildDate, runtime.Version(), runtime.GOOS + "/" + runtime.GOARCH})
			return
		}

		fmt.Printf("plume %s (%s)\n", Version, Commit)
		if Verbose() {
			fmt.Printf("  built:    %s\n", BuildDate)
			fmt.Printf("  go:       %s\n", runtime.Version())
			fmt.Printf("  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
