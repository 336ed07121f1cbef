package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build)
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "promptdiff",
	Short: "Compare prompt files between versions of a CLI tool",
	Long: `promptdiff is a terminal viewer for the prompt files shipped with each
release of a CLI tool. It fetches the version catalog and per-version
prompt markdown from a static data host, lets you pick two versions,
and renders the diff side by side (or stacked on narrow terminals).

Selections are remembered per data host via an embedded NATS JetStream
store, and every view updates a shareable from/to link.`,
	RunE: runView,
}

func init() {
	rootCmd.Flags().StringVar(&flagFrom, "from", "", "older version label to compare")
	rootCmd.Flags().StringVar(&flagTo, "to", "", "newer version label to compare")
	rootCmd.PersistentFlags().StringVar(&flagDataURL, "data-url", "", "base URL of the data host (overrides config)")
	rootCmd.Flags().BoolVar(&flagNoStore, "no-store", false, "disable the embedded store (no saved selections or history)")

	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(versionsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}
