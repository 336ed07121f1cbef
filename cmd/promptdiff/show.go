package main

import (
	"fmt"

	"charm.land/glamour/v2"
	"github.com/spf13/cobra"
)

var flagShowWidth int

var showCmd = &cobra.Command{
	Use:   "show <version>",
	Short: "Render the prompt markdown for one version",
	Long: `Fetch the prompt file for a single version and render the markdown
to the terminal.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().IntVar(&flagShowWidth, "width", 100, "word wrap width")
}

func runShow(cmd *cobra.Command, args []string) error {
	_, client, err := loadClient()
	if err != nil {
		return err
	}

	text, err := client.FetchPrompt(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithEnvironmentConfig(),
		glamour.WithWordWrap(flagShowWidth),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := renderer.Render(text)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	fmt.Print(out)
	return nil
}
