package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/spf13/cobra"

	"github.com/mark3labs/promptdiff/internal/diffview"
)

var flagNoColor bool

var diffCmd = &cobra.Command{
	Use:   "diff [from] [to]",
	Short: "Print a unified diff of the prompts between two versions",
	Long: `Print a unified diff of the prompt files between two versions to stdout.

With no arguments the oldest and newest catalog entries are compared.
Output is syntax highlighted unless --no-color is set or stdout is not
a terminal-friendly destination for ANSI codes.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().BoolVar(&flagNoColor, "no-color", false, "disable syntax highlighting")
}

func runDiff(cmd *cobra.Command, args []string) error {
	_, client, err := loadClient()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	from, to := "", ""
	if len(args) > 0 {
		from = args[0]
	}
	if len(args) > 1 {
		to = args[1]
	}

	sel, err := resolvePair(ctx, client, from, to)
	if err != nil {
		return err
	}

	pair, err := client.FetchPair(ctx, sel.From, sel.To)
	if err != nil {
		return err
	}

	if pair.From == pair.To {
		fmt.Printf("No differences between %s and %s\n", sel.From, sel.To)
		return nil
	}

	out := diffview.Unified(sel.From, sel.To, pair.From, pair.To)
	if flagNoColor {
		fmt.Print(out)
		return nil
	}
	if err := quick.Highlight(os.Stdout, out, "diff", "terminal256", "catppuccin-mocha"); err != nil {
		fmt.Print(out)
	}
	return nil
}
