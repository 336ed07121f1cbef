package main

import (
	"fmt"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/mark3labs/promptdiff/internal/config"
	"github.com/mark3labs/promptdiff/internal/store"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent comparison activity",
	Long: `Show the most recent selection and comparison events recorded by the
embedded store.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "maximum number of events to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ns, err := store.StartEmbedded(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	nc, err := store.ConnectInProcess(ns)
	if err != nil {
		ns.Shutdown()
		return fmt.Errorf("failed to connect to store: %w", err)
	}
	defer func() { _ = store.Shutdown(nc, ns) }()

	st, err := store.Open(cmd.Context(), nc)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	events, err := st.RecentEvents(cmd.Context(), flagHistoryLimit)
	if err != nil {
		return fmt.Errorf("failed to read events: %w", err)
	}
	if len(events) == 0 {
		fmt.Println("No recorded activity.")
		return nil
	}

	rows := make([][]string, len(events))
	for i, ev := range events {
		pair := ""
		if ev.From != "" || ev.To != "" {
			pair = ev.From + " → " + ev.To
		}
		rows[i] = []string{
			ev.Time.Local().Format(time.DateTime),
			ev.Kind,
			pair,
			ev.Host,
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers("When", "Event", "Versions", "Host").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().
					Foreground(colorPrimary).
					Bold(true).
					Padding(0, 1)
			}
			style := lipgloss.NewStyle().Padding(0, 1)
			if col == 1 && row < len(events) && events[row].Kind == store.EventLoadError {
				return style.Foreground(colorError)
			}
			if col == 2 {
				return style.Foreground(colorBase)
			}
			return style.Foreground(colorMuted)
		})

	fmt.Println(t)
	return nil
}
