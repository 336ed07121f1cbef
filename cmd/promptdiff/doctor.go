package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/mark3labs/promptdiff/internal/catalog"
	"github.com/mark3labs/promptdiff/internal/config"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the data host and environment",
	Long: `Check that promptdiff can reach its data host and write local state.

This command verifies that:
- data_url is configured
- The data host is reachable and publishes a version catalog
- The update pipeline has not reported an error
- The data directory is writable`,
	RunE: runDoctor,
}

// Theme colors (catppuccin mocha)
var (
	colorPrimary = lipgloss.Color("#cba6f7") // Mauve
	colorMuted   = lipgloss.Color("#a6adc8") // Subtext0
	colorBase    = lipgloss.Color("#cdd6f4") // Text
	colorSuccess = lipgloss.Color("#a6e3a1") // Green
	colorWarning = lipgloss.Color("#f9e2af") // Yellow
	colorError   = lipgloss.Color("#f38ba8") // Red
	colorBorder  = lipgloss.Color("#585b70") // Surface2
)

type checkResult struct {
	name    string
	status  string
	details string
}

func runDoctor(cmd *cobra.Command, args []string) error {
	var results []checkResult
	allOk := true

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if flagDataURL != "" {
		cfg.DataURL = flagDataURL
	}

	// Check data host configuration and reachability
	if cfg.DataURL == "" {
		results = append(results, checkResult{
			name:    "data host",
			status:  "FAIL",
			details: "data_url not set. Run 'promptdiff config init'",
		})
		allOk = false
	} else {
		client := catalog.NewClient(cfg.DataURL, 10*time.Second)
		ctx := cmd.Context()

		if err := client.CheckService(ctx); err != nil {
			results = append(results, checkResult{
				name:    "update service",
				status:  "WARN",
				details: err.Error(),
			})
		} else {
			results = append(results, checkResult{
				name:    "update service",
				status:  "OK",
				details: "no reported errors",
			})
		}

		versions, err := client.LoadVersions(ctx)
		if err != nil {
			results = append(results, checkResult{
				name:    "data host",
				status:  "FAIL",
				details: err.Error(),
			})
			allOk = false
		} else {
			results = append(results, checkResult{
				name:    "data host",
				status:  "OK",
				details: fmt.Sprintf("%d versions at %s", len(versions), cfg.DataURL),
			})
		}
	}

	// Check data directory is writable
	probe := filepath.Join(cfg.DataDir, ".doctor")
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		results = append(results, checkResult{
			name:    "data dir",
			status:  "FAIL",
			details: fmt.Sprintf("cannot create %s: %v", cfg.DataDir, err),
		})
		allOk = false
	} else if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		results = append(results, checkResult{
			name:    "data dir",
			status:  "FAIL",
			details: fmt.Sprintf("not writable: %v", err),
		})
		allOk = false
	} else {
		_ = os.Remove(probe)
		results = append(results, checkResult{
			name:    "data dir",
			status:  "OK",
			details: cfg.DataDir,
		})
	}

	// Build rows with status icons
	rows := make([][]string, len(results))
	for i, r := range results {
		var icon string
		switch r.status {
		case "OK":
			icon = "✓"
		case "FAIL":
			icon = "⊗"
		case "WARN":
			icon = "⊘"
		}
		rows[i] = []string{r.name, icon, r.details}
	}

	// Create styled table
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers("Check", "Status", "Details").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().
					Foreground(colorPrimary).
					Bold(true).
					Padding(0, 1)
			}

			style := lipgloss.NewStyle().Padding(0, 1)

			// Style status column with colors
			if col == 1 {
				status := results[row].status
				switch status {
				case "OK":
					return style.Foreground(colorSuccess)
				case "FAIL":
					return style.Foreground(colorError)
				case "WARN":
					return style.Foreground(colorWarning)
				}
			}

			// Name column
			if col == 0 {
				return style.Foreground(colorBase)
			}

			// Details column
			return style.Foreground(colorMuted)
		})

	fmt.Println(t)

	// Summary
	fmt.Println()
	successStyle := lipgloss.NewStyle().Foreground(colorSuccess)
	errorStyle := lipgloss.NewStyle().Foreground(colorError)

	if allOk {
		fmt.Println(successStyle.Render("✓ All checks passed!"))
		return nil
	}
	fmt.Println(errorStyle.Render("⊗ Some checks failed."))
	return fmt.Errorf("doctor check failed")
}
