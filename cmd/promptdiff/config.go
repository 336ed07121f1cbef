package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/mark3labs/promptdiff/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display current configuration",
	Long: `Display the current resolved configuration showing values from all sources.

Configuration precedence (highest to lowest):
  1. Environment variables (PROMPTDIFF_*)
  2. Project config (./promptdiff.yml)
  3. Global config (~/.config/promptdiff/promptdiff.yml)
  4. Defaults`,
	RunE: runConfig,
}

var flagInitProject bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Write a commented starter config file. By default the global config is
created; use --project for a config in the current directory.`,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&flagInitProject, "project", false, "write ./promptdiff.yml instead of the global config")
	configCmd.AddCommand(configInitCmd)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	globalPath := config.GlobalPath()
	projectPath := config.ProjectPath()
	absProjectPath, err := filepath.Abs(projectPath)
	if err != nil {
		absProjectPath = projectPath
	}

	globalExists := fileExists(globalPath)
	projectExists := fileExists(projectPath)

	// Build configuration values table
	configRows := [][]string{
		{"data_url", cfg.DataURL},
		{"logs_url", cfg.ResolveLogsURL()},
		{"data_dir", cfg.DataDir},
		{"log_level", cfg.LogLevel},
		{"log_file", cfg.LogFile},
		{"breakpoint", strconv.Itoa(cfg.Breakpoint)},
		{"http_timeout", cfg.HTTPTimeout.String()},
	}

	configTable := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers("Key", "Value").
		Rows(configRows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().
					Foreground(colorPrimary).
					Bold(true).
					Padding(0, 1)
			}
			style := lipgloss.NewStyle().Padding(0, 1)
			if col == 0 {
				return style.Foreground(colorBase)
			}
			return style.Foreground(colorMuted)
		})

	titleStyle := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	fmt.Println(titleStyle.Render("Configuration"))
	fmt.Println(configTable)
	fmt.Println()

	// Build config files table
	fileRows := [][]string{}
	if globalExists {
		fileRows = append(fileRows, []string{"Global", globalPath, "✓"})
	} else {
		fileRows = append(fileRows, []string{"Global", globalPath, "not found"})
	}
	if projectExists {
		fileRows = append(fileRows, []string{"Project", absProjectPath, "✓"})
	} else {
		fileRows = append(fileRows, []string{"Project", absProjectPath, "not found"})
	}

	filesTable := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers("Type", "Path", "Status").
		Rows(fileRows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().
					Foreground(colorPrimary).
					Bold(true).
					Padding(0, 1)
			}
			style := lipgloss.NewStyle().Padding(0, 1)
			if col == 2 {
				// Status column - color based on found/not found
				if row < len(fileRows) && fileRows[row][2] == "✓" {
					return style.Foreground(colorSuccess)
				}
				return style.Foreground(colorWarning)
			}
			if col == 0 {
				return style.Foreground(colorBase)
			}
			return style.Foreground(colorMuted)
		})

	fmt.Println(titleStyle.Render("Config Files"))
	fmt.Println(filesTable)

	// Show environment overrides if any
	envVars := []string{
		"PROMPTDIFF_DATA_URL",
		"PROMPTDIFF_LOGS_URL",
		"PROMPTDIFF_DATA_DIR",
		"PROMPTDIFF_LOG_LEVEL",
		"PROMPTDIFF_LOG_FILE",
		"PROMPTDIFF_BREAKPOINT",
		"PROMPTDIFF_HTTP_TIMEOUT",
	}

	var envRows [][]string
	for _, name := range envVars {
		if val := os.Getenv(name); val != "" {
			envRows = append(envRows, []string{name, val})
		}
	}

	if len(envRows) > 0 {
		fmt.Println()
		envTable := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
			Headers("Variable", "Value").
			Rows(envRows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return lipgloss.NewStyle().
						Foreground(colorPrimary).
						Bold(true).
						Padding(0, 1)
				}
				style := lipgloss.NewStyle().Padding(0, 1)
				if col == 0 {
					return style.Foreground(colorBase)
				}
				return style.Foreground(colorMuted)
			})

		fmt.Println(titleStyle.Render("Environment Overrides"))
		fmt.Println(envTable)
	}

	if !globalExists && !projectExists {
		fmt.Println()
		noteStyle := lipgloss.NewStyle().Foreground(colorWarning)
		fmt.Println(noteStyle.Render("No config files found. Run 'promptdiff config init' to create one."))
	}

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.GlobalPath()
	if flagInitProject {
		path = config.ProjectPath()
	}
	if err := config.WriteDefault(path); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
