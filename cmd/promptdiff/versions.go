package main

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"
)

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List the published versions",
	Long:  `Fetch and display the version catalog from the data host, oldest first.`,
	RunE:  runVersions,
}

func runVersions(cmd *cobra.Command, args []string) error {
	_, client, err := loadClient()
	if err != nil {
		return err
	}

	versions, err := client.LoadVersions(cmd.Context())
	if err != nil {
		return err
	}

	rows := make([][]string, len(versions))
	for i, v := range versions {
		age := ""
		switch i {
		case 0:
			age = "oldest"
		case len(versions) - 1:
			age = "newest"
		}
		rows[i] = []string{v, age}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers("Version", "").
		Rows(rows...).
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

	fmt.Println(t)
	return nil
}
