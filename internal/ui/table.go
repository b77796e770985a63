package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

func RenderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(Primary)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Foreground(Primary).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, row := range rows {
		t.Row(row...)
	}

	return t.String()
}

// RenderTemplateTable lists templates with the source each resolves from.
// Rows are identifier, frontend, database, source.
func RenderTemplateTable(rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(Primary)).
		Headers("TEMPLATE", "FRONTEND", "DATABASE", "SOURCE").
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return base.Bold(true).Foreground(Primary)
			}
			if col == 3 && row >= 0 && row < len(rows) {
				if rows[row][3] == "missing" {
					return base.Foreground(ColorError)
				}
				return base.Foreground(ColorSuccess)
			}
			return base
		})

	for _, row := range rows {
		t.Row(row...)
	}

	return t.String()
}
