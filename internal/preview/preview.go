// Package preview draws a status panel in the terminal, the way discord
// would lay it out: wide sections stacked, narrow ones side by side.
package preview

import (
	"strings"

	"teampanel/internal/panel"

	"github.com/charmbracelet/lipgloss"
)

const (
	DefaultWidth = 72
	minWidth     = 30
)

func Render(p panel.Panel, width int) string {
	if width < minWidth {
		width = DefaultWidth
	}
	accent := lipgloss.Color(p.Accent.Hex())
	inner := width - 4

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	headingStyle := lipgloss.NewStyle().Bold(true)
	mutedStyle := lipgloss.NewStyle().Faint(true)

	blocks := []string{titleStyle.Render(p.Title)}
	if p.Description != "" {
		blocks = append(blocks, p.Description)
	}

	// Narrow sections are collected until the next wide one
	var row []panel.Section
	flush := func() {
		if len(row) == 0 {
			return
		}
		columnWidth := inner / len(row)
		columns := make([]string, 0, len(row))
		for _, section := range row {
			columns = append(columns, renderSection(section, headingStyle, columnWidth))
		}
		blocks = append(blocks, lipgloss.JoinHorizontal(lipgloss.Top, columns...))
		row = nil
	}
	for _, section := range p.Sections {
		if section.Layout == panel.Narrow {
			row = append(row, section)
			continue
		}
		flush()
		blocks = append(blocks, renderSection(section, headingStyle, inner))
	}
	flush()

	footer := p.Footer
	if !p.Timestamp.IsZero() {
		footer += " • " + p.Timestamp.Format("2006-01-02 15:04 MST")
	}
	if footer != "" {
		blocks = append(blocks, mutedStyle.Render(footer))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Width(width - 2)
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, blocks...))
}

func renderSection(section panel.Section, headingStyle lipgloss.Style, width int) string {
	body := strings.TrimRight(section.Body, "\n")
	content := lipgloss.JoinVertical(lipgloss.Left, headingStyle.Render(section.Heading), body)
	return lipgloss.NewStyle().Width(width).PaddingBottom(1).Render(content)
}
