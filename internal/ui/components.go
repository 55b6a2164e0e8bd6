package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// kvLabelWidth aligns the label column of KV rows.
const kvLabelWidth = 16

// Card renders lines inside a rounded border with an optional title row.
func Card(title string, lines ...string) string {
	content := strings.Join(lines, "\n")
	if title != "" {
		content = Title.Render(title) + "\n\n" + content
	}
	return CardStyle.Render(content)
}

// KV renders one aligned label/value row for use inside a Card.
func KV(label, value string) string {
	padded := fmt.Sprintf("%-*s", kvLabelWidth, label)
	return Dim.Render(padded) + Body.Render(value)
}

// Bar displays a horizontal meter filled to percent (0-100).
func Bar(percent float64, width int) string {
	if width < 4 {
		width = 4
	}

	filled := int(float64(width) * percent / 100)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	empty := width - filled

	filledStr := lipgloss.NewStyle().
		Background(Primary).
		Render(strings.Repeat(" ", filled))

	emptyStr := lipgloss.NewStyle().
		Background(Border).
		Render(strings.Repeat(" ", empty))

	return filledStr + emptyStr + Dim.Render(fmt.Sprintf("  %.0f%%", percent))
}

// Table renders rows with aligned columns. The header row is dimmed and
// underlined with a rule.
func Table(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	formatRow := func(cells []string) string {
		parts := make([]string, 0, len(cells))
		for i, cell := range cells {
			parts = append(parts, fmt.Sprintf("%-*s", widths[i], cell))
		}
		return strings.Join(parts, "   ")
	}

	total := 0
	for _, w := range widths {
		total += w
	}
	total += 3 * (len(widths) - 1)

	var b strings.Builder
	b.WriteString(Dim.Render(formatRow(header)))
	b.WriteString("\n")
	b.WriteString(Dim.Render(strings.Repeat("─", total)))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(Body.Render(formatRow(row)))
	}
	return b.String()
}
