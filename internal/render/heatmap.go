package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultMaxCells bounds the heat map width and height in cells.
const DefaultMaxCells = 48

// Heatmap draws a frame as colored two-column cells, downsampling to at most
// maxCells per axis.
func Heatmap(f Frame, scale Scale, maxCells int) string {
	if len(f.Field) == 0 {
		return ""
	}
	cols := sample(f.Nodes, maxCells)
	rows := sample(f.Rows(), maxCells)

	var b strings.Builder
	for i, row := range rows {
		for _, col := range cols {
			c := Hex(scale.Color(f.At(row, col)))
			b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(c)).Render("  "))
		}
		if i < len(rows)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Legend draws the color bar with its range labels.
func Legend(scale Scale, width int) string {
	if width < 2 {
		width = 2
	}
	var b strings.Builder
	for i := 0; i < width; i++ {
		x := float64(i) / float64(width-1)
		v := scale.Min + x*(scale.Max-scale.Min)
		b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(Hex(scale.Color(v)))).Render(" "))
	}
	lo := formatTemp(scale.Min)
	hi := formatTemp(scale.Max)
	pad := width - len(lo) - len(hi)
	if pad < 1 {
		pad = 1
	}
	return b.String() + "\n" + lo + strings.Repeat(" ", pad) + hi
}
