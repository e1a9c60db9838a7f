// ABOUTME: Compact bar showing what share of a total a counter represents
// ABOUTME: Used next to enrollment and account counters in the stats output

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/academia-console/internal/tui/styles"
)

// DefaultBarWidth is used when a non-positive width is given.
const DefaultBarWidth = 20

// Percent returns part as a percentage of total, clamped to [0,100].
func Percent(part, total int64) float64 {
	if total <= 0 || part <= 0 {
		return 0
	}
	if part >= total {
		return 100
	}
	return float64(part) / float64(total) * 100
}

// CompactBar renders a minimal bar for tight spaces
func CompactBar(percent float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		width = DefaultBarWidth
	}
	percent = min(max(percent, 0), 100)

	filled := int(percent / 100.0 * float64(width))
	empty := width - filled

	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("▓", filled)) +
		lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("░", empty))
}

// ShareBar renders the bar for part of total followed by the percentage.
func ShareBar(part, total int64, width int, color lipgloss.Color) string {
	p := Percent(part, total)
	return fmt.Sprintf("%s %3.0f%%", CompactBar(p, width, color), p)
}
