// ABOUTME: Compact metric block widget for the admin overview
// ABOUTME: Combines icon, value, and caption in a bordered panel

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/luxefashion/luxe-cli/internal/client"
	"github.com/luxefashion/luxe-cli/internal/tui/icons"
)

// MetricBlockConfig holds configuration for a metric block
type MetricBlockConfig struct {
	Width       int
	BorderColor lipgloss.Color
	TitleColor  lipgloss.Color
	ValueColor  lipgloss.Color
}

// DefaultMetricBlockConfig returns sensible defaults
func DefaultMetricBlockConfig() MetricBlockConfig {
	return MetricBlockConfig{
		Width:       22,
		BorderColor: lipgloss.Color("#6B7280"),
		TitleColor:  lipgloss.Color("#C9A227"),
		ValueColor:  lipgloss.Color("#F9FAFB"),
	}
}

// MetricBlock renders a compact metric display block
func MetricBlock(icon icons.Icon, title, value, caption string, config MetricBlockConfig) string {
	if config.Width <= 0 {
		config.Width = 22
	}

	// border + padding
	innerWidth := config.Width - 4

	titleStr := truncate(fmt.Sprintf("%s %s", icon.String(), title), innerWidth)
	titleStyle := lipgloss.NewStyle().Foreground(config.TitleColor)

	topBorder := fmt.Sprintf("┌─ %s %s┐",
		titleStyle.Render(titleStr),
		strings.Repeat("─", max(0, innerWidth-lipgloss.Width(titleStr)-1)))

	valueStyle := lipgloss.NewStyle().Foreground(config.ValueColor).Bold(true)
	valueLine := "│  " + pad(valueStyle.Render(truncate(value, innerWidth)), innerWidth) + "│"

	captionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	captionLine := "│  " + pad(captionStyle.Render(truncate(caption, innerWidth)), innerWidth) + "│"

	bottomBorder := fmt.Sprintf("└%s┘", strings.Repeat("─", config.Width-2))

	borderStyle := lipgloss.NewStyle().Foreground(config.BorderColor)

	return strings.Join([]string{
		borderStyle.Render(topBorder),
		borderStyle.Render(valueLine),
		borderStyle.Render(captionLine),
		borderStyle.Render(bottomBorder),
	}, "\n")
}

// CountBlock renders a simple count metric
func CountBlock(icon icons.Icon, title string, count int, caption string, config MetricBlockConfig) string {
	return MetricBlock(icon, title, humanize.Comma(int64(count)), caption, config)
}

// StatsBlocks lays out the admin overview as a row of metric blocks
func StatsBlocks(stats *client.AdminStats) string {
	cfg := DefaultMetricBlockConfig()
	return lipgloss.JoinHorizontal(lipgloss.Top,
		CountBlock(icons.User, "Users", stats.TotalUsers, "registered", cfg),
		CountBlock(icons.Tag, "Sellers", stats.TotalSellers, "active", cfg),
		CountBlock(icons.Category, "Products", stats.TotalProducts, "listed", cfg),
		CountBlock(icons.Orders, "Orders", stats.TotalOrders, "placed", cfg),
		MetricBlock(icons.Revenue, "Revenue", Price(stats.Revenue), "all time", cfg),
	)
}

// pad right-fills s with spaces to width display cells
func pad(s string, width int) string {
	return s + strings.Repeat(" ", max(0, width-lipgloss.Width(s)))
}

// truncate shortens a string to maxLen cells with ellipsis if needed
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
