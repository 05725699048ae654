// ABOUTME: Progress bar toward the free shipping threshold
// ABOUTME: Shows how much more the shopper needs to spend to ship for free

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CompactProgressBar renders a minimal progress bar for tight spaces
func CompactProgressBar(percent float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		width = 10
	}

	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100.0 * float64(width))
	empty := width - filled

	filledStr := strings.Repeat("▓", filled)
	emptyStr := strings.Repeat("░", empty)

	return lipgloss.NewStyle().Foreground(color).Render(filledStr) +
		lipgloss.NewStyle().Foreground(lipgloss.Color("#2A2A2A")).Render(emptyStr)
}

// ShippingProgress renders the bar and a caption for a cart subtotal
// against the free shipping threshold
func ShippingProgress(subtotal, threshold float64, width int) string {
	if threshold <= 0 {
		return ""
	}
	if subtotal >= threshold {
		return CompactProgressBar(100, width, BadgeOKBg) + "\n" +
			StatusText("You qualify for free shipping", StatusOK)
	}

	percent := subtotal / threshold * 100
	caption := fmt.Sprintf("Add %s more for free shipping", Price(threshold-subtotal))
	return CompactProgressBar(percent, width, BadgeInfoBg) + "\n" +
		lipgloss.NewStyle().Foreground(BadgeNeutralBg).Render(caption)
}
