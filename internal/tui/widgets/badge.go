// ABOUTME: Badge widgets for roles, stock, and discounts
// ABOUTME: Provides colored inline badges and status indicators

package widgets

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/luxefashion/luxe-cli/internal/client"
	"github.com/luxefashion/luxe-cli/internal/tui/icons"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

// LowStockThreshold is the stock count at which a product shows as running low
const LowStockThreshold = 5

// Badge colors
var (
	BadgeOKBg      = lipgloss.Color("#10B981")
	BadgeOKFg      = lipgloss.Color("#FFFFFF")
	BadgeWarnBg    = lipgloss.Color("#F59E0B")
	BadgeWarnFg    = lipgloss.Color("#000000")
	BadgeCritBg    = lipgloss.Color("#EF4444")
	BadgeCritFg    = lipgloss.Color("#FFFFFF")
	BadgeInfoBg    = lipgloss.Color("#C9A227")
	BadgeInfoFg    = lipgloss.Color("#000000")
	BadgeNeutralBg = lipgloss.Color("#6B7280")
	BadgeNeutralFg = lipgloss.Color("#FFFFFF")
)

func colors(level StatusLevel) (bg, fg lipgloss.Color) {
	switch level {
	case StatusOK:
		return BadgeOKBg, BadgeOKFg
	case StatusWarning:
		return BadgeWarnBg, BadgeWarnFg
	case StatusCritical:
		return BadgeCritBg, BadgeCritFg
	case StatusInfo:
		return BadgeInfoBg, BadgeInfoFg
	default:
		return BadgeNeutralBg, BadgeNeutralFg
	}
}

// Badge renders a colored status badge
func Badge(text string, level StatusLevel) string {
	bg, fg := colors(level)
	style := lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true)

	return style.Render(text)
}

// RoleBadge renders the user's role; plain shoppers get a neutral badge
func RoleBadge(role client.Role) string {
	switch role {
	case client.RoleAdmin:
		return Badge("ADMIN", StatusCritical)
	case client.RoleSeller:
		return Badge("SELLER", StatusInfo)
	default:
		return Badge("MEMBER", StatusNeutral)
	}
}

// StockLevel classifies product availability
func StockLevel(p client.Product) (string, StatusLevel) {
	switch {
	case !p.InStock && p.Stock <= 0:
		return "Sold out", StatusCritical
	case p.Stock > 0 && p.Stock <= LowStockThreshold:
		return fmt.Sprintf("Only %d left", p.Stock), StatusWarning
	default:
		return "In stock", StatusOK
	}
}

// StockBadge renders product availability
func StockBadge(p client.Product) string {
	text, level := StockLevel(p)
	return Badge(text, level)
}

// DiscountPercent returns the whole-percent markdown from original to price,
// or 0 when there is no markdown
func DiscountPercent(price, original float64) int {
	if original <= 0 || price >= original {
		return 0
	}
	return int(math.Round((original - price) / original * 100))
}

// DiscountBadge renders "-N%" for marked down products and "" otherwise
func DiscountBadge(price, original float64) string {
	pct := DiscountPercent(price, original)
	if pct == 0 {
		return ""
	}
	return Badge(fmt.Sprintf("-%d%%", pct), StatusCritical)
}

// StatusIcon returns the appropriate icon for a status level
func StatusIcon(level StatusLevel) string {
	bg, _ := colors(level)
	style := lipgloss.NewStyle().Foreground(bg)
	switch level {
	case StatusOK:
		return style.Render(icons.CheckOK.String())
	case StatusWarning:
		return style.Render(icons.Warning.String())
	case StatusCritical:
		return style.Render(icons.Critical.String())
	case StatusInfo:
		return style.Render(icons.Info.String())
	default:
		return style.Render("•")
	}
}

// StatusText returns styled status text with icon
func StatusText(text string, level StatusLevel) string {
	bg, _ := colors(level)
	return fmt.Sprintf("%s %s", StatusIcon(level), lipgloss.NewStyle().Foreground(bg).Render(text))
}
