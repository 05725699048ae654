// ABOUTME: Price formatting shared by the TUI and CLI output
// ABOUTME: Renders dollar amounts with humanized thousands separators

package widgets

import (
	"github.com/dustin/go-humanize"
)

// Price formats an amount in dollars with thousands separators, e.g. $1,234.50
func Price(v float64) string {
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}
