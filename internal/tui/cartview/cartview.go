// ABOUTME: Cart view displaying line items, totals, and free shipping progress
// ABOUTME: Tracks the highlighted line so the app can adjust or remove it

package cartview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/luxefashion/luxe-cli/internal/cart"
	"github.com/luxefashion/luxe-cli/internal/checkout"
	"github.com/luxefashion/luxe-cli/internal/tui/styles"
	"github.com/luxefashion/luxe-cli/internal/tui/widgets"
)

// CartView renders the local cart
type CartView struct {
	items   []cart.LineItem
	count   int
	total   float64
	cursor  int
	loaded  bool
	pending bool
	width   int
	height  int
}

// New creates an empty cart view
func New(width, height int) *CartView {
	return &CartView{
		width:  width,
		height: height,
	}
}

// SetItems shows a snapshot of the cart
func (v *CartView) SetItems(items []cart.LineItem, count int, total float64) {
	v.items = items
	v.count = count
	v.total = total
	v.loaded = true
	v.pending = false
	if v.cursor >= len(items) {
		v.cursor = max(0, len(items)-1)
	}
}

// SetPending marks a mutation in flight
func (v *CartView) SetPending(pending bool) {
	v.pending = pending
}

// SetSize updates the view dimensions
func (v *CartView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// MoveUp moves the highlight to the previous line
func (v *CartView) MoveUp() {
	if v.cursor > 0 {
		v.cursor--
	}
}

// MoveDown moves the highlight to the next line
func (v *CartView) MoveDown() {
	if v.cursor < len(v.items)-1 {
		v.cursor++
	}
}

// Selected returns the highlighted line
func (v *CartView) Selected() (cart.LineItem, bool) {
	if v.cursor < 0 || v.cursor >= len(v.items) {
		return cart.LineItem{}, false
	}
	return v.items[v.cursor], true
}

// View renders the cart
func (v *CartView) View() string {
	if !v.loaded {
		return lipgloss.NewStyle().Width(v.width).Render("Loading cart...")
	}

	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Your Cart"))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("%d item(s)", v.count)))
	sb.WriteString("\n")

	if len(v.items) == 0 {
		sb.WriteString(styles.Disabled.Render("Your cart is empty"))
		sb.WriteString("\n")
	}

	for i, item := range v.items {
		cursor := "  "
		style := styles.Normal
		if i == v.cursor {
			cursor = "> "
			style = styles.Selected
		}
		sb.WriteString(cursor + style.Render(item.Name))
		if variant := variantLabel(item); variant != "" {
			sb.WriteString(" " + styles.Disabled.Render(variant))
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("    %d x %s = %s\n",
			item.Quantity,
			widgets.Price(item.Price),
			styles.PriceStyle.Render(widgets.Price(item.Subtotal()))))
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Subtotal: %s\n", styles.ValueStyle.Render(widgets.Price(v.total))))
	if len(v.items) > 0 {
		barWidth := 20
		if v.width > 30 {
			barWidth = min(40, v.width-10)
		}
		sb.WriteString(widgets.ShippingProgress(v.total, checkout.FreeShippingThreshold, barWidth))
		sb.WriteString("\n")
	}

	if v.pending {
		sb.WriteString("\n")
		sb.WriteString(styles.Disabled.Render("Updating..."))
	}

	return lipgloss.NewStyle().
		Width(v.width).
		Render(sb.String())
}

func variantLabel(item cart.LineItem) string {
	var parts []string
	if item.Size != "" {
		parts = append(parts, "Size "+item.Size)
	}
	if item.Color != "" {
		parts = append(parts, item.Color)
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
