// ABOUTME: Product detail view with variant selection
// ABOUTME: Renders price, stock, sizes, and colors for one product

package catalog

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/luxefashion/luxe-cli/internal/client"
	"github.com/luxefashion/luxe-cli/internal/tui/styles"
	"github.com/luxefashion/luxe-cli/internal/tui/widgets"
)

// AddSelectionMsg is sent when the shopper adds the configured product
type AddSelectionMsg struct {
	Product  client.Product
	Size     string
	Color    string
	Quantity int
}

// BackMsg is sent when the shopper leaves the product page
type BackMsg struct{}

// Detail shows one product with size, color, and quantity pickers
type Detail struct {
	product  client.Product
	size     int
	color    int
	quantity int
	width    int
}

// NewDetail creates a product page with the first size and color selected
func NewDetail(p client.Product, width int) *Detail {
	return &Detail{product: p, quantity: 1, width: width}
}

// Product returns the product being shown
func (d *Detail) Product() client.Product {
	return d.product
}

// SetProduct swaps in a fuller copy of the product, keeping selections in range
func (d *Detail) SetProduct(p client.Product) {
	d.product = p
	if d.size >= len(p.Sizes) {
		d.size = 0
	}
	if d.color >= len(p.Colors) {
		d.color = 0
	}
}

// Selection returns the chosen size, color, and quantity
func (d *Detail) Selection() (size, color string, quantity int) {
	if len(d.product.Sizes) > 0 {
		size = d.product.Sizes[d.size]
	}
	if len(d.product.Colors) > 0 {
		color = d.product.Colors[d.color].Name
	}
	return size, color, d.quantity
}

// Init implements tea.Model
func (d *Detail) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (d *Detail) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	switch key.String() {
	case "s":
		if n := len(d.product.Sizes); n > 0 {
			d.size = (d.size + 1) % n
		}
	case "o":
		if n := len(d.product.Colors); n > 0 {
			d.color = (d.color + 1) % n
		}
	case "+", "=":
		d.quantity++
	case "-":
		if d.quantity > 1 {
			d.quantity--
		}
	case "a", "enter":
		size, color, qty := d.Selection()
		p := d.product
		return d, func() tea.Msg {
			return AddSelectionMsg{Product: p, Size: size, Color: color, Quantity: qty}
		}
	case "esc", "b":
		return d, func() tea.Msg { return BackMsg{} }
	}
	return d, nil
}

// View implements tea.Model
func (d *Detail) View() string {
	p := d.product
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(p.Name))
	sb.WriteString("\n")
	if cat := p.Category.String(); cat != "" {
		sb.WriteString(styles.Subtitle.Render(cat))
		sb.WriteString("\n")
	}

	sb.WriteString(styles.PriceStyle.Render(widgets.Price(p.Price)))
	if badge := widgets.DiscountBadge(p.Price, p.OriginalPrice); badge != "" {
		sb.WriteString(" " + styles.OriginalPriceStyle.Render(widgets.Price(p.OriginalPrice)) + " " + badge)
	}
	sb.WriteString("  " + widgets.StockBadge(p))
	sb.WriteString("\n\n")

	if p.Description != "" {
		width := d.width
		if width < 20 {
			width = 60
		}
		sb.WriteString(lipgloss.NewStyle().Width(width).Render(p.Description))
		sb.WriteString("\n\n")
	}

	size, color, qty := d.Selection()
	if len(p.Sizes) > 0 {
		sb.WriteString(fmt.Sprintf("Size:     %s  %s\n", styles.ValueStyle.Render(size), styles.Disabled.Render(strings.Join(p.Sizes, " / "))))
	}
	if len(p.Colors) > 0 {
		sb.WriteString(fmt.Sprintf("Color:    %s\n", styles.ValueStyle.Render(color)))
	}
	sb.WriteString(fmt.Sprintf("Quantity: %s\n", styles.ValueStyle.Render(fmt.Sprintf("%d", qty))))

	if p.Rating > 0 {
		sb.WriteString(styles.Disabled.Render(fmt.Sprintf("\nRated %.1f by %d shoppers", p.Rating, p.ReviewCount)))
		sb.WriteString("\n")
	}

	return sb.String()
}
