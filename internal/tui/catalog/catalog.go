// ABOUTME: Product list TUI component with search, category filter, and paging
// ABOUTME: Emits page requests to the app and product selections back to it

package catalog

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/luxefashion/luxe-cli/internal/client"
	"github.com/luxefashion/luxe-cli/internal/tui/icons"
	"github.com/luxefashion/luxe-cli/internal/tui/styles"
	"github.com/luxefashion/luxe-cli/internal/tui/widgets"
)

type state int

const (
	stateList state = iota
	stateSearch
)

// PageRequestMsg asks the app to load a product page
type PageRequestMsg struct {
	Query client.ProductQuery
}

// ProductSelectedMsg is sent when a product is opened
type ProductSelectedMsg struct {
	Product client.Product
}

// AddToCartMsg is sent for a quick add from the list
type AddToCartMsg struct {
	Product client.Product
}

// CancelledMsg is sent when the user leaves the catalog
type CancelledMsg struct{}

// Catalog lists one page of products
type Catalog struct {
	products   []client.Product
	categories []client.Category
	category   int // 0 is "All", i is categories[i-1]
	query      client.ProductQuery
	total      int
	totalPages int
	loading    bool

	cursor int
	state  state
	search textinput.Model
	err    string
	width  int
}

// New creates an empty catalog; the first page is requested by the app
func New(categories []client.Category) *Catalog {
	ti := textinput.New()
	ti.Placeholder = "silk dress, leather..."
	ti.CharLimit = 64
	ti.Width = 40
	ti.Prompt = icons.Search.String() + " "

	return &Catalog{
		categories: categories,
		query:      client.ProductQuery{Page: client.DefaultPage, PerPage: client.DefaultPerPage},
		loading:    true,
		search:     ti,
	}
}

// Query returns the query for the page being shown
func (c *Catalog) Query() client.ProductQuery {
	return c.query
}

// SetCategories replaces the category filter choices
func (c *Catalog) SetCategories(categories []client.Category) {
	c.categories = categories
	if c.category > len(categories) {
		c.category = 0
	}
}

// SetPage shows a loaded page
func (c *Catalog) SetPage(page *client.ProductPage) {
	c.loading = false
	c.err = ""
	c.products = page.Products
	c.total = page.Total
	c.totalPages = page.TotalPages
	if page.Page > 0 {
		c.query.Page = page.Page
	}
	if c.cursor >= len(c.products) {
		c.cursor = 0
	}
}

// SetError shows a load failure
func (c *Catalog) SetError(msg string) {
	c.loading = false
	c.err = msg
}

// SetWidth sets the render width
func (c *Catalog) SetWidth(width int) {
	c.width = width
}

// Searching reports whether the search box has focus
func (c *Catalog) Searching() bool {
	return c.state == stateSearch
}

// Init implements tea.Model
func (c *Catalog) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (c *Catalog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	c.err = ""

	if c.state == stateSearch {
		return c.updateSearch(key)
	}
	return c.updateList(key)
}

func (c *Catalog) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if c.cursor > 0 {
			c.cursor--
		}
	case "down", "j":
		if c.cursor < len(c.products)-1 {
			c.cursor++
		}
	case "enter":
		if p, ok := c.selected(); ok {
			return c, func() tea.Msg { return ProductSelectedMsg{Product: p} }
		}
	case "a":
		if p, ok := c.selected(); ok {
			return c, func() tea.Msg { return AddToCartMsg{Product: p} }
		}
	case "/":
		c.state = stateSearch
		c.search.SetValue(c.query.Search)
		c.search.Focus()
		return c, textinput.Blink
	case "n", "right":
		if c.totalPages == 0 || c.query.Page < c.totalPages {
			return c, c.request(c.query.Page + 1)
		}
	case "p", "left":
		if c.query.Page > 1 {
			return c, c.request(c.query.Page - 1)
		}
	case "c":
		c.category = (c.category + 1) % (len(c.categories) + 1)
		c.query.Category = ""
		if c.category > 0 {
			c.query.Category = categoryKey(c.categories[c.category-1])
		}
		return c, c.request(1)
	case "esc", "b":
		return c, func() tea.Msg { return CancelledMsg{} }
	}
	return c, nil
}

func (c *Catalog) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		c.state = stateList
		c.search.Blur()
		return c, nil
	case "enter":
		c.state = stateList
		c.search.Blur()
		c.query.Search = strings.TrimSpace(c.search.Value())
		return c, c.request(1)
	}

	var cmd tea.Cmd
	c.search, cmd = c.search.Update(msg)
	return c, cmd
}

func (c *Catalog) request(page int) tea.Cmd {
	c.query.Page = page
	c.loading = true
	q := c.query
	return func() tea.Msg { return PageRequestMsg{Query: q} }
}

func (c *Catalog) selected() (client.Product, bool) {
	if c.cursor < 0 || c.cursor >= len(c.products) {
		return client.Product{}, false
	}
	return c.products[c.cursor], true
}

// categoryKey is the value the products endpoint filters on
func categoryKey(cat client.Category) string {
	if cat.Slug != "" {
		return cat.Slug
	}
	return cat.Name
}

// View implements tea.Model
func (c *Catalog) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("The Collection"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(c.filterLine()))
	b.WriteString("\n")

	if c.state == stateSearch {
		b.WriteString(c.search.View())
		b.WriteString("\n\n")
	}

	switch {
	case c.loading:
		b.WriteString(styles.Disabled.Render("Loading products..."))
		b.WriteString("\n")
	case len(c.products) == 0:
		b.WriteString(styles.Disabled.Render("No products found"))
		b.WriteString("\n")
	default:
		for i, p := range c.products {
			b.WriteString(c.renderRow(i, p))
			b.WriteString("\n")
		}
	}

	if c.totalPages > 1 {
		b.WriteString("\n")
		b.WriteString(styles.Disabled.Render(fmt.Sprintf("Page %d of %d", c.query.Page, c.totalPages)))
		b.WriteString("\n")
	}

	if c.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.StatusCritical.Render("Error: " + c.err))
	}

	return b.String()
}

func (c *Catalog) filterLine() string {
	category := "All"
	if c.category > 0 {
		category = c.categories[c.category-1].Name
	}
	line := "Category: " + category
	if c.query.Search != "" {
		line += fmt.Sprintf("  Search: %q", c.query.Search)
	}
	if c.total > 0 {
		line += fmt.Sprintf("  (%d items)", c.total)
	}
	return line
}

func (c *Catalog) renderRow(i int, p client.Product) string {
	cursor := "  "
	style := styles.Normal
	if i == c.cursor {
		cursor = "> "
		style = styles.Selected
	}

	row := cursor + style.Render(p.Name) + "  " + styles.PriceStyle.Render(widgets.Price(p.Price))
	if badge := widgets.DiscountBadge(p.Price, p.OriginalPrice); badge != "" {
		row += " " + styles.OriginalPriceStyle.Render(widgets.Price(p.OriginalPrice)) + " " + badge
	}
	if text, level := widgets.StockLevel(p); level != widgets.StatusOK {
		row += " " + widgets.StatusText(text, level)
	}
	return row
}
