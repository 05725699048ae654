// ABOUTME: Catalog commands for luxe CLI
// ABOUTME: Lists products and categories and shows product details

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/luxefashion/luxe-cli/internal/client"
	"github.com/luxefashion/luxe-cli/internal/tui/widgets"
)

var (
	productsCategory string
	productsSearch   string
	productsPage     int
	productsPerPage  int
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List products",
	Long: `List one page of the catalog, optionally filtered by category or a search term.

Example:
  luxe products --category dresses --search silk --page 2`,
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			q := client.ProductQuery{
				Category: productsCategory,
				Search:   productsSearch,
				Page:     productsPage,
				PerPage:  productsPerPage,
			}
			return runProducts(ctx, os.Stdout, q)
		})
	},
}

var productCmd = &cobra.Command{
	Use:   "product <id>",
	Short: "Show product details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runProduct(ctx, os.Stdout, args[0])
		})
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List and manage categories",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runCategories(ctx, os.Stdout)
		})
	},
}

func init() {
	rootCmd.AddCommand(productsCmd, productCmd, categoriesCmd)

	productsCmd.Flags().StringVar(&productsCategory, "category", "", "Category slug or name")
	productsCmd.Flags().StringVar(&productsSearch, "search", "", "Search term")
	productsCmd.Flags().IntVar(&productsPage, "page", 1, "Page number")
	productsCmd.Flags().IntVar(&productsPerPage, "per-page", client.DefaultPerPage, "Products per page")
}

// runProducts lists one page of products and returns exit code
func runProducts(ctx context.Context, w io.Writer, q client.ProductQuery) int {
	c := client.New(GetAPIURL())

	page, err := c.ListProducts(ctx, q)
	if err != nil {
		return printErr(w, err)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(page))
	} else {
		fmt.Fprintln(w, formatProductsHuman(page))
	}
	return 0
}

// formatProductsHuman renders a product page as a table
func formatProductsHuman(page *client.ProductPage) string {
	if len(page.Products) == 0 {
		return "No products found."
	}

	table := uitable.New()
	table.MaxColWidth = 40
	table.AddRow("ID", "NAME", "CATEGORY", "PRICE", "STOCK")
	for _, p := range page.Products {
		price := widgets.Price(p.Price)
		if pct := widgets.DiscountPercent(p.Price, p.OriginalPrice); pct > 0 {
			price = fmt.Sprintf("%s (-%d%%)", price, pct)
		}
		stock, _ := widgets.StockLevel(p)
		table.AddRow(p.ID, p.Name, p.Category.String(), price, stock)
	}

	footer := fmt.Sprintf("Page %d", max(page.Page, 1))
	if page.TotalPages > 0 {
		footer += fmt.Sprintf(" of %d", page.TotalPages)
	}
	if page.Total > 0 {
		footer += fmt.Sprintf(" (%d products)", page.Total)
	}
	return table.String() + "\n\n" + footer
}

// runProduct shows one product and returns exit code
func runProduct(ctx context.Context, w io.Writer, id string) int {
	c := client.New(GetAPIURL())

	p, err := c.GetProduct(ctx, id)
	if err != nil {
		return printErr(w, err)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(p))
	} else {
		fmt.Fprintln(w, formatProductHuman(p))
	}
	return 0
}

// formatProductHuman renders product details
func formatProductHuman(p *client.Product) string {
	table := uitable.New()
	table.MaxColWidth = 60
	table.Wrap = true

	price := widgets.Price(p.Price)
	if pct := widgets.DiscountPercent(p.Price, p.OriginalPrice); pct > 0 {
		price = fmt.Sprintf("%s (was %s, -%d%%)", price, widgets.Price(p.OriginalPrice), pct)
	}
	stock, _ := widgets.StockLevel(*p)

	table.AddRow("Name:", p.Name)
	table.AddRow("ID:", p.ID)
	table.AddRow("Category:", p.Category.String())
	table.AddRow("Price:", price)
	table.AddRow("Stock:", stock)
	if len(p.Sizes) > 0 {
		table.AddRow("Sizes:", strings.Join(p.Sizes, ", "))
	}
	if len(p.Colors) > 0 {
		names := make([]string, len(p.Colors))
		for i, c := range p.Colors {
			names[i] = c.Name
		}
		table.AddRow("Colors:", strings.Join(names, ", "))
	}
	if p.Description != "" {
		table.AddRow("About:", p.Description)
	}
	return table.String()
}

// runCategories lists categories and returns exit code
func runCategories(ctx context.Context, w io.Writer) int {
	c := client.New(GetAPIURL())

	cats, err := c.ListCategories(ctx)
	if err != nil {
		return printErr(w, err)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(cats))
	} else {
		fmt.Fprintln(w, formatCategoriesHuman(cats))
	}
	return 0
}

// formatCategoriesHuman renders categories as a table
func formatCategoriesHuman(cats []client.Category) string {
	if len(cats) == 0 {
		return "No categories."
	}
	table := uitable.New()
	table.AddRow("ID", "NAME", "SLUG", "PRODUCTS")
	for _, c := range cats {
		table.AddRow(c.ID, c.Name, c.Slug, c.ProductCount)
	}
	return table.String()
}
