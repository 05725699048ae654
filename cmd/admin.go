// ABOUTME: Admin and seller commands for luxe CLI
// ABOUTME: Category management, dashboard stats, and new product listings

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/luxefashion/luxe-cli/internal/client"
	"github.com/luxefashion/luxe-cli/internal/tui/widgets"
)

var (
	categoryName  string
	categoryImage string

	statsPage  int
	statsLimit int

	newProduct client.ProductInput
)

var categoriesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a category (admin)",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runCategoryCreate(ctx, os.Stdout, client.CategoryInput{Name: categoryName, ImagePath: categoryImage})
		})
	},
}

var categoriesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Rename a category or replace its image (admin)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runCategoryUpdate(ctx, os.Stdout, args[0], client.CategoryInput{Name: categoryName, ImagePath: categoryImage})
		})
	},
}

var categoriesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a category (admin)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runCategoryDelete(ctx, os.Stdout, args[0])
		})
	},
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Store administration",
}

var adminStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dashboard totals and users (admin)",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runAdminStats(ctx, os.Stdout, statsPage, statsLimit)
		})
	},
}

var sellerCmd = &cobra.Command{
	Use:   "seller",
	Short: "Seller tools",
}

var sellerAddProductCmd = &cobra.Command{
	Use:   "add-product",
	Short: "List a new product (seller or admin)",
	Long: `List a new product. Images are uploaded from local files.

Example:
  luxe seller add-product --name "Silk Scarf" --price 120 --category accessories \
    --size S --size M --color Black --stock 10 --image scarf.jpg`,
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runAddProduct(ctx, os.Stdout, newProduct)
		})
	},
}

func init() {
	categoriesCmd.AddCommand(categoriesCreateCmd, categoriesUpdateCmd, categoriesDeleteCmd)
	for _, c := range []*cobra.Command{categoriesCreateCmd, categoriesUpdateCmd} {
		c.Flags().StringVar(&categoryName, "name", "", "Category name")
		c.Flags().StringVar(&categoryImage, "image", "", "Path to a category image")
	}

	rootCmd.AddCommand(adminCmd, sellerCmd)
	adminCmd.AddCommand(adminStatsCmd)
	adminStatsCmd.Flags().IntVar(&statsPage, "page", 1, "Users page")
	adminStatsCmd.Flags().IntVar(&statsLimit, "limit", 10, "Users per page")

	sellerCmd.AddCommand(sellerAddProductCmd)
	f := sellerAddProductCmd.Flags()
	f.StringVar(&newProduct.Name, "name", "", "Product name")
	f.StringVar(&newProduct.Description, "description", "", "Product description")
	f.Float64Var(&newProduct.Price, "price", 0, "Price")
	f.Float64Var(&newProduct.OriginalPrice, "original-price", 0, "Price before discount")
	f.StringVar(&newProduct.Category, "category", "", "Category id")
	f.StringArrayVar(&newProduct.Sizes, "size", nil, "Available size (repeatable)")
	f.StringArrayVar(&newProduct.Colors, "color", nil, "Available color (repeatable)")
	f.IntVar(&newProduct.Stock, "stock", 0, "Units in stock")
	f.StringArrayVar(&newProduct.ImagePaths, "image", nil, "Path to a product image (repeatable)")
}

// adminShop builds a shop and checks the signed-in user holds one of roles
func adminShop(ctx context.Context, w io.Writer, roles ...client.Role) (*shop, int) {
	sh, err := newShop(ctx, w)
	if err != nil {
		return nil, printErr(w, err)
	}
	if err := sh.session.RequireRole(roles...); err != nil {
		sh.close()
		fmt.Fprintf(w, "Error: %v\n", err)
		return nil, 1
	}
	return sh, 0
}

// runCategoryCreate creates a category and returns exit code
func runCategoryCreate(ctx context.Context, w io.Writer, in client.CategoryInput) int {
	if in.Name == "" {
		return printErr(w, fmt.Errorf("--name is required"))
	}
	sh, code := adminShop(ctx, w, client.RoleAdmin)
	if sh == nil {
		return code
	}
	defer sh.close()

	cat, err := sh.api.CreateCategory(ctx, in)
	if err != nil {
		return printErr(w, err)
	}
	return reportCategory(w, "Created", cat)
}

// runCategoryUpdate updates a category and returns exit code
func runCategoryUpdate(ctx context.Context, w io.Writer, id string, in client.CategoryInput) int {
	if in.Name == "" && in.ImagePath == "" {
		return printErr(w, fmt.Errorf("nothing to update: pass --name or --image"))
	}
	sh, code := adminShop(ctx, w, client.RoleAdmin)
	if sh == nil {
		return code
	}
	defer sh.close()

	cat, err := sh.api.UpdateCategory(ctx, id, in)
	if err != nil {
		return printErr(w, err)
	}
	return reportCategory(w, "Updated", cat)
}

func reportCategory(w io.Writer, verb string, cat *client.Category) int {
	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(cat))
	} else {
		fmt.Fprintf(w, "%s category %s (%s)\n", verb, cat.Name, cat.ID)
	}
	return 0
}

// runCategoryDelete deletes a category and returns exit code
func runCategoryDelete(ctx context.Context, w io.Writer, id string) int {
	sh, code := adminShop(ctx, w, client.RoleAdmin)
	if sh == nil {
		return code
	}
	defer sh.close()

	if err := sh.api.DeleteCategory(ctx, id); err != nil {
		return printErr(w, err)
	}
	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(map[string]interface{}{"success": true, "id": id}))
	} else {
		fmt.Fprintf(w, "Deleted category %s\n", id)
	}
	return 0
}

// runAdminStats shows dashboard totals and returns exit code
func runAdminStats(ctx context.Context, w io.Writer, page, limit int) int {
	sh, code := adminShop(ctx, w, client.RoleAdmin)
	if sh == nil {
		return code
	}
	defer sh.close()

	stats, err := sh.api.AdminStats(ctx, page, limit)
	if err != nil {
		return printErr(w, err)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(stats))
	} else {
		fmt.Fprintln(w, formatStatsHuman(stats))
	}
	return 0
}

// formatStatsHuman renders the totals as metric blocks and users as a table
func formatStatsHuman(stats *client.AdminStats) string {
	out := widgets.StatsBlocks(stats)
	if len(stats.Users) == 0 {
		return out
	}

	table := uitable.New()
	table.AddRow("NAME", "EMAIL", "ROLE", "JOINED")
	for _, u := range stats.Users {
		table.AddRow(u.Name, u.Email, string(u.Role), u.CreatedAt)
	}
	out += "\n\n" + table.String()
	if stats.TotalPages > 1 {
		out += fmt.Sprintf("\n\nPage %d of %d", max(stats.Page, 1), stats.TotalPages)
	}
	return out
}

// runAddProduct lists a new product and returns exit code
func runAddProduct(ctx context.Context, w io.Writer, in client.ProductInput) int {
	if in.Name == "" || in.Price <= 0 || in.Category == "" {
		return printErr(w, fmt.Errorf("--name, --price and --category are required"))
	}
	sh, code := adminShop(ctx, w, client.RoleSeller, client.RoleAdmin)
	if sh == nil {
		return code
	}
	defer sh.close()

	p, err := sh.api.CreateProduct(ctx, in)
	if err != nil {
		return printErr(w, err)
	}
	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(p))
	} else {
		fmt.Fprintf(w, "Listed %s (%s) at %s\n", p.Name, p.ID, widgets.Price(p.Price))
	}
	return 0
}
