// ABOUTME: Cart commands for luxe CLI
// ABOUTME: Shows the server cart and adds, removes, or changes line items

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/luxefashion/luxe-cli/internal/cart"
	"github.com/luxefashion/luxe-cli/internal/checkout"
	"github.com/luxefashion/luxe-cli/internal/tui/widgets"
)

var (
	cartSize     string
	cartColor    string
	cartQuantity int
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show your cart",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runCartShow(ctx, os.Stdout)
		})
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a product to your cart",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runCartAdd(ctx, os.Stdout, args[0], cartSize, cartColor, cartQuantity)
		})
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Remove a product from your cart",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runCartRemove(ctx, os.Stdout, args[0], cartSize, cartColor)
		})
	},
}

var cartSetCmd = &cobra.Command{
	Use:   "set <product-id> <quantity>",
	Short: "Change the quantity of a cart line",
	Long:  `Change the quantity of a cart line. A quantity below one removes the line.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintf(os.Stdout, "Error: invalid quantity %q\n", args[1])
			os.Exit(2)
		}
		exitWith(func(ctx context.Context) int {
			return runCartSet(ctx, os.Stdout, args[0], cartSize, cartColor, qty)
		})
	},
}

func init() {
	rootCmd.AddCommand(cartCmd)
	cartCmd.AddCommand(cartAddCmd, cartRemoveCmd, cartSetCmd)

	for _, c := range []*cobra.Command{cartAddCmd, cartRemoveCmd, cartSetCmd} {
		c.Flags().StringVar(&cartSize, "size", "", "Size of the line")
		c.Flags().StringVar(&cartColor, "color", "", "Color of the line")
	}
	cartAddCmd.Flags().IntVar(&cartQuantity, "qty", 1, "Quantity to add")
}

// cartShop builds a shop with the cart loaded from the server
func cartShop(ctx context.Context, w io.Writer) (*shop, int) {
	sh, err := newShop(ctx, w)
	if err != nil {
		return nil, printErr(w, err)
	}
	if !sh.session.HasToken() {
		sh.close()
		fmt.Fprintf(w, "Error: %v\n", cart.ErrSignInRequired)
		return nil, 1
	}
	if err := sh.cart.Refresh(ctx); err != nil {
		sh.close()
		return nil, printErr(w, err)
	}
	return sh, 0
}

// cartExit maps a cart mutation error to an exit code
func cartExit(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, cart.ErrSignInRequired):
		return 1
	default:
		return 2
	}
}

// runCartShow prints the cart and returns exit code
func runCartShow(ctx context.Context, w io.Writer) int {
	sh, code := cartShop(ctx, w)
	if sh == nil {
		return code
	}
	defer sh.close()

	sum := sh.checkout.Summary(checkout.MethodStandard)
	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(sum))
	} else {
		fmt.Fprintln(w, formatCartHuman(sum))
	}
	return 0
}

// formatCartHuman renders the cart lines and totals
func formatCartHuman(sum checkout.Summary) string {
	if len(sum.Items) == 0 {
		return "Your cart is empty."
	}

	table := uitable.New()
	table.MaxColWidth = 40
	table.AddRow("ID", "ITEM", "VARIANT", "QTY", "PRICE", "SUBTOTAL")
	for _, item := range sum.Items {
		table.AddRow(item.ProductID, item.Name, variant(item), item.Quantity,
			widgets.Price(item.Price), widgets.Price(item.Subtotal()))
	}

	shipping := widgets.Price(sum.Shipping)
	if sum.Shipping == 0 {
		shipping = "Free"
	}
	return fmt.Sprintf(`%s

Items:     %d
Subtotal:  %s
Shipping:  %s (standard)
Total:     %s`, table, sum.Count, widgets.Price(sum.Subtotal), shipping, widgets.Price(sum.Total))
}

func variant(item cart.LineItem) string {
	switch {
	case item.Size != "" && item.Color != "":
		return item.Size + ", " + item.Color
	case item.Size != "":
		return item.Size
	default:
		return item.Color
	}
}

// runCartAdd adds a product and returns exit code
func runCartAdd(ctx context.Context, w io.Writer, productID, size, color string, qty int) int {
	sh, err := newShop(ctx, w)
	if err != nil {
		return printErr(w, err)
	}
	defer sh.close()

	p, err := sh.api.GetProduct(ctx, productID)
	if err != nil {
		return printErr(w, err)
	}
	err = sh.cart.AddItem(ctx, *p, size, color, qty)
	return reportCart(w, sh, err)
}

// runCartRemove removes a line and returns exit code
func runCartRemove(ctx context.Context, w io.Writer, productID, size, color string) int {
	sh, err := newShop(ctx, w)
	if err != nil {
		return printErr(w, err)
	}
	defer sh.close()

	err = sh.cart.RemoveItem(ctx, productID, size, color)
	return reportCart(w, sh, err)
}

// runCartSet changes a line's quantity and returns exit code
func runCartSet(ctx context.Context, w io.Writer, productID, size, color string, qty int) int {
	sh, code := cartShop(ctx, w)
	if sh == nil {
		return code
	}
	defer sh.close()

	if _, ok := findLine(sh.cart.Items(), productID, size, color); !ok {
		return printErr(w, fmt.Errorf("product %s is not in your cart", productID))
	}
	err := sh.cart.UpdateQuantity(ctx, productID, size, color, qty)
	return reportCart(w, sh, err)
}

func findLine(items []cart.LineItem, productID, size, color string) (cart.LineItem, bool) {
	for _, item := range items {
		if item.ProductID != productID {
			continue
		}
		if (size == "" || item.Size == size) && (color == "" || item.Color == color) {
			return item, true
		}
	}
	return cart.LineItem{}, false
}

// reportCart prints the cart after a mutation. Failures the cart already
// notified about are not repeated in human output.
func reportCart(w io.Writer, sh *shop, err error) int {
	if err != nil {
		switch {
		case IsJSONOutput():
			fmt.Fprintln(w, formatJSON(map[string]interface{}{
				"success": false,
				"error":   err.Error(),
			}))
		case errors.Is(err, cart.ErrSignInRequired), sh.notifier.shown():
			// already in front of the user
		default:
			fmt.Fprintf(w, "Error: %v\n", err)
		}
		return cartExit(err)
	}
	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(sh.checkout.Summary(checkout.MethodStandard)))
	} else {
		fmt.Fprintf(w, "Cart: %d item(s), %s\n", sh.cart.ItemCount(), widgets.Price(sh.cart.Total()))
	}
	return 0
}
