// ABOUTME: Checkout commands for luxe CLI
// ABOUTME: Places the order, starts the PayPal payment, and captures it

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/luxefashion/luxe-cli/internal/checkout"
	"github.com/luxefashion/luxe-cli/internal/client"
	"github.com/luxefashion/luxe-cli/internal/tui/widgets"
)

var (
	shipping client.ShippingDetails

	captureOrderID  string
	capturePayPalID string
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order for your cart",
	Long: `Place an order for your cart and open the PayPal approval page.

Once you approve the payment in the browser, capture it with
"luxe checkout capture". Run "luxe shop" for a guided checkout.

Example:
  luxe checkout --first-name Ann --last-name Lee --email ann@example.com \
    --phone 5550100 --address "1 Main St" --city Austin --state TX --zip 78701`,
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runCheckout(ctx, os.Stdout, shipping)
		})
	},
}

var checkoutCaptureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture an approved PayPal payment",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runCapture(ctx, os.Stdout, captureOrderID, capturePayPalID)
		})
	},
}

var checkoutQuoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Compare standard and express shipping for your cart",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			if err := runQuote(ctx, os.Stdout, IsJSONOutput()); err != nil {
				return printErr(os.Stdout, err)
			}
			return 0
		})
	},
}

func init() {
	rootCmd.AddCommand(checkoutCmd)
	checkoutCmd.AddCommand(checkoutCaptureCmd, checkoutQuoteCmd)

	f := checkoutCmd.Flags()
	f.StringVar(&shipping.FirstName, "first-name", "", "First name")
	f.StringVar(&shipping.LastName, "last-name", "", "Last name")
	f.StringVar(&shipping.Email, "email", "", "Email for order updates (defaults to your account email)")
	f.StringVar(&shipping.Phone, "phone", "", "Phone")
	f.StringVar(&shipping.Address, "address", "", "Street address")
	f.StringVar(&shipping.City, "city", "", "City")
	f.StringVar(&shipping.State, "state", "", "State")
	f.StringVar(&shipping.Zip, "zip", "", "ZIP code")
	f.StringVar(&shipping.Country, "country", checkout.DefaultCountry, "Country")
	f.StringVar(&shipping.ShippingMethod, "shipping", checkout.MethodStandard, "Shipping method (standard|express)")

	checkoutCaptureCmd.Flags().StringVar(&captureOrderID, "order", "", "Order id")
	checkoutCaptureCmd.Flags().StringVar(&capturePayPalID, "paypal-order", "", "PayPal order id")
}

// runCheckout places the order and starts payment, returning exit code
func runCheckout(ctx context.Context, w io.Writer, details client.ShippingDetails) int {
	sh, code := cartShop(ctx, w)
	if sh == nil {
		return code
	}
	defer sh.close()

	if details.Email == "" {
		if u := sh.session.User(); u != nil {
			details.Email = u.Email
		}
	}

	order, err := sh.checkout.PlaceOrder(ctx, details)
	if errors.Is(err, checkout.ErrEmptyCart) {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	if err != nil {
		return 1
	}
	payment, err := sh.checkout.StartPayment(ctx, order.ID)
	if err != nil {
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(map[string]interface{}{
			"orderId":       payment.OrderID,
			"paypalOrderId": payment.PayPalOrderID,
			"approvalUrl":   payment.ApprovalURL.String(),
			"summary":       sh.checkout.Summary(details.ShippingMethod),
		}))
		return 0
	}

	sum := sh.checkout.Summary(details.ShippingMethod)
	fmt.Fprintf(w, `Order:         %s
PayPal order:  %s
Total:         %s

Approve the payment in your browser:
  %s

Then run:
  luxe checkout capture --order %s --paypal-order %s
`, payment.OrderID, payment.PayPalOrderID, widgets.Price(sum.Total),
		payment.ApprovalURL, payment.OrderID, payment.PayPalOrderID)
	return 0
}

// runCapture captures an approved payment and returns exit code
func runCapture(ctx context.Context, w io.Writer, orderID, paypalOrderID string) int {
	if orderID == "" || paypalOrderID == "" {
		return printErr(w, fmt.Errorf("--order and --paypal-order are required"))
	}
	sh, code := cartShop(ctx, w)
	if sh == nil {
		return code
	}
	defer sh.close()

	res, err := sh.checkout.CapturePayment(ctx, &checkout.Payment{OrderID: orderID, PayPalOrderID: paypalOrderID})
	if err != nil {
		return 1
	}
	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(res))
	}
	return 0
}

// shippingQuote compares the cart under both shipping methods
type shippingQuote struct {
	Standard checkout.Summary `json:"standard"`
	Express  checkout.Summary `json:"express"`
	// ToFreeShipping is what standard shipping still needs to become free
	ToFreeShipping float64 `json:"toFreeShipping"`
}

func runQuote(ctx context.Context, w io.Writer, jsonOut bool) error {
	sh, err := newShop(ctx, w)
	if err != nil {
		return err
	}
	defer sh.close()

	if err := sh.cart.Refresh(ctx); err != nil {
		return err
	}

	quote := shippingQuote{
		Standard: sh.checkout.Summary(checkout.MethodStandard),
		Express:  sh.checkout.Summary(checkout.MethodExpress),
	}
	if quote.Standard.Shipping > 0 {
		quote.ToFreeShipping = checkout.FreeShippingThreshold - quote.Standard.Subtotal
	}

	if jsonOut {
		fmt.Fprintln(w, formatJSON(quote))
		return nil
	}

	// Human-readable output
	fmt.Fprintf(w, "Shipping Quote\n")
	fmt.Fprintf(w, "==============\n\n")
	fmt.Fprintf(w, "Subtotal: %s (%d item(s))\n", widgets.Price(quote.Standard.Subtotal), quote.Standard.Count)
	fmt.Fprintf(w, "\nStandard:\n")
	fmt.Fprintf(w, "  Shipping: %s\n", shippingLabel(quote.Standard.Shipping))
	fmt.Fprintf(w, "  Total: %s\n", widgets.Price(quote.Standard.Total))
	fmt.Fprintf(w, "\nExpress:\n")
	fmt.Fprintf(w, "  Shipping: %s\n", shippingLabel(quote.Express.Shipping))
	fmt.Fprintf(w, "  Total: %s\n", widgets.Price(quote.Express.Total))
	fmt.Fprintf(w, "\nDifference: %s\n", widgets.Price(quote.Express.Total-quote.Standard.Total))

	if quote.ToFreeShipping > 0 {
		fmt.Fprintf(w, "\nAdd %s more for free standard shipping\n", widgets.Price(quote.ToFreeShipping))
	}

	return nil
}

func shippingLabel(cost float64) string {
	if cost == 0 {
		return "Free"
	}
	return widgets.Price(cost)
}
