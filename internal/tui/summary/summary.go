// ABOUTME: Order summary view for checkout and payment
// ABOUTME: Displays priced lines, shipping, totals, and the PayPal payment state

package summary

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/luxefashion/luxe-cli/internal/checkout"
	"github.com/luxefashion/luxe-cli/internal/client"
	"github.com/luxefashion/luxe-cli/internal/tui/icons"
	"github.com/luxefashion/luxe-cli/internal/tui/styles"
	"github.com/luxefashion/luxe-cli/internal/tui/widgets"
)

// Summary displays an order on its way through payment
type Summary struct {
	sum     checkout.Summary
	method  string
	payment *checkout.Payment
	result  *client.CaptureResult
	err     string
	width   int
}

// New creates a summary for a priced cart
func New(sum checkout.Summary, method string, width int) *Summary {
	return &Summary{
		sum:    sum,
		method: method,
		width:  width,
	}
}

// SetPayment records the PayPal order awaiting approval
func (s *Summary) SetPayment(p *checkout.Payment) {
	s.payment = p
	s.err = ""
}

// Payment returns the PayPal order awaiting approval, if any
func (s *Summary) Payment() *checkout.Payment {
	return s.payment
}

// SetResult records the capture outcome
func (s *Summary) SetResult(r *client.CaptureResult) {
	s.result = r
	s.err = ""
}

// Paid reports whether the payment was captured
func (s *Summary) Paid() bool {
	return s.result != nil && s.result.Success
}

// SetError shows a payment failure
func (s *Summary) SetError(msg string) {
	s.err = msg
}

// View renders the summary
func (s *Summary) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Order Summary"))
	sb.WriteString("\n")

	colWidth := (s.width - 4) / 2
	if colWidth < 20 {
		colWidth = 20
	}
	for _, item := range s.sum.Items {
		name := fmt.Sprintf("%s x%d", item.Name, item.Quantity)
		sb.WriteString(fmt.Sprintf("%-*s  %s\n", colWidth, name, widgets.Price(item.Subtotal())))
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%-*s  %s\n", colWidth, "Subtotal", widgets.Price(s.sum.Subtotal)))

	shipping := widgets.Price(s.sum.Shipping)
	if s.sum.Shipping == 0 {
		shipping = styles.StatusOK.Render("Free")
	}
	sb.WriteString(fmt.Sprintf("%-*s  %s\n", colWidth, icons.Truck.String()+" "+methodLabel(s.method), shipping))
	sb.WriteString(fmt.Sprintf("%-*s  %s\n", colWidth, "Total", styles.PriceStyle.Render(widgets.Price(s.sum.Total))))

	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("Payment"))
	sb.WriteString("\n")

	switch {
	case s.Paid():
		sb.WriteString(widgets.StatusText("Order placed successfully!", widgets.StatusOK))
		sb.WriteString("\n")
		if s.result.Status != "" {
			sb.WriteString(fmt.Sprintf("  Status: %s\n", s.result.Status))
		}
	case s.payment != nil:
		sb.WriteString(fmt.Sprintf("  Order:  %s\n", s.payment.OrderID))
		sb.WriteString(fmt.Sprintf("  PayPal: %s\n", s.payment.PayPalOrderID))
		sb.WriteString(widgets.StatusText("Approve the payment in your browser, then press c", widgets.StatusInfo))
		sb.WriteString("\n")
	default:
		sb.WriteString(styles.Disabled.Render("  Creating your order..."))
		sb.WriteString("\n")
	}

	if s.err != "" {
		sb.WriteString("\n")
		sb.WriteString(widgets.StatusText(s.err, widgets.StatusCritical))
		sb.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(s.width).Render(sb.String())
}

func methodLabel(method string) string {
	if method == checkout.MethodExpress {
		return "Express shipping"
	}
	return "Standard shipping"
}
