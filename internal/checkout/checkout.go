// ABOUTME: Checkout flow: shipping validation, order creation, and PayPal payment
// ABOUTME: Clears the local cart once the payment is captured

package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/luxefashion/luxe-cli/internal/cart"
	"github.com/luxefashion/luxe-cli/internal/client"
	"github.com/luxefashion/luxe-cli/internal/notify"
)

// Shipping methods
const (
	MethodStandard = "standard"
	MethodExpress  = "express"
)

// Shipping prices in store currency
const (
	FreeShippingThreshold = 200.0
	StandardShipping      = 15.0
	ExpressShipping       = 25.0
)

// DefaultCountry is preselected on the shipping form
const DefaultCountry = "USA"

// DefaultApprovalURL is where buyers approve a PayPal order
const DefaultApprovalURL = "https://www.paypal.com/checkoutnow"

// ErrEmptyCart is returned when checking out with nothing in the cart
var ErrEmptyCart = errors.New("your cart is empty")

// ShippingCost is express at a flat rate, otherwise free from the threshold up
func ShippingCost(subtotal float64, method string) float64 {
	if method == MethodExpress {
		return ExpressShipping
	}
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return StandardShipping
}

// ValidationError lists the shipping fields that are missing
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "Please fill in all required fields: " + strings.Join(e.Fields, ", ")
}

// Normalize trims fields and fills the country and shipping method defaults
func Normalize(d client.ShippingDetails) client.ShippingDetails {
	trim := strings.TrimSpace
	d.FirstName, d.LastName, d.Email, d.Phone = trim(d.FirstName), trim(d.LastName), trim(d.Email), trim(d.Phone)
	d.Address, d.City, d.State, d.Zip = trim(d.Address), trim(d.City), trim(d.State), trim(d.Zip)
	d.Country = trim(d.Country)
	if d.Country == "" {
		d.Country = DefaultCountry
	}
	if d.ShippingMethod != MethodExpress {
		d.ShippingMethod = MethodStandard
	}
	return d
}

// Validate checks required shipping fields
func Validate(d client.ShippingDetails) error {
	required := []struct {
		name  string
		value string
	}{
		{"firstName", d.FirstName},
		{"lastName", d.LastName},
		{"email", d.Email},
		{"phone", d.Phone},
		{"address", d.Address},
		{"city", d.City},
		{"state", d.State},
		{"zip", d.Zip},
		{"country", d.Country},
	}
	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	if !strings.Contains(d.Email, "@") {
		return &ValidationError{Fields: []string{"email"}}
	}
	return nil
}

// Summary is the priced view of the cart at checkout
type Summary struct {
	Items    []cart.LineItem `json:"items"`
	Count    int             `json:"count"`
	Subtotal float64         `json:"subtotal"`
	Shipping float64         `json:"shipping"`
	Total    float64         `json:"total"`
}

// API is the subset of the storefront API checkout needs
type API interface {
	CreateOrder(ctx context.Context, shipping client.ShippingDetails) (*client.Order, error)
	CreatePayPalOrder(ctx context.Context, orderID string) (string, error)
	CapturePayPalOrder(ctx context.Context, orderID, paypalOrderID string) (*client.CaptureResult, error)
}

// Cart is the local cart being checked out
type Cart interface {
	Items() []cart.LineItem
	ItemCount() int
	Total() float64
	Clear()
}

// Config holds checkout collaborators
type Config struct {
	API         API
	Cart        Cart
	Notifier    notify.Notifier
	Logger      *slog.Logger
	ApprovalURL string
	// Open shows the PayPal approval page; nil skips opening
	Open func(*url.URL) error
}

// Service runs the checkout flow
type Service struct {
	api         API
	cart        Cart
	notifier    notify.Notifier
	logger      *slog.Logger
	approvalURL string
	open        func(*url.URL) error
}

// New creates a checkout service
func New(cfg Config) *Service {
	s := &Service{
		api:         cfg.API,
		cart:        cfg.Cart,
		notifier:    cfg.Notifier,
		logger:      cfg.Logger,
		approvalURL: cfg.ApprovalURL,
		open:        cfg.Open,
	}
	if s.notifier == nil {
		s.notifier = notify.Discard
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.approvalURL == "" {
		s.approvalURL = DefaultApprovalURL
	}
	return s
}

// Summary prices the current cart for the given shipping method
func (s *Service) Summary(method string) Summary {
	subtotal := s.cart.Total()
	shipping := ShippingCost(subtotal, method)
	return Summary{
		Items:    s.cart.Items(),
		Count:    s.cart.ItemCount(),
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal + shipping,
	}
}

// PlaceOrder validates shipping details and creates the order
func (s *Service) PlaceOrder(ctx context.Context, details client.ShippingDetails) (*client.Order, error) {
	if s.cart.ItemCount() == 0 {
		return nil, ErrEmptyCart
	}
	details = Normalize(details)
	if err := Validate(details); err != nil {
		s.notifier.Notify(notify.Failure("Missing fields", err.Error()))
		return nil, err
	}

	order, err := s.api.CreateOrder(ctx, details)
	if err != nil {
		s.notifier.Notify(notify.Failure("Error", err.Error()))
		return nil, err
	}
	s.logger.Info("order created", "order_id", order.ID)
	return order, nil
}

// Payment is a PayPal order awaiting buyer approval
type Payment struct {
	OrderID       string   `json:"orderId"`
	PayPalOrderID string   `json:"paypalOrderId"`
	ApprovalURL   *url.URL `json:"-"`
}

// StartPayment creates the PayPal order and opens its approval page
func (s *Service) StartPayment(ctx context.Context, orderID string) (*Payment, error) {
	ppID, err := s.api.CreatePayPalOrder(ctx, orderID)
	if err != nil {
		s.notifier.Notify(notify.Failure("Payment failed", err.Error()))
		return nil, err
	}

	approval, err := url.Parse(s.approvalURL)
	if err != nil {
		return nil, fmt.Errorf("invalid PayPal approval URL: %w", err)
	}
	q := approval.Query()
	q.Set("token", ppID)
	approval.RawQuery = q.Encode()

	p := &Payment{OrderID: orderID, PayPalOrderID: ppID, ApprovalURL: approval}
	if s.open != nil {
		if err := s.open(approval); err != nil {
			s.logger.Warn("could not open PayPal approval page", "error", err)
		}
	}
	return p, nil
}

// CapturePayment captures an approved PayPal order and clears the local cart
func (s *Service) CapturePayment(ctx context.Context, p *Payment) (*client.CaptureResult, error) {
	res, err := s.api.CapturePayPalOrder(ctx, p.OrderID, p.PayPalOrderID)
	if err != nil {
		s.notifier.Notify(notify.Failure("Payment failed", err.Error()))
		return nil, err
	}

	s.cart.Clear()
	s.notifier.Notify(notify.Success("Order placed successfully!", "Thank you for your purchase. You will receive a confirmation email shortly."))
	return res, nil
}
