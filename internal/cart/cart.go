// ABOUTME: Cart synchronizer mirroring the server-held cart
// ABOUTME: Every mutation goes to the API first and is followed by a full re-fetch

package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/im7mortal/kmutex"

	"github.com/luxefashion/luxe-cli/internal/client"
	"github.com/luxefashion/luxe-cli/internal/notify"
)

// ErrSignInRequired is returned when a cart mutation is attempted without a token
var ErrSignInRequired = errors.New("please sign in to use your cart")

// LineItem is one product variant in the cart
type LineItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
}

// Subtotal is unit price times quantity
func (l LineItem) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// matches reports whether l is the line for productID, narrowing by size
// and color only when they are given
func (l LineItem) matches(productID, size, color string) bool {
	if l.ProductID != productID {
		return false
	}
	if size != "" && l.Size != size {
		return false
	}
	if color != "" && l.Color != color {
		return false
	}
	return true
}

// API is the subset of the storefront API the cart needs
type API interface {
	GetCart(ctx context.Context) (*client.RemoteCart, error)
	AddToCart(ctx context.Context, productID string, quantity int) error
	IncreaseQuantity(ctx context.Context, productID string, delta int) error
	DecreaseQuantity(ctx context.Context, productID string, delta int) error
	DeleteCartItem(ctx context.Context, productID string) error
}

// TokenChecker reports whether a bearer token is available
type TokenChecker interface {
	HasToken() bool
}

// Navigator sends the user to the sign-in entry point
type Navigator interface {
	RedirectToAuth()
}

// Option configures a Synchronizer
type Option func(*Synchronizer)

// WithSerializedMutations makes mutate-then-refresh sequences for the same
// product run one at a time
func WithSerializedMutations() Option {
	return func(s *Synchronizer) { s.locks = kmutex.New() }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Synchronizer) { s.logger = l }
}

// Synchronizer owns the local cart. Concurrent mutations are not
// serialized unless WithSerializedMutations is set; the last refresh wins.
type Synchronizer struct {
	api      API
	auth     TokenChecker
	nav      Navigator
	notifier notify.Notifier
	logger   *slog.Logger
	locks    *kmutex.Kmutex

	mu    sync.RWMutex
	items []LineItem
}

// New creates an empty cart synchronizer
func New(api API, auth TokenChecker, nav Navigator, notifier notify.Notifier, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		api:      api,
		auth:     auth,
		nav:      nav,
		notifier: notifier,
		logger:   slog.Default(),
	}
	if s.notifier == nil {
		s.notifier = notify.Discard
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh replaces the local cart with the remote one.
// Without a token it does nothing.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	if !s.auth.HasToken() {
		return nil
	}

	remote, err := s.api.GetCart(ctx)
	if err != nil {
		s.logger.Warn("cart refresh failed", "error", err)
		return err
	}
	items := fromRemote(remote)

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	s.logger.Debug("cart refreshed", "lines", len(items))
	return nil
}

// fromRemote maps server lines to local ones, dropping lines without a
// resolvable product or with a non-positive quantity
func fromRemote(remote *client.RemoteCart) []LineItem {
	if remote == nil {
		return []LineItem{}
	}
	items := make([]LineItem, 0, len(remote.Items))
	for _, ri := range remote.Items {
		if ri.Product == nil || ri.Product.ID == "" || ri.Quantity < 1 {
			continue
		}
		price := ri.Product.Price
		if price == 0 {
			price = ri.Price
		}
		items = append(items, LineItem{
			ProductID: ri.Product.ID,
			Name:      ri.Product.Name,
			Price:     price,
			Image:     ri.Product.PrimaryImage(),
			Quantity:  ri.Quantity,
			Size:      ri.Size,
			Color:     ri.Color,
		})
	}
	return items
}

// AddItem adds quantity units of product; a non-positive quantity adds one.
// Without a token the user is redirected to sign in and the API is not called.
func (s *Synchronizer) AddItem(ctx context.Context, product client.Product, size, color string, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}
	if !s.auth.HasToken() {
		s.nav.RedirectToAuth()
		return ErrSignInRequired
	}

	return s.serialize(product.ID, func() error {
		if err := s.api.AddToCart(ctx, product.ID, quantity); err != nil {
			s.notifier.Notify(notify.Failure("Error", err.Error()))
			return err
		}
		s.notifier.Notify(notify.Success("Added to cart", fmt.Sprintf("%s has been added to your cart", product.Name)))
		return s.Refresh(ctx)
	})
}

// RemoveItem deletes the product's line
func (s *Synchronizer) RemoveItem(ctx context.Context, productID, size, color string) error {
	if !s.auth.HasToken() {
		s.nav.RedirectToAuth()
		return ErrSignInRequired
	}
	return s.serialize(productID, func() error {
		return s.remove(ctx, productID)
	})
}

func (s *Synchronizer) remove(ctx context.Context, productID string) error {
	if err := s.api.DeleteCartItem(ctx, productID); err != nil {
		s.notifier.Notify(notify.Failure("Error", err.Error()))
		return err
	}
	s.notifier.Notify(notify.Success("Item removed", "The item has been removed from your cart"))
	return s.Refresh(ctx)
}

// UpdateQuantity moves a line to quantity by sending the signed difference
// from its current quantity. Unknown lines are ignored; a quantity below one
// removes the line.
func (s *Synchronizer) UpdateQuantity(ctx context.Context, productID, size, color string, quantity int) error {
	if !s.auth.HasToken() {
		s.nav.RedirectToAuth()
		return ErrSignInRequired
	}

	return s.serialize(productID, func() error {
		current, ok := s.find(productID, size, color)
		if !ok {
			return nil
		}
		if quantity < 1 {
			return s.remove(ctx, productID)
		}

		var err error
		switch d := quantity - current.Quantity; {
		case d > 0:
			err = s.api.IncreaseQuantity(ctx, productID, d)
		case d < 0:
			err = s.api.DecreaseQuantity(ctx, productID, -d)
		default:
			return nil
		}
		if err != nil {
			s.notifier.Notify(notify.Failure("Error", err.Error()))
			return err
		}
		return s.Refresh(ctx)
	})
}

// Clear empties the local cart without touching the server
func (s *Synchronizer) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Items returns a copy of the current lines
func (s *Synchronizer) Items() []LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]LineItem(nil), s.items...)
}

// ItemCount is the total number of units in the cart
func (s *Synchronizer) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// Total is the sum of line subtotals
func (s *Synchronizer) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, it := range s.items {
		total += it.Subtotal()
	}
	return total
}

func (s *Synchronizer) find(productID, size, color string) (LineItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if it.matches(productID, size, color) {
			return it, true
		}
	}
	return LineItem{}, false
}

func (s *Synchronizer) serialize(productID string, fn func() error) error {
	if s.locks == nil {
		return fn()
	}
	s.locks.Lock(productID)
	defer s.locks.Unlock(productID)
	return fn()
}

// AuthSource is a session that broadcasts auth changes
type AuthSource interface {
	TokenChecker
	Subscribe(fn func()) func()
}

// Attach subscribes the cart to auth-changed broadcasts: it refreshes while
// a token is present and clears locally once it is gone. The returned
// function detaches it.
func (s *Synchronizer) Attach(ctx context.Context, src AuthSource) func() {
	return src.Subscribe(func() {
		if !src.HasToken() {
			s.Clear()
			return
		}
		if err := s.Refresh(ctx); err != nil {
			s.logger.Warn("cart refresh after auth change failed", "error", err)
		}
	})
}
