// ABOUTME: Cart endpoints: fetch, add, relative increase/decrease, delete line
// ABOUTME: The backend accepts only deltas for existing lines, never absolute targets

package client

import (
	"context"
	"net/http"
	"net/url"
)

type quantityBody struct {
	Quantity int `json:"quantity"`
}

// GetCart calls GET /cart
func (c *Client) GetCart(ctx context.Context) (*RemoteCart, error) {
	data, err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/cart",
		auth:     true,
		fallback: "Failed to fetch cart",
	})
	if err != nil {
		return nil, err
	}

	inner := unwrap(data, "cart")
	cart := &RemoteCart{}
	if isNull(inner) {
		return cart, nil
	}
	if isArray(inner) {
		if err := decode(inner, &cart.Items); err != nil {
			return nil, err
		}
		return cart, nil
	}
	if err := decode(inner, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddToCart calls POST /cart/:productId with the quantity to add
func (c *Client) AddToCart(ctx context.Context, productID string, quantity int) error {
	_, err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/cart/" + url.PathEscape(productID),
		body:     quantityBody{Quantity: quantity},
		auth:     true,
		fallback: "Failed to update cart",
	})
	return err
}

// IncreaseQuantity calls PATCH /cart/increase/:productId
func (c *Client) IncreaseQuantity(ctx context.Context, productID string, delta int) error {
	_, err := c.do(ctx, call{
		method:   http.MethodPatch,
		path:     "/cart/increase/" + url.PathEscape(productID),
		body:     quantityBody{Quantity: delta},
		auth:     true,
		fallback: "Failed to update cart",
	})
	return err
}

// DecreaseQuantity calls PATCH /cart/decrease/:productId
func (c *Client) DecreaseQuantity(ctx context.Context, productID string, delta int) error {
	_, err := c.do(ctx, call{
		method:   http.MethodPatch,
		path:     "/cart/decrease/" + url.PathEscape(productID),
		body:     quantityBody{Quantity: delta},
		auth:     true,
		fallback: "Failed to update cart",
	})
	return err
}

// DeleteCartItem calls PATCH /cart/delete/:productId
func (c *Client) DeleteCartItem(ctx context.Context, productID string) error {
	_, err := c.do(ctx, call{
		method:   http.MethodPatch,
		path:     "/cart/delete/" + url.PathEscape(productID),
		auth:     true,
		fallback: "Failed to update cart",
	})
	return err
}
