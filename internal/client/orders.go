// ABOUTME: Order, PayPal, and admin endpoints
// ABOUTME: PayPal calls report failure through the body's success flag as well as status

package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// CreateOrder calls POST /order/create
func (c *Client) CreateOrder(ctx context.Context, shipping ShippingDetails) (*Order, error) {
	data, err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/order/create",
		body:     shipping,
		auth:     true,
		fallback: "Failed to create order",
	})
	if err != nil {
		return nil, err
	}

	var env struct {
		OrderID string `json:"orderId"`
		Order   *Order `json:"order"`
	}
	if err := decode(data, &env); err != nil {
		return nil, err
	}
	order := env.Order
	if order == nil {
		order = &Order{}
	}
	if order.ID == "" {
		order.ID = env.OrderID
	}
	if order.ID == "" {
		return nil, fmt.Errorf("invalid response from backend: no order id")
	}
	return order, nil
}

// CreatePayPalOrder calls POST /order/paypal/create-order and returns the PayPal order id
func (c *Client) CreatePayPalOrder(ctx context.Context, orderID string) (string, error) {
	data, err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/order/paypal/create-order",
		body:     map[string]string{"orderId": orderID},
		auth:     true,
		fallback: "Failed to create PayPal order",
	})
	if err != nil {
		return "", err
	}

	var resp struct {
		Success       bool   `json:"success"`
		Message       string `json:"message"`
		PayPalOrderID string `json:"paypalOrderId"`
	}
	if err := decode(data, &resp); err != nil {
		return "", err
	}
	if !resp.Success || resp.PayPalOrderID == "" {
		msg := resp.Message
		if msg == "" {
			msg = "Failed to create order"
		}
		return "", &APIError{StatusCode: http.StatusOK, Message: msg}
	}
	return resp.PayPalOrderID, nil
}

// CapturePayPalOrder calls POST /order/paypal/capture-order
func (c *Client) CapturePayPalOrder(ctx context.Context, orderID, paypalOrderID string) (*CaptureResult, error) {
	data, err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/order/paypal/capture-order",
		body:     map[string]string{"orderId": orderID, "paypalOrderId": paypalOrderID},
		auth:     true,
		fallback: "Failed to capture payment",
	})
	if err != nil {
		return nil, err
	}

	var result CaptureResult
	if err := decode(data, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		msg := result.Message
		if msg == "" {
			msg = "Payment capture failed"
		}
		return nil, &APIError{StatusCode: http.StatusOK, Message: msg}
	}
	return &result, nil
}

// AdminStats calls GET /admin/stats
func (c *Client) AdminStats(ctx context.Context, page, limit int) (*AdminStats, error) {
	data, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/admin/stats",
		query: map[string][]string{
			"page":  {strconv.Itoa(page)},
			"limit": {strconv.Itoa(limit)},
		},
		auth:     true,
		fallback: "Failed to get admin stats",
	})
	if err != nil {
		return nil, err
	}

	var stats AdminStats
	if err := decode(unwrap(data, "stats"), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
