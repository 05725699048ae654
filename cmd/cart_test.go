// ABOUTME: Tests for the cart commands
// ABOUTME: Verifies sign-in gating, mutations against the backend, and rendering

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/luxefashion/luxe-cli/internal/cart"
	"github.com/luxefashion/luxe-cli/internal/checkout"
)

func TestCartShow_NotSignedIn(t *testing.T) {
	newFakeBackend(t)

	var buf bytes.Buffer
	if code := runCartShow(context.Background(), &buf); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), cart.ErrSignInRequired.Error()) {
		t.Errorf("expected sign-in error, got %q", buf.String())
	}
}

func TestCartShow_Empty(t *testing.T) {
	b := newFakeBackend(t)
	b.signIn("tok-user")

	var buf bytes.Buffer
	if code := runCartShow(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Your cart is empty.") {
		t.Errorf("expected empty cart, got %q", buf.String())
	}
}

func TestCartAdd(t *testing.T) {
	b := newFakeBackend(t)
	b.signIn("tok-user")

	var buf bytes.Buffer
	if code := runCartAdd(context.Background(), &buf, "p1", "M", "", 2); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !b.called("POST /cart/p1") {
		t.Error("expected POST /cart/p1")
	}
	out := buf.String()
	if !strings.Contains(out, "Added to cart") {
		t.Errorf("expected notification, got %q", out)
	}
	if !strings.Contains(out, "Cart: 2 item(s), $240.00") {
		t.Errorf("expected cart summary, got %q", out)
	}
}

func TestCartAdd_NotSignedIn(t *testing.T) {
	b := newFakeBackend(t)

	var buf bytes.Buffer
	if code := runCartAdd(context.Background(), &buf, "p1", "", "", 1); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if b.called("POST /cart/p1") {
		t.Error("expected no cart call without a token")
	}
	if !strings.Contains(buf.String(), `run "luxe login"`) {
		t.Errorf("expected sign-in hint, got %q", buf.String())
	}
}

func TestCartAdd_UnknownProduct(t *testing.T) {
	b := newFakeBackend(t)
	b.signIn("tok-user")

	var buf bytes.Buffer
	if code := runCartAdd(context.Background(), &buf, "nope", "", "", 1); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "Product not found") {
		t.Errorf("expected not found error, got %q", buf.String())
	}
}

func TestCartAdd_RefusedNotifiesOnce(t *testing.T) {
	b := newFakeBackend(t)
	b.signIn("tok-user")
	b.outOfStock["p1"] = true

	var buf bytes.Buffer
	if code := runCartAdd(context.Background(), &buf, "p1", "", "", 1); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
	if n := strings.Count(buf.String(), "Out of stock"); n != 1 {
		t.Errorf("expected the refusal exactly once, got %d in %q", n, buf.String())
	}
}

func TestCartAdd_RefusedJSON(t *testing.T) {
	b := newFakeBackend(t)
	b.signIn("tok-user")
	b.outOfStock["p1"] = true
	jsonOutput = true
	defer func() { jsonOutput = false }()

	var buf bytes.Buffer
	if code := runCartAdd(context.Background(), &buf, "p1", "", "", 1); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if parsed["success"] != false || parsed["error"] != "Out of stock" {
		t.Errorf("unexpected JSON %v", parsed)
	}
}

func TestCartAdd_RefreshFails(t *testing.T) {
	b := newFakeBackend(t)
	b.signIn("tok-user")
	b.cartDown = true

	var buf bytes.Buffer
	if code := runCartAdd(context.Background(), &buf, "p1", "", "", 1); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
	out := buf.String()
	if !strings.Contains(out, "Added to cart") {
		t.Errorf("expected the add to be confirmed, got %q", out)
	}
	if !strings.Contains(out, "Error: Cart service unavailable") {
		t.Errorf("expected the refresh failure, got %q", out)
	}
}

func TestCartRemove_RefreshFailsJSON(t *testing.T) {
	b := newFakeBackend(t)
	b.signIn("tok-user")
	b.cart["p1"] = 1
	b.cartDown = true
	jsonOutput = true
	defer func() { jsonOutput = false }()

	var buf bytes.Buffer
	if code := runCartRemove(context.Background(), &buf, "p1", "", ""); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if parsed["error"] != "Cart service unavailable" {
		t.Errorf("unexpected JSON %v", parsed)
	}
}

func TestCartSet(t *testing.T) {
	b := newFakeBackend(t)
	b.signIn("tok-user")
	b.cart["p2"] = 1

	var buf bytes.Buffer
	if code := runCartSet(context.Background(), &buf, "p2", "", "", 3); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !b.called("PATCH /cart/increase/p2") {
		t.Error("expected increase call")
	}
	if !strings.Contains(buf.String(), "Cart: 3 item(s), $750.00") {
		t.Errorf("expected updated cart, got %q", buf.String())
	}

	buf.Reset()
	if code := runCartSet(context.Background(), &buf, "p2", "", "", 1); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !b.called("PATCH /cart/decrease/p2") {
		t.Error("expected decrease call")
	}
}

func TestCartSet_ZeroRemoves(t *testing.T) {
	b := newFakeBackend(t)
	b.signIn("tok-user")
	b.cart["p1"] = 2

	var buf bytes.Buffer
	if code := runCartSet(context.Background(), &buf, "p1", "", "", 0); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !b.called("PATCH /cart/delete/p1") {
		t.Error("expected delete call")
	}
	if !strings.Contains(buf.String(), "Cart: 0 item(s)") {
		t.Errorf("expected empty cart, got %q", buf.String())
	}
}

func TestCartSet_NotInCart(t *testing.T) {
	b := newFakeBackend(t)
	b.signIn("tok-user")

	var buf bytes.Buffer
	if code := runCartSet(context.Background(), &buf, "p1", "", "", 2); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "not in your cart") {
		t.Errorf("expected not in cart error, got %q", buf.String())
	}
}

func TestCartRemove(t *testing.T) {
	b := newFakeBackend(t)
	b.signIn("tok-user")
	b.cart["p1"] = 1
	b.cart["p2"] = 1

	var buf bytes.Buffer
	if code := runCartRemove(context.Background(), &buf, "p1", "", ""); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(buf.String(), "Item removed") {
		t.Errorf("expected removal notification, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "Cart: 1 item(s), $250.00") {
		t.Errorf("expected remaining coat, got %q", buf.String())
	}
}

func TestCartShow_JSON(t *testing.T) {
	b := newFakeBackend(t)
	b.signIn("tok-user")
	b.cart["p1"] = 1
	jsonOutput = true
	defer func() { jsonOutput = false }()

	var buf bytes.Buffer
	if code := runCartShow(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}

	var sum checkout.Summary
	if err := json.Unmarshal(buf.Bytes(), &sum); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if sum.Count != 1 || sum.Subtotal != 120 || sum.Shipping != checkout.StandardShipping {
		t.Errorf("unexpected summary %+v", sum)
	}
}

func TestFormatCartHuman(t *testing.T) {
	sum := checkout.Summary{
		Items: []cart.LineItem{
			{ProductID: "p1", Name: "Silk Scarf", Price: 120, Quantity: 1, Size: "M", Color: "Red"},
			{ProductID: "p2", Name: "Wool Coat", Price: 250, Quantity: 1},
		},
		Count:    2,
		Subtotal: 370,
		Total:    370,
	}

	out := formatCartHuman(sum)
	for _, want := range []string{"Silk Scarf", "M, Red", "Wool Coat", "Items:     2", "Shipping:  Free (standard)", "Total:     $370.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestVariant(t *testing.T) {
	tests := []struct {
		item cart.LineItem
		want string
	}{
		{cart.LineItem{Size: "M", Color: "Red"}, "M, Red"},
		{cart.LineItem{Size: "M"}, "M"},
		{cart.LineItem{Color: "Red"}, "Red"},
		{cart.LineItem{}, ""},
	}
	for _, tt := range tests {
		if got := variant(tt.item); got != tt.want {
			t.Errorf("variant(%+v) = %q, want %q", tt.item, got, tt.want)
		}
	}
}
