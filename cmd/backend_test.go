// ABOUTME: Fake storefront backend shared by the command tests
// ABOUTME: Serves auth, catalog, cart, order, and admin endpoints from memory

package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/luxefashion/luxe-cli/internal/client"
	"github.com/luxefashion/luxe-cli/internal/store"
)

var (
	scarf = client.Product{ID: "p1", Name: "Silk Scarf", Price: 120, InStock: true, Stock: 10,
		Category: client.CategoryRef{ID: "c1", Name: "Accessories"}, Sizes: []string{"S", "M"}}
	coat = client.Product{ID: "p2", Name: "Wool Coat", Price: 250, OriginalPrice: 300, InStock: true, Stock: 2,
		Category: client.CategoryRef{ID: "c2", Name: "Outerwear"}}
)

var testUsers = map[string]client.User{
	"tok-user":   {ID: "u1", Name: "Ann Lee", Email: "ann@x.com", Role: client.RoleUser},
	"tok-admin":  {ID: "u2", Name: "Ada Admin", Email: "admin@x.com", Role: client.RoleAdmin},
	"tok-seller": {ID: "u3", Name: "Sam Seller", Email: "seller@x.com", Role: client.RoleSeller},
}

// fakeBackend holds one shared cart and records requests
type fakeBackend struct {
	t   *testing.T
	dir string
	mu  sync.Mutex

	cart     map[string]int
	calls    []string
	captured bool
	form     url.Values

	// outOfStock products are refused by the add endpoint
	outOfStock map[string]bool
	// cartDown fails GET /cart once a mutation went through
	cartDown bool
	mutated  bool
}

// newFakeBackend starts the backend, points the commands at it, and gives
// them a fresh config directory
func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{t: t, dir: t.TempDir(), cart: map[string]int{}, outOfStock: map[string]bool{}}
	server := httptest.NewServer(b.routes())
	t.Cleanup(server.Close)

	apiURL = server.URL
	t.Cleanup(func() { apiURL = "" })
	t.Setenv("LUXE_CONFIG_DIR", b.dir)
	t.Setenv("LUXE_CALLBACK_DELAY_MS", "1")
	t.Setenv("LOG_LEVEL", "error")

	prevOpen := openBrowser
	openBrowser = func(*url.URL) error { return nil }
	t.Cleanup(func() { openBrowser = prevOpen })

	return b
}

// signIn stores a token as a previous login would have
func (b *fakeBackend) signIn(token string) {
	b.t.Helper()
	if err := store.NewFile(b.dir).Set(store.KeyAccessToken, token); err != nil {
		b.t.Fatalf("failed to store token: %v", err)
	}
}

func (b *fakeBackend) called(call string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range b.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (b *fakeBackend) user(r *http.Request) (client.User, bool) {
	tok := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	u, ok := testUsers[tok]
	return u, ok
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (b *fakeBackend) routes() http.Handler {
	mux := http.NewServeMux()

	// authed wraps handlers that need a valid bearer token
	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if _, ok := b.user(r); !ok {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Not authorized"})
				return
			}
			h(w, r)
		}
	}

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		for tok, u := range testUsers {
			if u.Email == body["email"] && body["password"] == "secret123" {
				writeJSON(w, http.StatusOK, map[string]string{"token": tok})
				return
			}
		}
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid email or password"})
	})
	mux.HandleFunc("POST /auth", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if len(body["password"]) < 8 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Password must be at least 8 characters"})
			return
		}
		writeJSON(w, http.StatusCreated, "tok-user")
	})
	mux.HandleFunc("GET /auth/profile", authed(func(w http.ResponseWriter, r *http.Request) {
		u, _ := b.user(r)
		writeJSON(w, http.StatusOK, map[string]interface{}{"user": u})
	}))
	mux.HandleFunc("POST /auth/request-password-reset", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	})
	mux.HandleFunc("POST /auth/reset-password", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["resetToken"] != "reset-1" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid or expired reset token"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	})

	mux.HandleFunc("GET /categories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []client.Category{
			{ID: "c1", Name: "Accessories", Slug: "accessories", ProductCount: 1},
			{ID: "c2", Name: "Outerwear", Slug: "outerwear", ProductCount: 1},
		})
	})
	mux.HandleFunc("POST /categories", authed(func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
			return
		}
		b.mu.Lock()
		b.form = r.MultipartForm.Value
		b.mu.Unlock()
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"category": client.Category{ID: "c9", Name: r.FormValue("name")},
		})
	}))
	mux.HandleFunc("DELETE /categories/{id}", authed(func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}))

	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		products := []client.Product{scarf, coat}
		if s := r.URL.Query().Get("search"); s != "" {
			var filtered []client.Product
			for _, p := range products {
				if strings.Contains(strings.ToLower(p.Name), strings.ToLower(s)) {
					filtered = append(filtered, p)
				}
			}
			products = filtered
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"products": products, "total": len(products), "page": 1, "totalPages": 1,
		})
	})
	mux.HandleFunc("GET /products/{id}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("id") {
		case "p1":
			writeJSON(w, http.StatusOK, scarf)
		case "p2":
			writeJSON(w, http.StatusOK, coat)
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Product not found"})
		}
	})
	mux.HandleFunc("POST /products", authed(func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
			return
		}
		b.mu.Lock()
		b.form = r.MultipartForm.Value
		b.mu.Unlock()
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"product": client.Product{ID: "p9", Name: r.FormValue("name"), Price: 80},
		})
	}))

	mux.HandleFunc("GET /cart", authed(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.cartDown && b.mutated {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Cart service unavailable"})
			return
		}
		var items []map[string]interface{}
		for _, p := range []client.Product{scarf, coat} {
			if q := b.cart[p.ID]; q > 0 {
				items = append(items, map[string]interface{}{"product": p, "quantity": q})
			}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"cart": map[string]interface{}{"items": items}})
	}))
	mux.HandleFunc("POST /cart/{id}", authed(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		refused := b.outOfStock[r.PathValue("id")]
		b.mu.Unlock()
		if refused {
			b.record(r)
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Out of stock"})
			return
		}
		b.adjust(1)(w, r)
	}))
	mux.HandleFunc("PATCH /cart/increase/{id}", authed(b.adjust(1)))
	mux.HandleFunc("PATCH /cart/decrease/{id}", authed(b.adjust(-1)))
	mux.HandleFunc("PATCH /cart/delete/{id}", authed(func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		b.mu.Lock()
		delete(b.cart, r.PathValue("id"))
		b.mutated = true
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}))

	mux.HandleFunc("POST /order/create", authed(func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		writeJSON(w, http.StatusCreated, map[string]string{"orderId": "o1"})
	}))
	mux.HandleFunc("POST /order/paypal/create-order", authed(func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "paypalOrderId": "PP-1"})
	}))
	mux.HandleFunc("POST /order/paypal/capture-order", authed(func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		b.mu.Lock()
		b.captured = true
		b.cart = map[string]int{}
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "status": "COMPLETED"})
	}))

	mux.HandleFunc("GET /admin/stats", authed(func(w http.ResponseWriter, r *http.Request) {
		if u, _ := b.user(r); u.Role != client.RoleAdmin {
			writeJSON(w, http.StatusForbidden, map[string]string{"message": "Admins only"})
			return
		}
		writeJSON(w, http.StatusOK, client.AdminStats{
			TotalUsers: 42, TotalSellers: 5, TotalProducts: 120, TotalOrders: 310, Revenue: 48250.5,
			Users: []client.User{testUsers["tok-user"]}, Page: 1, TotalPages: 1,
		})
	}))

	return mux
}

// adjust changes the cart line by sign times the requested quantity
func (b *fakeBackend) adjust(sign int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		var body struct {
			Quantity int `json:"quantity"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		b.mu.Lock()
		b.cart[r.PathValue("id")] += sign * body.Quantity
		b.mutated = true
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func (b *fakeBackend) record(r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, r.Method+" "+r.URL.Path)
}
