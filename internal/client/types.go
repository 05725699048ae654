// ABOUTME: Wire types for storefront API payloads
// ABOUTME: Tolerates the backend's mixed id, wrapper, and populated-reference shapes

package client

import (
	"bytes"
	"encoding/json"
)

// Role is a user's authorization role
type Role string

const (
	RoleUser   Role = "user"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// User is the authenticated user's profile
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	Avatar    string `json:"avatar,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// UnmarshalJSON accepts both "id" and Mongo-style "_id"
func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	var raw struct {
		alias
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*u = User(raw.alias)
	if u.ID == "" {
		u.ID = raw.MongoID
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// Color is a product color option
type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex,omitempty"`
}

// UnmarshalJSON accepts a bare color name or an object
func (c *Color) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*c = Color{Name: name}
		return nil
	}
	type alias Color
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*c = Color(a)
	return nil
}

// CategoryRef is a product's category, either an id/slug string or a populated object
type CategoryRef struct {
	ID   string
	Name string
}

func (r *CategoryRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = CategoryRef{ID: s, Name: s}
		return nil
	}
	var c Category
	if err := json.Unmarshal(data, &c); err != nil {
		return err
	}
	*r = CategoryRef{ID: c.ID, Name: c.Name}
	return nil
}

func (r CategoryRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Name)
}

// String returns the display name of the category
func (r CategoryRef) String() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// Product is a catalog product
type Product struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description,omitempty"`
	Price         float64     `json:"price"`
	OriginalPrice float64     `json:"originalPrice,omitempty"`
	Images        []string    `json:"images,omitempty"`
	Image         string      `json:"image,omitempty"`
	Category      CategoryRef `json:"category"`
	Sizes         []string    `json:"sizes,omitempty"`
	Colors        []Color     `json:"colors,omitempty"`
	InStock       bool        `json:"inStock"`
	Stock         int         `json:"stock,omitempty"`
	SellerName    string      `json:"sellerName,omitempty"`
	Rating        float64     `json:"rating,omitempty"`
	ReviewCount   int         `json:"reviewCount,omitempty"`
}

func (p *Product) UnmarshalJSON(data []byte) error {
	type alias Product
	var raw struct {
		alias
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Product(raw.alias)
	if p.ID == "" {
		p.ID = raw.MongoID
	}
	return nil
}

// PrimaryImage returns the image shown for the product in listings
func (p *Product) PrimaryImage() string {
	if p.Image != "" {
		return p.Image
	}
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}

// ProductPage is one page of a product listing
type ProductPage struct {
	Products   []Product `json:"products"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	PerPage    int       `json:"perPage"`
	TotalPages int       `json:"totalPages"`
}

// Category is a catalog category
type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug,omitempty"`
	Image        string `json:"image,omitempty"`
	ProductCount int    `json:"productCount,omitempty"`
}

func (c *Category) UnmarshalJSON(data []byte) error {
	type alias Category
	var raw struct {
		alias
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Category(raw.alias)
	if c.ID == "" {
		c.ID = raw.MongoID
	}
	return nil
}

// RemoteCart is the server-held cart
type RemoteCart struct {
	Items []RemoteCartItem `json:"items"`
}

// RemoteCartItem is one server-side cart line. Product is nil when the
// backend could not resolve the reference.
type RemoteCartItem struct {
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
	Size     string   `json:"size,omitempty"`
	Color    string   `json:"color,omitempty"`
	Price    float64  `json:"price,omitempty"`
}

// UnmarshalJSON accepts the product under "product" or "productId",
// populated or as a bare id string.
func (i *RemoteCartItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Product   json.RawMessage `json:"product"`
		ProductID json.RawMessage `json:"productId"`
		Quantity  int             `json:"quantity"`
		Size      string          `json:"size"`
		Color     string          `json:"color"`
		Price     float64         `json:"price"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*i = RemoteCartItem{
		Quantity: raw.Quantity,
		Size:     raw.Size,
		Color:    raw.Color,
		Price:    raw.Price,
	}

	ref := raw.Product
	if isNull(ref) {
		ref = raw.ProductID
	}
	if isNull(ref) {
		return nil
	}

	var id string
	if err := json.Unmarshal(ref, &id); err == nil {
		i.Product = &Product{ID: id}
		return nil
	}
	var p Product
	if err := json.Unmarshal(ref, &p); err != nil {
		return err
	}
	i.Product = &p
	return nil
}

func isNull(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// ShippingDetails is the body of an order creation request
type ShippingDetails struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	City           string `json:"city"`
	State          string `json:"state"`
	Zip            string `json:"zip"`
	Country        string `json:"country"`
	ShippingMethod string `json:"shippingMethod,omitempty"`
}

// Order is a created order
type Order struct {
	ID        string           `json:"id"`
	Status    string           `json:"status,omitempty"`
	Total     float64          `json:"total,omitempty"`
	Items     []RemoteCartItem `json:"items,omitempty"`
	CreatedAt string           `json:"createdAt,omitempty"`
}

func (o *Order) UnmarshalJSON(data []byte) error {
	type alias Order
	var raw struct {
		alias
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*o = Order(raw.alias)
	if o.ID == "" {
		o.ID = raw.MongoID
	}
	return nil
}

// CaptureResult is the outcome of capturing a PayPal order
type CaptureResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Status  string `json:"status,omitempty"`
}

// AdminStats is the admin dashboard payload
type AdminStats struct {
	TotalUsers    int     `json:"totalUsers"`
	TotalSellers  int     `json:"totalSellers"`
	TotalProducts int     `json:"totalProducts"`
	TotalOrders   int     `json:"totalOrders"`
	Revenue       float64 `json:"revenue"`
	Users         []User  `json:"users,omitempty"`
	Page          int     `json:"page,omitempty"`
	Limit         int     `json:"limit,omitempty"`
	TotalPages    int     `json:"totalPages,omitempty"`
}
