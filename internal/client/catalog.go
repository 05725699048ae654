// ABOUTME: Catalog endpoints: categories and products
// ABOUTME: Includes multipart create/update for admin and seller operations

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/go-querystring/query"
)

// ProductQuery filters and paginates GET /products
type ProductQuery struct {
	Category string `url:"category,omitempty"`
	Search   string `url:"search,omitempty"`
	Page     int    `url:"page"`
	PerPage  int    `url:"perPage"`
}

// Defaults used when a ProductQuery leaves paging unset
const (
	DefaultPage    = 1
	DefaultPerPage = 12
)

// ListCategories calls GET /categories
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	data, err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/categories",
		fallback: "Failed to fetch categories",
	})
	if err != nil {
		return nil, err
	}

	var categories []Category
	if err := decode(unwrap(data, "categories"), &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CategoryInput is the editable part of a category.
// Empty fields are left out of update requests.
type CategoryInput struct {
	Name      string
	ImagePath string
}

func (in CategoryInput) multipart() (*multipartBody, error) {
	mb := newMultipart()
	if in.Name != "" {
		mb.field("name", in.Name)
	}
	if in.ImagePath != "" {
		if err := mb.file("image", in.ImagePath); err != nil {
			return nil, err
		}
	}
	return mb.close()
}

// CreateCategory calls POST /categories
func (c *Client) CreateCategory(ctx context.Context, in CategoryInput) (*Category, error) {
	form, err := in.multipart()
	if err != nil {
		return nil, err
	}
	data, err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/categories",
		form:     form,
		auth:     true,
		fallback: "Failed to create category",
	})
	if err != nil {
		return nil, err
	}
	return decodeCategory(data)
}

// UpdateCategory calls PATCH /categories/:id
func (c *Client) UpdateCategory(ctx context.Context, id string, in CategoryInput) (*Category, error) {
	form, err := in.multipart()
	if err != nil {
		return nil, err
	}
	data, err := c.do(ctx, call{
		method:   http.MethodPatch,
		path:     "/categories/" + url.PathEscape(id),
		form:     form,
		auth:     true,
		fallback: "Failed to update category",
	})
	if err != nil {
		return nil, err
	}
	return decodeCategory(data)
}

// DeleteCategory calls DELETE /categories/:id
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	_, err := c.do(ctx, call{
		method:   http.MethodDelete,
		path:     "/categories/" + url.PathEscape(id),
		auth:     true,
		fallback: "Failed to delete category",
	})
	return err
}

func decodeCategory(data []byte) (*Category, error) {
	var category Category
	if err := decode(unwrap(data, "category"), &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// ListProducts calls GET /products
func (c *Client) ListProducts(ctx context.Context, q ProductQuery) (*ProductPage, error) {
	if q.Page <= 0 {
		q.Page = DefaultPage
	}
	if q.PerPage <= 0 {
		q.PerPage = DefaultPerPage
	}
	values, err := query.Values(q)
	if err != nil {
		return nil, fmt.Errorf("failed to encode product query: %w", err)
	}

	data, err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/products",
		query:    values,
		fallback: "Failed to fetch products",
	})
	if err != nil {
		return nil, err
	}

	page := &ProductPage{Page: q.Page, PerPage: q.PerPage}
	if isArray(data) {
		if err := decode(data, &page.Products); err != nil {
			return nil, err
		}
		page.Total = len(page.Products)
		return page, nil
	}
	if err := decode(data, page); err != nil {
		return nil, err
	}
	return page, nil
}

// GetProduct calls GET /products/:id
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	data, err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "/products/" + url.PathEscape(id),
		fallback: "Failed to fetch product details",
	})
	if err != nil {
		return nil, err
	}

	var product *Product
	if err := decode(unwrap(data, "product"), &product); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &APIError{StatusCode: http.StatusNotFound, Message: "Product not found"}
	}
	return product, nil
}

// ProductInput is a new product listing
type ProductInput struct {
	Name          string
	Description   string
	Price         float64
	OriginalPrice float64
	Category      string
	Sizes         []string
	Colors        []string
	Stock         int
	ImagePaths    []string
}

// CreateProduct calls POST /products
func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*Product, error) {
	mb := newMultipart()
	mb.field("name", in.Name)
	mb.field("description", in.Description)
	mb.field("price", strconv.FormatFloat(in.Price, 'f', 2, 64))
	if in.OriginalPrice > 0 {
		mb.field("originalPrice", strconv.FormatFloat(in.OriginalPrice, 'f', 2, 64))
	}
	mb.field("category", in.Category)
	mb.field("stock", strconv.Itoa(in.Stock))
	for _, s := range in.Sizes {
		mb.field("sizes", s)
	}
	for _, col := range in.Colors {
		mb.field("colors", col)
	}
	for _, p := range in.ImagePaths {
		if err := mb.file("images", p); err != nil {
			return nil, err
		}
	}
	form, err := mb.close()
	if err != nil {
		return nil, err
	}

	data, err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "/products",
		form:     form,
		auth:     true,
		fallback: "Failed to create product",
	})
	if err != nil {
		return nil, err
	}

	var product Product
	if err := decode(unwrap(data, "product"), &product); err != nil {
		return nil, err
	}
	return &product, nil
}
