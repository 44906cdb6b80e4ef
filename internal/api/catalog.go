package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

type ProductListParams struct {
	CategoryID int64
	Search     string
	Page       int
	PerPage    int
	SortBy     string
}

type ProductListResponse struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

func (c *Client) ListProducts(ctx context.Context, params ProductListParams) (*ProductListResponse, error) {
	query := url.Values{}
	if params.CategoryID > 0 {
		query.Set("category_id", strconv.FormatInt(params.CategoryID, 10))
	}
	if search := strings.TrimSpace(params.Search); search != "" {
		query.Set("search", search)
	}
	if params.Page > 1 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(params.PerPage))
	}
	if params.SortBy != "" {
		query.Set("sort_by", params.SortBy)
	}

	var out ProductListResponse
	if err := c.doList(ctx, NamespaceUser, "/products", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type FeaturedResponse struct {
	Products []Product `json:"products"`
}

func (c *Client) FeaturedProducts(ctx context.Context) ([]Product, error) {
	var out FeaturedResponse
	if err := c.doList(ctx, NamespaceUser, "/products/featured", nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

func (c *Client) GetProduct(ctx context.Context, productID int64) (*Product, error) {
	var out Product
	path := fmt.Sprintf("/products/%d", productID)
	if err := c.doList(ctx, NamespaceUser, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type CategoryListResponse struct {
	Categories []Category `json:"categories"`
}

// ListCategories is served from the public namespace; no token attached.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var out CategoryListResponse
	if err := c.doList(ctx, NamespacePublic, "/public/categories", nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}
