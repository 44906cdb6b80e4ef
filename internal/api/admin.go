package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/verdantleaf/storefront/pkg/money"
)

func (p ListParams) values() url.Values {
	query := url.Values{}
	if p.Page > 0 {
		query.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.Search != "" {
		query.Set("search", p.Search)
	}
	if p.Status != "" {
		query.Set("status", p.Status)
	}
	return query
}

type AdminProductListResponse struct {
	Items      []Product  `json:"items"`
	Pagination Pagination `json:"pagination"`
}

func (c *Client) AdminListProducts(ctx context.Context, params ListParams) (*AdminProductListResponse, error) {
	var out AdminProductListResponse
	if err := c.doList(ctx, NamespaceAdmin, "/products", params.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminGetProduct(ctx context.Context, productID int64) (*Product, error) {
	var out Product
	path := fmt.Sprintf("/products/%d", productID)
	if err := c.doList(ctx, NamespaceAdmin, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type ProductInput struct {
	ProductName   string       `json:"product_name"`
	Description   string       `json:"description"`
	Price         money.Amount `json:"price"`
	DiscountPrice money.Amount `json:"discount_price"`
	CategoryID    int64        `json:"category_id"`
	StockQty      int          `json:"stock_quantity"`
	IsFeatured    bool         `json:"is_featured"`
}

func (c *Client) AdminCreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	var out Product
	if err := c.do(ctx, NamespaceAdmin, http.MethodPost, "/products", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminUpdateProduct(ctx context.Context, productID int64, input ProductInput) (*Product, error) {
	var out Product
	path := fmt.Sprintf("/products/%d", productID)
	if err := c.do(ctx, NamespaceAdmin, http.MethodPut, path, nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminDeleteProduct(ctx context.Context, productID int64) error {
	path := fmt.Sprintf("/products/%d", productID)
	return c.do(ctx, NamespaceAdmin, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) AdminListCategories(ctx context.Context) ([]Category, error) {
	var out CategoryListResponse
	if err := c.doList(ctx, NamespaceAdmin, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

type CategoryInput struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

func (c *Client) AdminCreateCategory(ctx context.Context, input CategoryInput) (*Category, error) {
	var out Category
	if err := c.do(ctx, NamespaceAdmin, http.MethodPost, "/categories", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminUpdateCategory(ctx context.Context, categoryID int64, input CategoryInput) (*Category, error) {
	var out Category
	path := fmt.Sprintf("/categories/%d", categoryID)
	if err := c.do(ctx, NamespaceAdmin, http.MethodPut, path, nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminDeleteCategory removes a category; force also detaches its products.
func (c *Client) AdminDeleteCategory(ctx context.Context, categoryID int64, force bool) error {
	query := url.Values{}
	if force {
		query.Set("force", "true")
	}
	path := fmt.Sprintf("/categories/%d", categoryID)
	return c.do(ctx, NamespaceAdmin, http.MethodDelete, path, query, nil, nil)
}

type AdminUser struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type AdminUserListResponse struct {
	Items      []AdminUser `json:"items"`
	Pagination Pagination  `json:"pagination"`
}

func (c *Client) AdminListUsers(ctx context.Context, params ListParams) (*AdminUserListResponse, error) {
	var out AdminUserListResponse
	if err := c.doList(ctx, NamespaceAdmin, "/users", params.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminUpdateUserStatus(ctx context.Context, userID, status string) error {
	body := map[string]string{"status": status}
	path := fmt.Sprintf("/users/%s/status", userID)
	return c.do(ctx, NamespaceAdmin, http.MethodPut, path, nil, body, nil)
}

type AdminOrderListResponse struct {
	Items      []Order    `json:"items"`
	Pagination Pagination `json:"pagination"`
}

func (c *Client) AdminListOrders(ctx context.Context, params ListParams) (*AdminOrderListResponse, error) {
	var out AdminOrderListResponse
	if err := c.doList(ctx, NamespaceAdmin, "/orders", params.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminUpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	body := map[string]string{"status": status}
	path := fmt.Sprintf("/orders/%d/status", orderID)
	return c.do(ctx, NamespaceAdmin, http.MethodPut, path, nil, body, nil)
}

type AdminReferral struct {
	ReferrerEmail string       `json:"referrer_email"`
	ReferredEmail string       `json:"referred_email"`
	RewardAmount  money.Amount `json:"reward_amount"`
	Status        string       `json:"status"`
	CreatedAt     string       `json:"created_at"`
}

type AdminReferralListResponse struct {
	Items      []AdminReferral `json:"items"`
	Pagination Pagination      `json:"pagination"`
}

func (c *Client) AdminListReferrals(ctx context.Context, params ListParams) (*AdminReferralListResponse, error) {
	var out AdminReferralListResponse
	if err := c.doList(ctx, NamespaceAdmin, "/referrals", params.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type DashboardStats struct {
	TotalOrders   int          `json:"total_orders"`
	TotalUsers    int          `json:"total_users"`
	TotalProducts int          `json:"total_products"`
	TotalRevenue  money.Amount `json:"total_revenue"`
	PendingOrders int          `json:"pending_orders"`
}

func (c *Client) AdminDashboard(ctx context.Context) (*DashboardStats, error) {
	var out DashboardStats
	if err := c.doList(ctx, NamespaceAdmin, "/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
