package api

import "github.com/verdantleaf/storefront/pkg/money"

// User is the storefront profile returned by auth endpoints.
type User struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	ReferralCode string `json:"referral_code,omitempty"`
}

// Admin is the back-office profile, kept fully separate from User.
type Admin struct {
	AdminID  string `json:"admin_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

type Product struct {
	ProductID     int64        `json:"product_id"`
	ProductName   string       `json:"product_name"`
	Description   string       `json:"description,omitempty"`
	Price         money.Amount `json:"price"`
	DiscountPrice money.Amount `json:"discount_price"`
	ImageURL      string       `json:"image_url,omitempty"`
	CategoryID    int64        `json:"category_id,omitempty"`
	StockQty      int          `json:"stock_quantity,omitempty"`
	IsFeatured    bool         `json:"is_featured,omitempty"`
}

type Category struct {
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
	ImageURL   string `json:"image_url,omitempty"`
}

// CartLine is the server-side cart entry shape.
type CartLine struct {
	CartID        int64        `json:"cart_id"`
	ProductID     int64        `json:"product_id"`
	ProductName   string       `json:"product_name"`
	Quantity      int          `json:"quantity"`
	Price         money.Amount `json:"price"`
	DiscountPrice money.Amount `json:"discount_price"`
	ImageURL      string       `json:"image_url,omitempty"`
}

type Address struct {
	AddressID    int64  `json:"address_id"`
	Type         string `json:"type"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	Landmark     string `json:"landmark,omitempty"`
	IsDefault    bool   `json:"is_default"`
}

// AddressInput is the create/update payload. Optional fields are always sent,
// defaulted to empty, matching what the backend expects.
type AddressInput struct {
	Type         string `json:"type"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	Landmark     string `json:"landmark"`
	IsDefault    bool   `json:"is_default"`
}

// ShippingAddress is the denormalized address snapshot embedded in an order.
// Later edits to the saved address do not touch submitted orders.
type ShippingAddress struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	Landmark     string `json:"landmark"`
	Type         string `json:"type"`
}

type OrderItemInput struct {
	ProductID   int64        `json:"product_id"`
	ProductName string       `json:"product_name"`
	Quantity    int          `json:"quantity"`
	Price       money.Amount `json:"price"`
}

type OrderInput struct {
	Items           []OrderItemInput `json:"items"`
	ShippingAddress ShippingAddress  `json:"shipping_address"`
	PaymentMethod   string           `json:"payment_method"`
	Subtotal        money.Amount     `json:"subtotal"`
	ShippingAmount  money.Amount     `json:"shipping_amount"`
	TaxAmount       money.Amount     `json:"tax_amount"`
	TotalAmount     money.Amount     `json:"total_amount"`
}

type OrderConfirmation struct {
	OrderID     int64  `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`
}

type Order struct {
	OrderID         int64            `json:"order_id"`
	OrderNumber     string           `json:"order_number"`
	Status          string           `json:"status"`
	PaymentMethod   string           `json:"payment_method"`
	Subtotal        money.Amount     `json:"subtotal"`
	ShippingAmount  money.Amount     `json:"shipping_amount"`
	TaxAmount       money.Amount     `json:"tax_amount"`
	TotalAmount     money.Amount     `json:"total_amount"`
	ShippingAddress ShippingAddress  `json:"shipping_address"`
	Items           []OrderItemInput `json:"items"`
	CreatedAt       string           `json:"created_at"`
}

// Pagination is the envelope shape shared by admin list endpoints.
type Pagination struct {
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// ListParams carries the common admin list query parameters.
type ListParams struct {
	Page    int
	PerPage int
	Search  string
	Status  string
}
