package api

import (
	"context"
	"fmt"
	"net/http"
)

func (c *Client) CreateOrder(ctx context.Context, input OrderInput) (*OrderConfirmation, error) {
	var out OrderConfirmation
	if err := c.do(ctx, NamespaceUser, http.MethodPost, "/orders", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type OrderListResponse struct {
	Orders []Order `json:"orders"`
}

func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var out OrderListResponse
	if err := c.doList(ctx, NamespaceUser, "/orders", nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

func (c *Client) GetOrder(ctx context.Context, orderID int64) (*Order, error) {
	var out Order
	path := fmt.Sprintf("/orders/%d", orderID)
	if err := c.doList(ctx, NamespaceUser, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
