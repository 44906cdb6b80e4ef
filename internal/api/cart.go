package api

import (
	"context"
	"fmt"
	"net/http"
)

type CartResponse struct {
	Items []CartLine `json:"items"`
}

// FetchCart pulls the authoritative server cart.
func (c *Client) FetchCart(ctx context.Context) (*CartResponse, error) {
	var out CartResponse
	if err := c.doList(ctx, NamespaceUser, "/cart", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type cartMutationInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func (c *Client) AddCartItem(ctx context.Context, productID int64, quantity int) error {
	body := cartMutationInput{ProductID: productID, Quantity: quantity}
	return c.do(ctx, NamespaceUser, http.MethodPost, "/cart/add", nil, body, nil)
}

func (c *Client) UpdateCartItem(ctx context.Context, productID int64, quantity int) error {
	body := cartMutationInput{ProductID: productID, Quantity: quantity}
	return c.do(ctx, NamespaceUser, http.MethodPut, "/cart/update", nil, body, nil)
}

func (c *Client) RemoveCartItem(ctx context.Context, productID int64) error {
	path := fmt.Sprintf("/cart/remove/%d", productID)
	return c.do(ctx, NamespaceUser, http.MethodDelete, path, nil, nil, nil)
}
