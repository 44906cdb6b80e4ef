package api

import (
	"context"
	"fmt"
	"net/http"
)

type AddressListResponse struct {
	Addresses []Address `json:"addresses"`
}

func (c *Client) ListAddresses(ctx context.Context) ([]Address, error) {
	var out AddressListResponse
	if err := c.doList(ctx, NamespaceUser, "/addresses", nil, &out); err != nil {
		return nil, err
	}
	return out.Addresses, nil
}

func (c *Client) CreateAddress(ctx context.Context, input AddressInput) (*Address, error) {
	var out Address
	if err := c.do(ctx, NamespaceUser, http.MethodPost, "/addresses", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAddress(ctx context.Context, addressID int64, input AddressInput) (*Address, error) {
	var out Address
	path := fmt.Sprintf("/addresses/%d", addressID)
	if err := c.do(ctx, NamespaceUser, http.MethodPut, path, nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAddress(ctx context.Context, addressID int64) error {
	path := fmt.Sprintf("/addresses/%d", addressID)
	return c.do(ctx, NamespaceUser, http.MethodDelete, path, nil, nil, nil)
}
