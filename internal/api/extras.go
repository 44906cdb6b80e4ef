package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/verdantleaf/storefront/pkg/money"
)

type WishlistResponse struct {
	Items []Product `json:"items"`
}

func (c *Client) FetchWishlist(ctx context.Context) ([]Product, error) {
	var out WishlistResponse
	if err := c.doList(ctx, NamespaceUser, "/wishlist", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) AddWishlistItem(ctx context.Context, productID int64) error {
	body := map[string]int64{"product_id": productID}
	return c.do(ctx, NamespaceUser, http.MethodPost, "/wishlist/add", nil, body, nil)
}

func (c *Client) RemoveWishlistItem(ctx context.Context, productID int64) error {
	path := fmt.Sprintf("/wishlist/remove/%d", productID)
	return c.do(ctx, NamespaceUser, http.MethodDelete, path, nil, nil, nil)
}

type ReferralSummary struct {
	ReferralCode  string       `json:"referral_code"`
	TotalReferred int          `json:"total_referred"`
	TotalEarned   money.Amount `json:"total_earned"`
}

func (c *Client) FetchReferrals(ctx context.Context) (*ReferralSummary, error) {
	var out ReferralSummary
	if err := c.doList(ctx, NamespaceUser, "/referrals", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type ReferralValidation struct {
	Valid    bool   `json:"valid"`
	Referrer string `json:"referrer,omitempty"`
}

func (c *Client) ValidateReferral(ctx context.Context, code string) (*ReferralValidation, error) {
	var out ReferralValidation
	body := map[string]string{"code": code}
	if err := c.do(ctx, NamespaceUser, http.MethodPost, "/referrals/validate", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type WalletSummary struct {
	Balance money.Amount `json:"balance"`
}

func (c *Client) FetchWallet(ctx context.Context) (*WalletSummary, error) {
	var out WalletSummary
	if err := c.doList(ctx, NamespaceUser, "/wallet", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
