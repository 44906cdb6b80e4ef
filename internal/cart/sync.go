package cart

import (
	"context"
	"fmt"
	"strconv"

	"github.com/verdantleaf/storefront/internal/api"
	"github.com/verdantleaf/storefront/internal/session"
	"github.com/verdantleaf/storefront/pkg/logger"
)

type remoteCart interface {
	FetchCart(ctx context.Context) (*api.CartResponse, error)
	AddCartItem(ctx context.Context, productID int64, quantity int) error
	UpdateCartItem(ctx context.Context, productID int64, quantity int) error
	RemoveCartItem(ctx context.Context, productID int64) error
}

type authChecker interface {
	IsAuthenticated(identity session.Identity) bool
}

// Syncer reconciles local cart mutations with the backend cart. The policy is
// confirm-then-apply for every authenticated mutation: the server call comes
// first and local state changes only on success, so a failed request leaves
// the cart exactly as it was. Anonymous sessions mutate locally only.
type Syncer struct {
	remote remoteCart
	local  *Container
	auth   authChecker
	logg   *logger.Logger
}

func NewSyncer(remote remoteCart, local *Container, auth authChecker, logg *logger.Logger) (*Syncer, error) {
	if remote == nil {
		return nil, fmt.Errorf("remote cart client required")
	}
	if local == nil {
		return nil, fmt.Errorf("local cart container required")
	}
	if auth == nil {
		return nil, fmt.Errorf("auth checker required")
	}
	return &Syncer{remote: remote, local: local, auth: auth, logg: logg}, nil
}

func (s *Syncer) authenticated() bool {
	return s.auth.IsAuthenticated(session.IdentityUser)
}

// Add confirms the mutation with the backend before touching local state.
func (s *Syncer) Add(ctx context.Context, item Item) error {
	if s.authenticated() {
		if err := s.remote.AddCartItem(ctx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}
	s.local.AddItem(ctx, item)
	if s.logg != nil {
		s.logg.Debug(s.logg.WithProductID(ctx, item.ProductID), "cart item added")
	}
	return nil
}

// UpdateQuantity sets the quantity; zero and below route to removal, matching
// the container semantics on the server side.
func (s *Syncer) UpdateQuantity(ctx context.Context, productID int64, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, productID)
	}
	if s.authenticated() {
		if err := s.remote.UpdateCartItem(ctx, productID, quantity); err != nil {
			return err
		}
	}
	s.local.UpdateQuantity(ctx, productID, quantity)
	return nil
}

func (s *Syncer) Remove(ctx context.Context, productID int64) error {
	if s.authenticated() {
		if err := s.remote.RemoveCartItem(ctx, productID); err != nil {
			return err
		}
	}
	s.local.RemoveItem(ctx, productID)
	return nil
}

// Refresh overwrites the local cart with the server cart. Server state
// supersedes local state; this is not a merge.
func (s *Syncer) Refresh(ctx context.Context) error {
	if !s.authenticated() {
		return nil
	}

	resp, err := s.remote.FetchCart(ctx)
	if err != nil {
		return err
	}

	items := make([]Item, 0, len(resp.Items))
	for _, line := range resp.Items {
		items = append(items, Item{
			CartID:        strconv.FormatInt(line.CartID, 10),
			ProductID:     line.ProductID,
			ProductName:   line.ProductName,
			Quantity:      line.Quantity,
			Price:         line.Price,
			DiscountPrice: line.DiscountPrice,
			ImageURL:      line.ImageURL,
		})
	}
	s.local.SetItems(ctx, items)

	if s.logg != nil {
		s.logg.Debug(s.logg.WithField(ctx, "items", len(items)), "cart refreshed from server")
	}
	return nil
}
