// Package cart holds the local shopping cart state and its reconciliation
// with the backend cart.
package cart

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/verdantleaf/storefront/internal/storage"
	"github.com/verdantleaf/storefront/pkg/logger"
	"github.com/verdantleaf/storefront/pkg/money"
)

// Item is one cart entry. ProductID is the merge key: the container never
// holds two entries for the same product. CartID is a local identifier only
// and is not stable across sessions.
type Item struct {
	CartID        string       `json:"cart_id"`
	ProductID     int64        `json:"product_id"`
	ProductName   string       `json:"product_name"`
	Quantity      int          `json:"quantity"`
	Price         money.Amount `json:"price"`
	DiscountPrice money.Amount `json:"discount_price"`
	ImageURL      string       `json:"image_url,omitempty"`
}

// Container is the cart state container. Mutations are total functions over
// the in-memory collection; persistence is best-effort and never surfaces to
// callers.
type Container struct {
	store *storage.Store
	logg  *logger.Logger
	mu    sync.Mutex
}

func NewContainer(store *storage.Store, logg *logger.Logger) *Container {
	return &Container{store: store, logg: logg}
}

func (c *Container) read() ([]Item, bool) {
	state := storage.Read[[]Item](c.store, storage.KeyCart)
	return state.Value, state.Ready
}

func (c *Container) write(ctx context.Context, items []Item) {
	if err := c.store.Set(ctx, storage.KeyCart, items); err != nil && c.logg != nil {
		c.logg.Warn(ctx, "cart persist failed")
	}
}

// AddItem merges by product: an existing entry gains the incoming quantity,
// a new product appends in insertion order.
func (c *Container) AddItem(ctx context.Context, item Item) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, _ := c.read()
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += item.Quantity
			c.write(ctx, items)
			return
		}
	}

	if item.CartID == "" {
		item.CartID = uuid.NewString()
	}
	c.write(ctx, append(items, item))
}

// RemoveItem deletes the entry for the product; absent products are a no-op.
func (c *Container) RemoveItem(ctx context.Context, productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, _ := c.read()
	kept := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	c.write(ctx, kept)
}

// UpdateQuantity sets the quantity outright; zero or below removes the entry.
func (c *Container) UpdateQuantity(ctx context.Context, productID int64, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(ctx, productID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	items, _ := c.read()
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			break
		}
	}
	c.write(ctx, items)
}

// Clear empties the cart. Used after successful order placement.
func (c *Container) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.write(ctx, []Item{})
}

// SetItems overwrites the local cart with server state, last write wins.
func (c *Container) SetItems(ctx context.Context, items []Item) {
	c.mu.Lock()
	defer c.mu.Unlock()

	replaced := make([]Item, len(items))
	copy(replaced, items)
	for i := range replaced {
		if replaced[i].CartID == "" {
			replaced[i].CartID = uuid.NewString()
		}
	}
	c.write(ctx, replaced)
}

// Items returns a snapshot copy, empty before hydration.
func (c *Container) Items() []Item {
	items, ready := c.read()
	if !ready {
		return nil
	}
	snapshot := make([]Item, len(items))
	copy(snapshot, items)
	return snapshot
}

// TotalItems sums quantities, 0 before hydration so the first render matches
// the server-rendered default.
func (c *Container) TotalItems() int {
	items, ready := c.read()
	if !ready {
		return 0
	}
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums discount price times quantity, recomputed on every call.
func (c *Container) TotalPrice() money.Amount {
	items, ready := c.read()
	if !ready {
		return money.Zero()
	}
	total := money.Zero()
	for _, item := range items {
		total = total.Add(item.DiscountPrice.MulInt(item.Quantity))
	}
	return total
}
