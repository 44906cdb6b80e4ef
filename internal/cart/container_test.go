package cart

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/verdantleaf/storefront/internal/storage"
	"github.com/verdantleaf/storefront/pkg/money"
)

func newHydratedContainer(t *testing.T) *Container {
	t.Helper()

	store := storage.New(storage.NewMemoryMedium(), nil)
	if err := store.Hydrate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewContainer(store, nil)
}

func item(productID int64, qty int, discountPrice string) Item {
	return Item{
		ProductID:     productID,
		ProductName:   "product",
		Quantity:      qty,
		Price:         money.Parse("100"),
		DiscountPrice: money.Parse(discountPrice),
	}
}

func TestAddItemMergesByProductID(t *testing.T) {
	t.Parallel()

	c := newHydratedContainer(t)
	ctx := context.Background()

	c.AddItem(ctx, item(1, 2, "80"))
	c.AddItem(ctx, item(1, 1, "80"))
	c.AddItem(ctx, item(2, 1, "50"))

	items := c.Items()
	if len(items) != 2 {
		t.Fatalf("expected one entry per product, got %d", len(items))
	}
	if items[0].ProductID != 1 || items[0].Quantity != 3 {
		t.Fatalf("expected merged quantity 3, got %+v", items[0])
	}
	if c.TotalItems() != 4 {
		t.Fatalf("expected 4 total items, got %d", c.TotalItems())
	}
	if got := c.TotalPrice().String(); got != "290.00" {
		t.Fatalf("expected total 290.00, got %s", got)
	}
}

func TestUpdateQuantitySetsOutright(t *testing.T) {
	t.Parallel()

	c := newHydratedContainer(t)
	ctx := context.Background()

	c.AddItem(ctx, item(1, 5, "80"))
	c.UpdateQuantity(ctx, 1, 2)

	if items := c.Items(); items[0].Quantity != 2 {
		t.Fatalf("expected quantity set to 2, got %d", items[0].Quantity)
	}
}

func TestUpdateQuantityZeroEqualsRemove(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	viaUpdate := newHydratedContainer(t)
	viaUpdate.AddItem(ctx, item(1, 2, "80"))
	viaUpdate.UpdateQuantity(ctx, 1, 0)

	viaRemove := newHydratedContainer(t)
	viaRemove.AddItem(ctx, item(1, 2, "80"))
	viaRemove.RemoveItem(ctx, 1)

	if len(viaUpdate.Items()) != 0 || len(viaRemove.Items()) != 0 {
		t.Fatal("expected both paths to leave no entry")
	}
}

func TestRemoveMissingProductIsNoop(t *testing.T) {
	t.Parallel()

	c := newHydratedContainer(t)
	ctx := context.Background()

	c.AddItem(ctx, item(1, 1, "80"))
	c.RemoveItem(ctx, 99)

	if len(c.Items()) != 1 {
		t.Fatal("expected existing entry to survive")
	}
}

func TestTotalsAreZeroBeforeHydration(t *testing.T) {
	t.Parallel()

	medium := storage.NewMemoryMedium()
	persisted, _ := json.Marshal([]Item{item(1, 3, "80")})
	medium.Save(context.Background(), storage.KeyCart, persisted)

	store := storage.New(medium, nil)
	c := NewContainer(store, nil)

	if c.TotalItems() != 0 {
		t.Fatalf("expected 0 items before hydration, got %d", c.TotalItems())
	}
	if !c.TotalPrice().IsZero() {
		t.Fatalf("expected zero price before hydration, got %s", c.TotalPrice())
	}
	if c.Items() != nil {
		t.Fatal("expected nil snapshot before hydration")
	}

	if err := store.Hydrate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.TotalItems() != 3 {
		t.Fatalf("expected persisted quantities after hydration, got %d", c.TotalItems())
	}
}

func TestSetItemsOverwrites(t *testing.T) {
	t.Parallel()

	c := newHydratedContainer(t)
	ctx := context.Background()

	c.AddItem(ctx, item(1, 5, "80"))
	c.SetItems(ctx, []Item{item(7, 1, "30")})

	items := c.Items()
	if len(items) != 1 || items[0].ProductID != 7 {
		t.Fatalf("expected server state to supersede local, got %+v", items)
	}
	if items[0].CartID == "" {
		t.Fatal("expected a local cart id to be assigned")
	}
}

func TestClearEmptiesEverything(t *testing.T) {
	t.Parallel()

	c := newHydratedContainer(t)
	ctx := context.Background()

	c.AddItem(ctx, item(1, 2, "80"))
	c.AddItem(ctx, item(2, 4, "20"))
	c.Clear(ctx)

	if c.TotalItems() != 0 || !c.TotalPrice().IsZero() {
		t.Fatal("expected empty cart after clear")
	}
}

func TestScenarioRepeatedAdd(t *testing.T) {
	t.Parallel()

	c := newHydratedContainer(t)
	ctx := context.Background()

	c.AddItem(ctx, item(1, 2, "80"))
	c.AddItem(ctx, item(1, 1, "80"))

	items := c.Items()
	if len(items) != 1 || items[0].Quantity != 3 {
		t.Fatalf("expected single entry with quantity 3, got %+v", items)
	}
	if got := c.TotalPrice().String(); got != "240.00" {
		t.Fatalf("expected 240.00, got %s", got)
	}
}
