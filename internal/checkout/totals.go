package checkout

import (
	"github.com/verdantleaf/storefront/pkg/config"
	"github.com/verdantleaf/storefront/pkg/money"
)

// Totals is a fresh derivation from the live cart. It is never cached across
// states: every caller recomputes.
type Totals struct {
	Subtotal money.Amount
	Shipping money.Amount
	Total    money.Amount
}

// ComputeTotals applies the free-shipping rule: shipping is waived at or
// above the configured threshold, else the flat fee applies. Both the cart
// summary and the checkout read this one function.
func ComputeTotals(subtotal money.Amount, cfg config.ShippingConfig) Totals {
	shipping := money.FromInt(cfg.FlatFee)
	if subtotal.GreaterOrEqual(money.FromInt(cfg.FreeThreshold)) {
		shipping = money.Zero()
	}
	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
	}
}
