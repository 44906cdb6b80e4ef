package checkout

import (
	"context"
	"sync"

	"github.com/verdantleaf/storefront/internal/address"
	"github.com/verdantleaf/storefront/internal/api"
	"github.com/verdantleaf/storefront/internal/cart"
	"github.com/verdantleaf/storefront/internal/session"
	"github.com/verdantleaf/storefront/pkg/config"
	"github.com/verdantleaf/storefront/pkg/errors"
	"github.com/verdantleaf/storefront/pkg/logger"
	"github.com/verdantleaf/storefront/pkg/money"
)

// State is the checkout lifecycle. Transitions:
//
//	LoadingAddresses -> AddressReady -> Submitting -> Succeeded
//	                                               -> Failed -> Submitting (retry)
type State string

const (
	StateLoadingAddresses State = "loading_addresses"
	StateAddressReady     State = "address_ready"
	StateSubmitting       State = "submitting"
	StateSucceeded        State = "succeeded"
	StateFailed           State = "failed"
)

// PaymentMethod names a way to pay for an order.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cod"
	PaymentOnline         PaymentMethod = "online"
)

var (
	ErrNotAuthenticated = errors.New(errors.CodeUnauthorized, "please log in to continue to checkout")
	ErrEmptyCart        = errors.New(errors.CodeValidation, "your cart is empty")
)

type backend interface {
	ListAddresses(ctx context.Context) ([]api.Address, error)
	CreateAddress(ctx context.Context, in api.AddressInput) (*api.Address, error)
	UpdateAddress(ctx context.Context, id int64, in api.AddressInput) (*api.Address, error)
	CreateOrder(ctx context.Context, in api.OrderInput) (*api.OrderConfirmation, error)
}

type cartSource interface {
	Items() []cart.Item
	TotalPrice() money.Amount
	Clear(ctx context.Context)
}

type authChecker interface {
	IsAuthenticated(identity session.Identity) bool
}

// Checkout drives a single order from address selection to submission.
// Safe for concurrent use; network calls happen outside the lock.
type Checkout struct {
	backend  backend
	cart     cartSource
	auth     authChecker
	shipping config.ShippingConfig
	logg     *logger.Logger

	mu         sync.Mutex
	state      State
	addresses  []api.Address
	selectedID int64
	payment    PaymentMethod
	lastError  string
	inFlight   bool
}

func New(backend backend, cart cartSource, auth authChecker, shipping config.ShippingConfig, logg *logger.Logger) (*Checkout, error) {
	if backend == nil {
		return nil, errors.New(errors.CodeInternal, "backend is nil")
	}
	if cart == nil {
		return nil, errors.New(errors.CodeInternal, "cart is nil")
	}
	if auth == nil {
		return nil, errors.New(errors.CodeInternal, "auth is nil")
	}
	if logg == nil {
		return nil, errors.New(errors.CodeInternal, "logger is nil")
	}
	return &Checkout{
		backend:  backend,
		cart:     cart,
		auth:     auth,
		shipping: shipping,
		logg:     logg,
		state:    StateLoadingAddresses,
		payment:  PaymentCashOnDelivery,
	}, nil
}

// Begin guards entry and loads the address book. Both guards run before any
// network call so an anonymous or empty-cart session never hits the backend.
func (c *Checkout) Begin(ctx context.Context) error {
	if !c.auth.IsAuthenticated(session.IdentityUser) {
		return ErrNotAuthenticated
	}
	if len(c.cart.Items()) == 0 {
		return ErrEmptyCart
	}

	c.mu.Lock()
	c.state = StateLoadingAddresses
	c.mu.Unlock()

	addrs, err := c.backend.ListAddresses(ctx)
	if err != nil {
		c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "checkout address load failed")
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.addresses = addrs
	c.selectedID = pickAddress(addrs, 0)
	c.state = StateAddressReady
	return nil
}

// pickAddress keeps current when it still exists, else the default address,
// else the first, else none.
func pickAddress(addrs []api.Address, current int64) int64 {
	if current != 0 {
		for _, a := range addrs {
			if a.AddressID == current {
				return current
			}
		}
	}
	for _, a := range addrs {
		if a.IsDefault {
			return a.AddressID
		}
	}
	if len(addrs) > 0 {
		return addrs[0].AddressID
	}
	return 0
}

func (c *Checkout) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastError is the user-facing message of the most recent failed submit.
func (c *Checkout) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}

func (c *Checkout) Addresses() []api.Address {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]api.Address, len(c.addresses))
	copy(out, c.addresses)
	return out
}

func (c *Checkout) SelectedAddress() (api.Address, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedLocked()
}

func (c *Checkout) selectedLocked() (api.Address, bool) {
	for _, a := range c.addresses {
		if a.AddressID == c.selectedID {
			return a, true
		}
	}
	return api.Address{}, false
}

// SelectAddress switches the delivery address. The id must be one of the
// loaded addresses.
func (c *Checkout) SelectAddress(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, a := range c.addresses {
		if a.AddressID == id {
			c.selectedID = id
			return nil
		}
	}
	return errors.New(errors.CodeValidation, "address not found")
}

// AddAddress validates the form, creates the address on the server, then
// refetches the list so local state mirrors the server's. The new address is
// selected when it is the default or when nothing was selected yet.
func (c *Checkout) AddAddress(ctx context.Context, form address.Form) error {
	if err := form.Validate(); err != nil {
		return err
	}
	created, err := c.backend.CreateAddress(ctx, form.Input())
	if err != nil {
		return err
	}
	addrs, err := c.backend.ListAddresses(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.addresses = addrs
	if created.IsDefault || c.selectedID == 0 {
		c.selectedID = created.AddressID
	}
	c.selectedID = pickAddress(addrs, c.selectedID)
	if c.state == StateLoadingAddresses {
		c.state = StateAddressReady
	}
	return nil
}

// UpdateAddress edits an existing address and refetches. Selection is kept
// unless the edited address vanished server-side.
func (c *Checkout) UpdateAddress(ctx context.Context, id int64, form address.Form) error {
	if err := form.Validate(); err != nil {
		return err
	}
	if _, err := c.backend.UpdateAddress(ctx, id, form.Input()); err != nil {
		return err
	}
	addrs, err := c.backend.ListAddresses(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.addresses = addrs
	c.selectedID = pickAddress(addrs, c.selectedID)
	return nil
}

// SelectPayment accepts cash on delivery only. Other methods are rejected
// and the previous selection stands.
func (c *Checkout) SelectPayment(method PaymentMethod) error {
	if method != PaymentCashOnDelivery {
		return errors.New(errors.CodeValidation, "online payment is not available yet, please use cash on delivery")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payment = method
	return nil
}

func (c *Checkout) Payment() PaymentMethod {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.payment
}

// Totals recomputes from the live cart on every call. Cart edits made while
// the checkout is open are reflected immediately.
func (c *Checkout) Totals() Totals {
	return ComputeTotals(c.cart.TotalPrice(), c.shipping)
}

// Submit places the order. Blocked while a previous submit is in flight, when
// no address is selected, or when the cart emptied since Begin. On success
// the cart is cleared and the checkout is terminal; on failure it stays
// resubmittable.
func (c *Checkout) Submit(ctx context.Context) (*api.OrderConfirmation, error) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return nil, errors.New(errors.CodeConflict, "an order is already being placed")
	}
	addr, ok := c.selectedLocked()
	if !ok {
		c.mu.Unlock()
		return nil, errors.New(errors.CodeValidation, "please select a delivery address")
	}
	items := c.cart.Items()
	if len(items) == 0 {
		c.mu.Unlock()
		return nil, ErrEmptyCart
	}
	payment := c.payment
	c.inFlight = true
	c.state = StateSubmitting
	c.mu.Unlock()

	// Totals derive from the same snapshot as the order lines, so a cart
	// mutation racing the submit cannot make them disagree.
	totals := ComputeTotals(snapshotSubtotal(items), c.shipping)
	in := api.OrderInput{
		Items:           orderItems(items),
		ShippingAddress: snapshotAddress(addr),
		PaymentMethod:   string(payment),
		Subtotal:        totals.Subtotal,
		ShippingAmount:  totals.Shipping,
		TaxAmount:       money.Zero(),
		TotalAmount:     totals.Total,
	}

	conf, err := c.backend.CreateOrder(ctx, in)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	if err != nil {
		typed := errors.As(err)
		if typed == nil {
			typed = errors.Wrap(errors.CodeInternal, err, "order submission failed")
		}
		c.state = StateFailed
		c.lastError = typed.UserMessage()
		c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "order submission failed")
		return nil, err
	}
	c.state = StateSucceeded
	c.lastError = ""
	c.cart.Clear(ctx)
	ctx = c.logg.WithFields(ctx, map[string]any{
		"order_id":     conf.OrderID,
		"order_number": conf.OrderNumber,
	})
	c.logg.Info(ctx, "order placed")
	return conf, nil
}

func snapshotSubtotal(items []cart.Item) money.Amount {
	lines := make([]money.Amount, 0, len(items))
	for _, it := range items {
		lines = append(lines, it.DiscountPrice.MulInt(it.Quantity))
	}
	return money.Sum(lines...)
}

func orderItems(items []cart.Item) []api.OrderItemInput {
	out := make([]api.OrderItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, api.OrderItemInput{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.DiscountPrice,
		})
	}
	return out
}

// snapshotAddress denormalizes the selected address into the order so later
// edits to the address book cannot rewrite order history.
func snapshotAddress(a api.Address) api.ShippingAddress {
	return api.ShippingAddress{
		Name:         a.Name,
		Phone:        a.Phone,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		Pincode:      a.Pincode,
		Landmark:     a.Landmark,
		Type:         a.Type,
	}
}
