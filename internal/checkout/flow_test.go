package checkout

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/verdantleaf/storefront/internal/api"
	"github.com/verdantleaf/storefront/internal/cart"
	"github.com/verdantleaf/storefront/internal/session"
	"github.com/verdantleaf/storefront/internal/storage"
	"github.com/verdantleaf/storefront/pkg/config"
	"github.com/verdantleaf/storefront/pkg/logger"
	"github.com/verdantleaf/storefront/pkg/money"
)

// fakeShop is an in-memory backend serving the user namespace over chi.
type fakeShop struct {
	token     string
	cartLines []api.CartLine
	addresses []api.Address
	orders    int
}

func (f *fakeShop) authed(r *http.Request) bool {
	return r.Header.Get("Authorization") == "Bearer "+f.token
}

func (f *fakeShop) router() http.Handler {
	reject := func(w http.ResponseWriter) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "session expired"})
	}

	r := chi.NewRouter()
	r.Post("/api/user/auth/login", func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(api.LoginResponse{
			Token: f.token,
			User:  api.User{UserID: "u-1", Email: "asha@example.com", FirstName: "Asha"},
		})
	})
	r.Get("/api/user/cart", func(w http.ResponseWriter, req *http.Request) {
		if !f.authed(req) {
			reject(w)
			return
		}
		json.NewEncoder(w).Encode(api.CartResponse{Items: f.cartLines})
	})
	r.Post("/api/user/cart/add", func(w http.ResponseWriter, req *http.Request) {
		if !f.authed(req) {
			reject(w)
			return
		}
		var in struct {
			ProductID int64 `json:"product_id"`
			Quantity  int   `json:"quantity"`
		}
		json.NewDecoder(req.Body).Decode(&in)
		f.cartLines = append(f.cartLines, api.CartLine{
			CartID:    int64(len(f.cartLines) + 1),
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
		})
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/api/user/addresses", func(w http.ResponseWriter, req *http.Request) {
		if !f.authed(req) {
			reject(w)
			return
		}
		json.NewEncoder(w).Encode(api.AddressListResponse{Addresses: f.addresses})
	})
	r.Post("/api/user/orders", func(w http.ResponseWriter, req *http.Request) {
		if !f.authed(req) {
			reject(w)
			return
		}
		f.orders++
		f.cartLines = nil
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(api.OrderConfirmation{OrderID: int64(f.orders), OrderNumber: "ORD-1", Status: "pending"})
	})
	return r
}

type stack struct {
	store   *storage.Store
	session *session.Manager
	client  *api.Client
	cart    *cart.Container
	syncer  *cart.Syncer
}

// newStack boots the full client stack over a file medium so state survives
// a rebuild from the same directory.
func newStack(t *testing.T, dir, baseURL string) *stack {
	t.Helper()

	medium, err := storage.NewFileMedium(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { medium.Close() })

	store := storage.New(medium, nil)
	if err := store.Hydrate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sess, err := session.NewManager(store, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	client, err := api.NewClient(config.APIConfig{BaseURL: baseURL + "/api", ListRetries: 1}, sess, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	client.SetUnauthorizedHook(sess.UnauthorizedHook())

	local := cart.NewContainer(store, nil)
	syncer, err := cart.NewSyncer(client, local, sess, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return &stack{store: store, session: sess, client: client, cart: local, syncer: syncer}
}

func TestFullPurchaseFlow(t *testing.T) {
	t.Parallel()

	shop := &fakeShop{
		token: "tok-1",
		addresses: []api.Address{
			{AddressID: 1, Name: "Asha", Phone: "9876543210", AddressLine1: "12 Hill Rd", City: "Pune", State: "MH", Pincode: "411001", IsDefault: true},
		},
	}
	srv := httptest.NewServer(shop.router())
	defer srv.Close()

	dir := t.TempDir()
	ctx := context.Background()
	s := newStack(t, dir, srv.URL)

	// Anonymous adds stay local: no server call, no error.
	seed := cart.Item{ProductID: 10, ProductName: "tulsi", Quantity: 2, Price: money.Parse("300"), DiscountPrice: money.Parse("300")}
	if err := s.syncer.Add(ctx, seed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(shop.cartLines) != 0 {
		t.Fatal("anonymous add must not reach the server")
	}

	// Login, then the authenticated add goes through the server first.
	resp, err := s.client.Login(ctx, api.LoginInput{Email: "asha@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.session.LoginUser(ctx, resp.Token, resp.User)

	if err := s.syncer.Add(ctx, cart.Item{ProductID: 11, ProductName: "neem", Quantity: 1, Price: money.Parse("50"), DiscountPrice: money.Parse("50")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(shop.cartLines) != 1 {
		t.Fatalf("expected 1 server line, got %d", len(shop.cartLines))
	}

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	shipping := config.ShippingConfig{FreeThreshold: 500, FlatFee: 50}
	co, err := New(s.client, s.cart, s.session, shipping, logg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := co.Begin(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 600 + 50 clears the free-shipping threshold.
	totals := co.Totals()
	if totals.Subtotal.String() != "650.00" || !totals.Shipping.IsZero() {
		t.Fatalf("unexpected totals: %s + %s", totals.Subtotal, totals.Shipping)
	}

	if _, err := co.Submit(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items := s.cart.Items(); len(items) != 0 {
		t.Fatalf("cart must be empty after order, got %d items", len(items))
	}

	// Rebuild from the same directory: the session survives, the cart stays
	// empty.
	s2 := newStack(t, dir, srv.URL)
	if !s2.session.IsAuthenticated(session.IdentityUser) {
		t.Fatal("session must survive a restart")
	}
	if items := s2.cart.Items(); len(items) != 0 {
		t.Fatalf("cleared cart must stay empty after restart, got %d items", len(items))
	}
}

func TestExpiredTokenClearsOnlyUserSession(t *testing.T) {
	t.Parallel()

	shop := &fakeShop{token: "fresh-token"}
	srv := httptest.NewServer(shop.router())
	defer srv.Close()

	ctx := context.Background()
	s := newStack(t, t.TempDir(), srv.URL)

	s.session.LoginUser(ctx, "stale-token", api.User{UserID: "u-1", Email: "asha@example.com"})
	s.session.LoginAdmin(ctx, "admin-token", api.Admin{AdminID: "a-1", Username: "root"})

	if err := s.syncer.Refresh(ctx); err == nil {
		t.Fatal("expected refresh with a stale token to fail")
	}

	if s.session.IsAuthenticated(session.IdentityUser) {
		t.Fatal("user session must be cleared after 401")
	}
	if !s.session.IsAuthenticated(session.IdentityAdmin) {
		t.Fatal("admin session must be untouched by a user 401")
	}
}

func TestAnonymousCartSurvivesRestart(t *testing.T) {
	t.Parallel()

	shop := &fakeShop{token: "tok"}
	srv := httptest.NewServer(shop.router())
	defer srv.Close()

	dir := t.TempDir()
	ctx := context.Background()

	s := newStack(t, dir, srv.URL)
	if err := s.syncer.Add(ctx, cart.Item{ProductID: 1, ProductName: "mint", Quantity: 3, Price: money.Parse("40"), DiscountPrice: money.Parse("40")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s2 := newStack(t, dir, srv.URL)
	items := s2.cart.Items()
	if len(items) != 1 || items[0].Quantity != 3 {
		t.Fatalf("expected restored cart with one line of 3, got %+v", items)
	}
	if got := s2.cart.TotalPrice().String(); got != "120.00" {
		t.Fatalf("expected 120.00, got %s", got)
	}
}
