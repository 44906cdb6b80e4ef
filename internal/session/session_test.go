package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/verdantleaf/storefront/internal/api"
	"github.com/verdantleaf/storefront/internal/storage"
)

func newHydratedManager(t *testing.T) *Manager {
	t.Helper()

	store := storage.New(storage.NewMemoryMedium(), nil)
	if err := store.Hydrate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mgr, err := NewManager(store, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return mgr
}

func TestIdentitySlotsAreIndependent(t *testing.T) {
	t.Parallel()

	mgr := newHydratedManager(t)
	ctx := context.Background()

	mgr.LoginUser(ctx, "user-token", api.User{UserID: "u1", Email: "u@example.com"})
	mgr.LoginAdmin(ctx, "admin-token", api.Admin{AdminID: "a1", Username: "root"})

	mgr.Logout(ctx, IdentityUser)

	if mgr.IsAuthenticated(IdentityUser) {
		t.Fatal("expected user to be logged out")
	}
	if !mgr.IsAuthenticated(IdentityAdmin) {
		t.Fatal("expected admin session to survive user logout")
	}
	if got := mgr.Token(api.NamespaceAdmin); got != "admin-token" {
		t.Fatalf("unexpected admin token: %q", got)
	}
}

func TestReadsBeforeHydrationAreAnonymous(t *testing.T) {
	t.Parallel()

	medium := storage.NewMemoryMedium()
	persisted, _ := json.Marshal(map[string]any{"token": "t", "user": map[string]any{"user_id": "u1"}})
	medium.Save(context.Background(), storage.KeyAuth, persisted)

	store := storage.New(medium, nil)
	mgr, err := NewManager(store, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if mgr.IsAuthenticated(IdentityUser) {
		t.Fatal("expected anonymous before hydration")
	}
	if got := mgr.Token(api.NamespaceUser); got != "" {
		t.Fatalf("expected empty token before hydration, got %q", got)
	}

	if err := store.Hydrate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !mgr.IsAuthenticated(IdentityUser) {
		t.Fatal("expected persisted session after hydration")
	}
}

func TestUnauthorizedHookClearsOnlyFailingNamespace(t *testing.T) {
	t.Parallel()

	mgr := newHydratedManager(t)
	ctx := context.Background()

	mgr.LoginUser(ctx, "user-token", api.User{UserID: "u1"})
	mgr.LoginAdmin(ctx, "admin-token", api.Admin{AdminID: "a1"})

	mgr.UnauthorizedHook()(ctx, api.NamespaceUser)

	if mgr.IsAuthenticated(IdentityUser) {
		t.Fatal("expected 401 to clear user credentials")
	}
	if !mgr.IsAuthenticated(IdentityAdmin) {
		t.Fatal("expected admin credentials to be untouched")
	}
}

func TestPeekClaims(t *testing.T) {
	t.Parallel()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"user-42","exp":4102444800}`))
	token := header + "." + payload + ".signature"

	claims, err := PeekClaims(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != "user-42" {
		t.Fatalf("unexpected subject: %q", claims.Subject)
	}
	if claims.ExpiresAt.IsZero() {
		t.Fatal("expected expiry to be decoded")
	}

	if _, err := PeekClaims("not-a-jwt"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
