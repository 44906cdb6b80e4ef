// Package session holds the two client identities: the storefront user and
// the back-office admin. The slots are independent; logging one out never
// touches the other. All reads are gated on store hydration, so before the
// persisted state is restored every identity reads as anonymous.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/verdantleaf/storefront/internal/api"
	"github.com/verdantleaf/storefront/internal/storage"
	"github.com/verdantleaf/storefront/pkg/logger"
)

type Identity string

const (
	IdentityUser  Identity = "user"
	IdentityAdmin Identity = "admin"
)

// persistedAuth is the single durable auth record covering both slots.
type persistedAuth struct {
	Token string    `json:"token,omitempty"`
	User  *api.User `json:"user,omitempty"`

	AdminToken string     `json:"admin_token,omitempty"`
	Admin      *api.Admin `json:"admin,omitempty"`
}

// Manager is the auth state container.
type Manager struct {
	store *storage.Store
	logg  *logger.Logger
	mu    sync.Mutex
}

func NewManager(store *storage.Store, logg *logger.Logger) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("state store is required")
	}
	return &Manager{store: store, logg: logg}, nil
}

func (m *Manager) read() (persistedAuth, bool) {
	state := storage.Read[persistedAuth](m.store, storage.KeyAuth)
	return state.Value, state.Ready
}

func (m *Manager) write(ctx context.Context, auth persistedAuth) {
	// Persistence is best-effort; the in-memory record always lands.
	if err := m.store.Set(ctx, storage.KeyAuth, auth); err != nil && m.logg != nil {
		m.logg.Warn(ctx, "auth state persist failed")
	}
}

// LoginUser records the storefront identity.
func (m *Manager) LoginUser(ctx context.Context, token string, profile api.User) {
	m.mu.Lock()
	defer m.mu.Unlock()

	auth, _ := m.read()
	auth.Token = token
	auth.User = &profile
	m.write(ctx, auth)
}

// LoginAdmin records the back-office identity.
func (m *Manager) LoginAdmin(ctx context.Context, token string, profile api.Admin) {
	m.mu.Lock()
	defer m.mu.Unlock()

	auth, _ := m.read()
	auth.AdminToken = token
	auth.Admin = &profile
	m.write(ctx, auth)
}

// Logout clears one identity slot and leaves the other untouched.
func (m *Manager) Logout(ctx context.Context, identity Identity) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.logg != nil {
		m.logg.Debug(m.logg.WithIdentity(ctx, string(identity)), "clearing session")
	}

	auth, _ := m.read()
	switch identity {
	case IdentityUser:
		auth.Token = ""
		auth.User = nil
	case IdentityAdmin:
		auth.AdminToken = ""
		auth.Admin = nil
	}
	m.write(ctx, auth)
}

// CurrentUser returns the storefront profile when authenticated and hydrated.
func (m *Manager) CurrentUser() (api.User, bool) {
	auth, ready := m.read()
	if !ready || auth.Token == "" || auth.User == nil {
		return api.User{}, false
	}
	return *auth.User, true
}

// CurrentAdmin returns the admin profile when authenticated and hydrated.
func (m *Manager) CurrentAdmin() (api.Admin, bool) {
	auth, ready := m.read()
	if !ready || auth.AdminToken == "" || auth.Admin == nil {
		return api.Admin{}, false
	}
	return *auth.Admin, true
}

func (m *Manager) IsAuthenticated(identity Identity) bool {
	auth, ready := m.read()
	if !ready {
		return false
	}
	switch identity {
	case IdentityUser:
		return auth.Token != ""
	case IdentityAdmin:
		return auth.AdminToken != ""
	default:
		return false
	}
}

// Token implements api.TokenSource. Pre-hydration and anonymous reads both
// yield the empty token.
func (m *Manager) Token(namespace api.Namespace) string {
	auth, ready := m.read()
	if !ready {
		return ""
	}
	switch namespace {
	case api.NamespaceUser:
		return auth.Token
	case api.NamespaceAdmin:
		return auth.AdminToken
	default:
		return ""
	}
}

// UnauthorizedHook returns the forced-logout callback wired into the API
// client: a 401 clears exactly the namespace that issued the request.
func (m *Manager) UnauthorizedHook() api.UnauthorizedHook {
	return func(ctx context.Context, namespace api.Namespace) {
		switch namespace {
		case api.NamespaceUser:
			m.Logout(ctx, IdentityUser)
		case api.NamespaceAdmin:
			m.Logout(ctx, IdentityAdmin)
		}
	}
}
