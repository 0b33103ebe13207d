// Package auth holds the signed-in session: token, role and profile, all
// mirrored in the local store so a restart stays signed in. The credential
// protocol itself belongs to the remote API.
package auth

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fyndhq/fynd/internal/bus"
	"github.com/fyndhq/fynd/internal/catalog"
	"github.com/fyndhq/fynd/internal/store"
)

// Authenticator is the credential side of the catalog client.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*catalog.User, string, error)
}

// Manager is the application-scoped auth session.
type Manager struct {
	db     *store.DB
	client Authenticator
	bus    *bus.Bus
	logger *zap.Logger

	mu    sync.Mutex
	user  *catalog.User
	token string
}

// NewManager creates a manager, restoring any persisted session. Corrupt
// stored values degrade to signed-out.
func NewManager(db *store.DB, client Authenticator, b *bus.Bus, logger *zap.Logger) *Manager {
	m := &Manager{db: db, client: client, bus: b, logger: logger}
	m.token = store.Load(db, store.KeyAuthToken, "")
	if m.token != "" {
		user := store.Load(db, store.KeyAuthUser, catalog.User{})
		if user.ID != 0 {
			m.user = &user
		}
	}
	return m
}

// Login authenticates and persists the session.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	user, token, err := m.client.Login(ctx, username, password)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.user = user
	m.token = token
	m.persistLocked()
	m.mu.Unlock()

	m.publish()
	return nil
}

// Logout clears the session from memory and storage.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.user = nil
	m.token = ""
	_ = m.db.Delete(store.KeyAuthToken)
	_ = m.db.Delete(store.KeyAuthRole)
	_ = m.db.Delete(store.KeyAuthUser)
	m.mu.Unlock()

	m.publish()
}

// User returns the signed-in profile, or nil.
func (m *Manager) User() *catalog.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Token returns the bearer token, empty when signed out.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// IsAuthenticated reports whether a session exists.
func (m *Manager) IsAuthenticated() bool {
	return m.Token() != ""
}

// IsAdmin reports whether the signed-in user has the admin role.
func (m *Manager) IsAdmin() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil && m.user.Role == "admin"
}

func (m *Manager) persistLocked() {
	if err := store.Save(m.db, store.KeyAuthToken, m.token); err != nil {
		m.logger.Warn("persist auth token failed", zap.Error(err))
	}
	if err := store.Save(m.db, store.KeyAuthRole, m.user.Role); err != nil {
		m.logger.Warn("persist auth role failed", zap.Error(err))
	}
	if err := store.Save(m.db, store.KeyAuthUser, m.user); err != nil {
		m.logger.Warn("persist auth user failed", zap.Error(err))
	}
}

func (m *Manager) publish() {
	if m.bus != nil {
		m.bus.Publish(bus.Event{Kind: "auth.changed", Timestamp: time.Now()})
	}
}
