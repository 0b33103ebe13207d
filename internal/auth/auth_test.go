package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/fyndhq/fynd/internal/catalog"
	"github.com/fyndhq/fynd/internal/store"
)

type mockAuthenticator struct {
	user  *catalog.User
	token string
	err   error
}

func (m *mockAuthenticator) Login(_ context.Context, _, _ string) (*catalog.User, string, error) {
	if m.err != nil {
		return nil, "", m.err
	}
	return m.user, m.token, nil
}

func testDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestLoginPersistsSession(t *testing.T) {
	db := testDB(t)
	mock := &mockAuthenticator{
		user:  &catalog.User{ID: 1, Username: "emilys", Role: "admin"},
		token: "tok-123",
	}

	m := NewManager(db, mock, nil, zap.NewNop())
	if m.IsAuthenticated() {
		t.Fatal("fresh manager should be signed out")
	}
	if err := m.Login(context.Background(), "emilys", "pass"); err != nil {
		t.Fatal(err)
	}
	if !m.IsAuthenticated() || !m.IsAdmin() {
		t.Error("expected authenticated admin session")
	}

	// A new manager restores the session from storage.
	restored := NewManager(db, mock, nil, zap.NewNop())
	if restored.Token() != "tok-123" {
		t.Errorf("restored token = %q, want tok-123", restored.Token())
	}
	if u := restored.User(); u == nil || u.Username != "emilys" {
		t.Errorf("restored user = %+v", u)
	}
}

func TestLoginFailureLeavesSignedOut(t *testing.T) {
	m := NewManager(testDB(t), &mockAuthenticator{err: catalog.ErrInvalidCredentials}, nil, zap.NewNop())

	err := m.Login(context.Background(), "emilys", "bad")
	if !errors.Is(err, catalog.ErrInvalidCredentials) {
		t.Errorf("error = %v, want ErrInvalidCredentials", err)
	}
	if m.IsAuthenticated() {
		t.Error("failed login must not create a session")
	}
}

func TestLogoutClearsStorage(t *testing.T) {
	db := testDB(t)
	mock := &mockAuthenticator{user: &catalog.User{ID: 1, Role: "user"}, token: "tok"}

	m := NewManager(db, mock, nil, zap.NewNop())
	if err := m.Login(context.Background(), "u", "p"); err != nil {
		t.Fatal(err)
	}
	m.Logout()

	if m.IsAuthenticated() {
		t.Error("still authenticated after logout")
	}
	restored := NewManager(db, mock, nil, zap.NewNop())
	if restored.IsAuthenticated() {
		t.Error("logout did not clear storage")
	}
}

func TestCorruptSessionDegradesToSignedOut(t *testing.T) {
	db := testDB(t)
	if err := db.Put(store.KeyAuthToken, []byte(`{broken`)); err != nil {
		t.Fatal(err)
	}

	m := NewManager(db, &mockAuthenticator{}, nil, zap.NewNop())
	if m.IsAuthenticated() {
		t.Error("corrupt token should degrade to signed out")
	}
}
