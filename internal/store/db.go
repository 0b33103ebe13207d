package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Storage keys. The value under each key is a single JSON document that is
// read-modify-written as a whole.
const (
	// KeyChatMessages holds a map of product-id-string -> []chat.Message.
	KeyChatMessages = "chat_messages"
	// KeyFavorites holds an array of favorite product ids.
	KeyFavorites = "shop_favorites"
	// KeyAuthToken holds the bearer token string.
	KeyAuthToken = "auth_token"
	// KeyAuthRole holds the role string ("admin" or "user").
	KeyAuthRole = "auth_role"
	// KeyAuthUser holds the signed-in user profile object.
	KeyAuthUser = "auth_user"
)

// DB wraps a SQLite database connection for the app-owned fynd.db.
type DB struct {
	*sql.DB
}

// Open creates a new SQLite connection with WAL mode and recommended pragmas.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Verify connection.
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return &DB{db}, nil
}
