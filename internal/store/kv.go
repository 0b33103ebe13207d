package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// Put writes a raw JSON value under the given key, replacing any previous value.
func (db *DB) Put(key string, value []byte) error {
	now := time.Now().UnixMilli()
	_, err := db.Exec(`
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		key, string(value), now)
	return err
}

// GetRaw returns the raw JSON value under key, or nil if the key is absent.
func (db *DB) GetRaw(key string) ([]byte, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

// Delete removes the value under key. Deleting an absent key is a no-op.
func (db *DB) Delete(key string) error {
	_, err := db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

// Load reads the JSON document under key into a value of type T. An absent
// key, an unreadable row, or a document that does not decode as T all
// degrade to the supplied default; callers never see an error. Out-of-band
// tampering therefore resets the affected collection rather than crashing.
func Load[T any](db *DB, key string, def T) T {
	raw, err := db.GetRaw(key)
	if err != nil || len(raw) == 0 {
		return def
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return def
	}
	return v
}

// Save marshals v as JSON and writes it under key.
func Save[T any](db *DB, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return db.Put(key, raw)
}
