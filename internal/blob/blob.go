// Package blob provides durable storage for the editor's named JSON
// documents: the persisted entity collections, settings, and exported
// game-world documents.
//
// Documents are opaque byte blobs at this layer. Decoding, validation and
// fail-soft fallback on corrupt content are the caller's responsibility:
// a Get that returns unparseable JSON must be treated as "no data
// available", never a crash.
//
// Every write stamps a fresh revision id (uuidv7), giving a cheap audit
// trail of which write produced the current row.
package blob

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is stamped into PRAGMA user_version on open. Bump it when
// the schema changes and add the corresponding migration to applySchema.
const schemaVersion = 1

// Well-known document keys. The game-world document key is derived per
// export target via GameWorldKey.
const (
	KeyImages     = "images"
	KeyParameters = "parameters"
	KeyCards      = "cards"
	KeyEvents     = "events"
	KeySettings   = "settings"
)

// GameWorldKey returns the storage key for an export target's game-world
// document.
func GameWorldKey(targetID string) string {
	return "game_world:" + targetID
}

// Store is a SQLite-backed key-value store for JSON documents.
// Uses WAL mode for concurrent read access during writes.
type Store struct {
	db *sql.DB
}

// Open creates or opens a project database at the given path.
// Applies required pragmas and the schema automatically; safe to call on an
// existing database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY under concurrent use.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// applySchema creates tables if they don't exist and stamps the schema
// version. This function is idempotent. A database written by a newer schema
// is refused rather than silently reinterpreted.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version > schemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, schemaVersion)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Put upserts a document under the given key and returns the revision id
// assigned to the write.
func (s *Store) Put(ctx context.Context, key string, data []byte) (revision string, err error) {
	revision = uuid.Must(uuid.NewV7()).String()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO blobs (key, data, revision, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			data = excluded.data,
			revision = excluded.revision,
			updated_at = excluded.updated_at
	`,
		key,
		string(data),
		revision,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("put blob %q: %w", key, err)
	}
	return revision, nil
}

// Get returns the document stored under key. Absence is not an error: found
// is false when no document exists.
func (s *Store) Get(ctx context.Context, key string) (data []byte, found bool, err error) {
	var text string
	err = s.db.QueryRowContext(ctx,
		`SELECT data FROM blobs WHERE key = ?`, key,
	).Scan(&text)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get blob %q: %w", key, err)
	}
	return []byte(text), true, nil
}

// Revision returns the revision id of the document under key, or found=false
// when no document exists.
func (s *Store) Revision(ctx context.Context, key string) (revision string, found bool, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT revision FROM blobs WHERE key = ?`, key,
	).Scan(&revision)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("revision of blob %q: %w", key, err)
	}
	return revision, true, nil
}

// Delete removes the document under key. Deleting an absent key is a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM blobs WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete blob %q: %w", key, err)
	}
	return nil
}

// Keys returns all stored document keys in lexical order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM blobs ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list blob keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan blob key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blob keys: %w", err)
	}
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}
