// store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/CreativeUnicorns/usersettings"
)

const (
	sqliteCreateTableSQL = `
		CREATE TABLE IF NOT EXISTS user_settings (
			user_id TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, key)
		);
	`

	sqliteUpsertSQL = `
		INSERT INTO user_settings (user_id, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, key)
		DO UPDATE SET value = ?, updated_at = ?
	`

	sqliteSelectSQL = `
		SELECT value
		FROM user_settings
		WHERE user_id = ? AND key = ?
	`

	sqliteDeleteSQL = `
		DELETE FROM user_settings
		WHERE user_id = ?
	`
)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore initializes a new SQLiteStore instance.
// It connects to the SQLite database at the specified path and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to run migrations: %w", err)
	}

	return store, nil
}

// migrate runs the necessary database migrations.
func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(sqliteCreateTableSQL)
	return err
}

// GetDisplaySettings retrieves the display settings stored for a user.
// It returns usersettings.ErrNotFound if the user never set them.
func (s *SQLiteStore) GetDisplaySettings(ctx context.Context, userID string) (usersettings.DisplaySettings, error) {
	var settings usersettings.DisplaySettings
	if err := s.getValue(ctx, userID, keyDisplaySettings, &settings); err != nil {
		return usersettings.DisplaySettings{}, err
	}
	return settings, nil
}

// SetDisplaySettings stores the display settings for a user.
func (s *SQLiteStore) SetDisplaySettings(ctx context.Context, userID string, settings usersettings.DisplaySettings) error {
	return s.setValue(ctx, userID, keyDisplaySettings, settings)
}

// GetLanguage retrieves the language stored for a user.
// It returns usersettings.ErrNotFound if the user never set one.
func (s *SQLiteStore) GetLanguage(ctx context.Context, userID string) (usersettings.Language, error) {
	var language usersettings.Language
	if err := s.getValue(ctx, userID, keyLanguage, &language); err != nil {
		return "", err
	}
	return language, nil
}

// SetLanguage stores the language for a user.
func (s *SQLiteStore) SetLanguage(ctx context.Context, userID string, language usersettings.Language) error {
	return s.setValue(ctx, userID, keyLanguage, language)
}

// ClearSettings removes all settings rows for a user. Clearing a user with no
// rows is not an error.
func (s *SQLiteStore) ClearSettings(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx, sqliteDeleteSQL, userID); err != nil {
		return fmt.Errorf("sqlite: failed to clear settings for user '%s': %w", userID, err)
	}
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// getValue reads one settings row and unmarshals its JSON value into out.
func (s *SQLiteStore) getValue(ctx context.Context, userID, key string, out any) error {
	var valueJSON string

	err := s.db.QueryRowContext(ctx, sqliteSelectSQL, userID, key).Scan(&valueJSON)
	if err == sql.ErrNoRows {
		return usersettings.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("sqlite: failed to get %s for user '%s': %w", key, userID, err)
	}

	if err := json.Unmarshal([]byte(valueJSON), out); err != nil {
		return fmt.Errorf("sqlite: failed to unmarshal %s for user '%s': %w", key, userID, err)
	}

	return nil
}

// setValue marshals value to JSON and upserts its settings row.
func (s *SQLiteStore) setValue(ctx context.Context, userID, key string, value any) error {
	valueJSON, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("sqlite: failed to marshal %s for user '%s': %w", key, userID, err)
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, sqliteUpsertSQL,
		userID,
		key,
		string(valueJSON),
		now,
		string(valueJSON),
		now,
	)
	if err != nil {
		return fmt.Errorf("sqlite: failed to set %s for user '%s': %w", key, userID, err)
	}

	return nil
}
