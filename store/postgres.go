// store/postgres.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/CreativeUnicorns/usersettings"
)

// sqlOpenFunc is a package-level variable that can be overridden for testing.
var sqlOpenFunc = sql.Open

const (
	postgresCreateTableSQL = `
		CREATE TABLE IF NOT EXISTS user_settings (
			user_id TEXT NOT NULL,
			key TEXT NOT NULL,
			value JSONB NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, key)
		);
	`

	postgresUpsertSQL = `
		INSERT INTO user_settings (user_id, key, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, key)
		DO UPDATE SET value = $3, updated_at = $4
	`

	postgresSelectSQL = `
		SELECT value
		FROM user_settings
		WHERE user_id = $1 AND key = $2
	`

	postgresDeleteSQL = `
		DELETE FROM user_settings
		WHERE user_id = $1
	`
)

// PostgresStore implements the Store interface using PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore initializes a new PostgresStore instance.
// It connects to the PostgreSQL database using the provided connection string and runs migrations.
func NewPostgresStore(connString string) (*PostgresStore, error) {
	db, err := sqlOpenFunc("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: failed to run migrations: %w", err)
	}

	return store, nil
}

// migrate runs the necessary database migrations.
func (s *PostgresStore) migrate() error {
	if _, err := s.db.Exec(postgresCreateTableSQL); err != nil {
		return fmt.Errorf("postgres: failed to execute create table statement: %w", err)
	}
	return nil
}

// GetDisplaySettings retrieves the display settings stored for a user.
// It returns usersettings.ErrNotFound if the user never set them.
func (s *PostgresStore) GetDisplaySettings(ctx context.Context, userID string) (usersettings.DisplaySettings, error) {
	var settings usersettings.DisplaySettings
	if err := s.getValue(ctx, userID, keyDisplaySettings, &settings); err != nil {
		return usersettings.DisplaySettings{}, err
	}
	return settings, nil
}

// SetDisplaySettings stores the display settings for a user.
func (s *PostgresStore) SetDisplaySettings(ctx context.Context, userID string, settings usersettings.DisplaySettings) error {
	return s.setValue(ctx, userID, keyDisplaySettings, settings)
}

// GetLanguage retrieves the language stored for a user.
// It returns usersettings.ErrNotFound if the user never set one.
func (s *PostgresStore) GetLanguage(ctx context.Context, userID string) (usersettings.Language, error) {
	var language usersettings.Language
	if err := s.getValue(ctx, userID, keyLanguage, &language); err != nil {
		return "", err
	}
	return language, nil
}

// SetLanguage stores the language for a user.
func (s *PostgresStore) SetLanguage(ctx context.Context, userID string, language usersettings.Language) error {
	return s.setValue(ctx, userID, keyLanguage, language)
}

// ClearSettings removes all settings rows for a user. Clearing a user with no
// rows is not an error.
func (s *PostgresStore) ClearSettings(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx, postgresDeleteSQL, userID); err != nil {
		return fmt.Errorf("postgres: failed to clear settings for user '%s': %w", userID, err)
	}
	return nil
}

// Close closes the PostgreSQL database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// getValue reads one settings row and unmarshals its JSONB value into out.
func (s *PostgresStore) getValue(ctx context.Context, userID, key string, out any) error {
	var valueJSON []byte

	err := s.db.QueryRowContext(ctx, postgresSelectSQL, userID, key).Scan(&valueJSON)
	if err == sql.ErrNoRows {
		return usersettings.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("postgres: failed to get %s for user '%s': %w", key, userID, err)
	}

	if err := json.Unmarshal(valueJSON, out); err != nil {
		return fmt.Errorf("postgres: failed to unmarshal %s for user '%s': %w", key, userID, err)
	}

	return nil
}

// setValue marshals value to JSON and upserts its settings row.
func (s *PostgresStore) setValue(ctx context.Context, userID, key string, value any) error {
	valueJSON, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("postgres: failed to marshal %s for user '%s': %w", key, userID, err)
	}

	_, err = s.db.ExecContext(ctx, postgresUpsertSQL,
		userID,
		key,
		valueJSON,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to set %s for user '%s': %w", key, userID, err)
	}

	return nil
}
