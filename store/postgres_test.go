package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CreativeUnicorns/usersettings"
)

// TestNewPostgresStore tests the NewPostgresStore constructor.
func TestNewPostgresStore(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectPing()
		mock.ExpectExec(regexp.QuoteMeta(postgresCreateTableSQL)).WillReturnResult(sqlmock.NewResult(0, 0))

		originalSqlOpen := sqlOpenFunc
		sqlOpenFunc = func(driverName, dataSourceName string) (*sql.DB, error) {
			return db, nil
		}
		defer func() { sqlOpenFunc = originalSqlOpen }()

		store, err := NewPostgresStore("dummy_conn_string")
		assert.NoError(t, err)
		assert.NotNil(t, store)
		assert.NoError(t, mock.ExpectationsWereMet(), "sqlmock expectations not met")
	})

	t.Run("sql open error", func(t *testing.T) {
		expectedErr := errors.New("failed to open database")
		originalSqlOpen := sqlOpenFunc
		sqlOpenFunc = func(driverName, dataSourceName string) (*sql.DB, error) {
			return nil, expectedErr
		}
		defer func() { sqlOpenFunc = originalSqlOpen }()

		_, err := NewPostgresStore("dummy_conn_string")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, expectedErr), "Expected sql open error")
	})

	t.Run("ping error", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectPing().WillReturnError(errors.New("ping failed"))

		originalSqlOpen := sqlOpenFunc
		sqlOpenFunc = func(driverName, dataSourceName string) (*sql.DB, error) {
			return db, nil
		}
		defer func() { sqlOpenFunc = originalSqlOpen }()

		_, err = NewPostgresStore("dummy_conn_string")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "postgres: failed to ping database")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("migrate error", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectPing()
		mock.ExpectExec(regexp.QuoteMeta(postgresCreateTableSQL)).WillReturnError(errors.New("migrate failed"))

		originalSqlOpen := sqlOpenFunc
		sqlOpenFunc = func(driverName, dataSourceName string) (*sql.DB, error) {
			return db, nil
		}
		defer func() { sqlOpenFunc = originalSqlOpen }()

		_, err = NewPostgresStore("dummy_conn_string")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to run migrations")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func newTestPostgresStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return &PostgresStore{db: db}, mock
}

func TestPostgresStore_SetDisplaySettings(t *testing.T) {
	store, mock := newTestPostgresStore(t)
	defer store.Close()

	ctx := context.Background()
	settings := usersettings.DisplaySettings{
		BaseTheme:   usersettings.BaseThemeDark,
		AccentTheme: usersettings.AccentThemeNewsRed,
	}
	settingsJSON, err := json.Marshal(settings)
	require.NoError(t, err)

	t.Run("successful set", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(postgresUpsertSQL)).
			WithArgs("user1", keyDisplaySettings, settingsJSON, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := store.SetDisplaySettings(ctx, "user1", settings)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db exec error", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(postgresUpsertSQL)).
			WithArgs("user1", keyDisplaySettings, settingsJSON, sqlmock.AnyArg()).
			WillReturnError(errors.New("db exec error"))

		err := store.SetDisplaySettings(ctx, "user1", settings)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "postgres: failed to set display_settings for user 'user1'")
		assert.Contains(t, err.Error(), "db exec error")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresStore_GetDisplaySettings(t *testing.T) {
	store, mock := newTestPostgresStore(t)
	defer store.Close()

	ctx := context.Background()
	want := usersettings.DisplaySettings{
		BaseTheme:   usersettings.BaseThemeDark,
		AccentTheme: usersettings.AccentThemeNewsRed,
	}
	wantJSON, err := json.Marshal(want)
	require.NoError(t, err)

	t.Run("successful get", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"value"}).AddRow(wantJSON)
		mock.ExpectQuery(regexp.QuoteMeta(postgresSelectSQL)).
			WithArgs("user1", keyDisplaySettings).
			WillReturnRows(rows)

		got, err := store.GetDisplaySettings(ctx, "user1")
		assert.NoError(t, err)
		assert.Equal(t, want, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get not found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(postgresSelectSQL)).
			WithArgs("user1", keyDisplaySettings).
			WillReturnError(sql.ErrNoRows)

		_, err := store.GetDisplaySettings(ctx, "user1")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, usersettings.ErrNotFound), "Expected ErrNotFound, got %v", err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db query error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(postgresSelectSQL)).
			WithArgs("user1", keyDisplaySettings).
			WillReturnError(errors.New("db query error"))

		_, err := store.GetDisplaySettings(ctx, "user1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "postgres: failed to get display_settings for user 'user1'")
		assert.Contains(t, err.Error(), "db query error")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("json unmarshal error", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"value"}).AddRow([]byte("this is not json"))
		mock.ExpectQuery(regexp.QuoteMeta(postgresSelectSQL)).
			WithArgs("user1", keyDisplaySettings).
			WillReturnRows(rows)

		_, err := store.GetDisplaySettings(ctx, "user1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal display_settings")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresStore_Language(t *testing.T) {
	store, mock := newTestPostgresStore(t)
	defer store.Close()

	ctx := context.Background()
	languageJSON, err := json.Marshal(usersettings.Language("es"))
	require.NoError(t, err)

	t.Run("successful set", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(postgresUpsertSQL)).
			WithArgs("user1", keyLanguage, languageJSON, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := store.SetLanguage(ctx, "user1", "es")
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("successful get", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"value"}).AddRow(languageJSON)
		mock.ExpectQuery(regexp.QuoteMeta(postgresSelectSQL)).
			WithArgs("user1", keyLanguage).
			WillReturnRows(rows)

		got, err := store.GetLanguage(ctx, "user1")
		assert.NoError(t, err)
		assert.Equal(t, usersettings.Language("es"), got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get not found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(postgresSelectSQL)).
			WithArgs("user1", keyLanguage).
			WillReturnError(sql.ErrNoRows)

		_, err := store.GetLanguage(ctx, "user1")
		assert.True(t, errors.Is(err, usersettings.ErrNotFound), "Expected ErrNotFound, got %v", err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresStore_ClearSettings(t *testing.T) {
	store, mock := newTestPostgresStore(t)
	defer store.Close()

	ctx := context.Background()

	t.Run("successful clear", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(postgresDeleteSQL)).
			WithArgs("user1").
			WillReturnResult(sqlmock.NewResult(0, 2))

		err := store.ClearSettings(ctx, "user1")
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("clear_with_no_rows_succeeds", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(postgresDeleteSQL)).
			WithArgs("nonexistent").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.ClearSettings(ctx, "nonexistent")
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db exec error", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(postgresDeleteSQL)).
			WithArgs("user1").
			WillReturnError(errors.New("db delete error"))

		err := store.ClearSettings(ctx, "user1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "postgres: failed to clear settings for user 'user1'")
		assert.Contains(t, err.Error(), "db delete error")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
