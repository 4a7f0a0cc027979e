// Package store provides Store implementations for the usersettings package:
// process memory, SQLite, PostgreSQL and Redis.
package store

import (
	"context"

	"github.com/CreativeUnicorns/usersettings"
)

// Store mirrors usersettings.Store; every implementation in this package
// satisfies both. Reads of values that were never written return
// usersettings.ErrNotFound, and clearing a user without stored settings
// succeeds.
type Store interface {
	GetDisplaySettings(ctx context.Context, userID string) (usersettings.DisplaySettings, error)
	SetDisplaySettings(ctx context.Context, userID string, settings usersettings.DisplaySettings) error
	GetLanguage(ctx context.Context, userID string) (usersettings.Language, error)
	SetLanguage(ctx context.Context, userID string, language usersettings.Language) error
	ClearSettings(ctx context.Context, userID string) error
	Close() error
}

// Setting keys shared by the keyed backends (SQL rows, Redis key suffixes).
const (
	keyDisplaySettings = "display_settings"
	keyLanguage        = "language"
)
