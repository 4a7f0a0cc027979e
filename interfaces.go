// interfaces.go defines the store and logging contracts consumed by the Cache.
package usersettings

import (
	"context"
)

// Store defines the persistence operations the Cache depends on. Every call is
// scoped to an opaque user identifier and may fail; implementations own their
// storage format entirely. Get methods report an absent value with an error
// that matches ErrNotFound under errors.Is.
//
// Implementations for common backends live in the store subpackage. The Cache
// never calls Close on an injected Store; the owner of the Store does.
type Store interface {
	GetDisplaySettings(ctx context.Context, userID string) (DisplaySettings, error)
	SetDisplaySettings(ctx context.Context, userID string, settings DisplaySettings) error
	GetLanguage(ctx context.Context, userID string) (Language, error)
	SetLanguage(ctx context.Context, userID string, language Language) error
	ClearSettings(ctx context.Context, userID string) error
	Close() error
}

// Logger defines the methods required for logging within the settings system.
// The args should be alternating key-value pairs, similar to slog.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
