// cache.go
package usersettings

import (
	"context"
)

// Cache is the settings-access facade for a single user. It wraps a Store and
// keeps the user's display settings and language as cached observable values:
// reads that hit the store publish fresh values, writes publish only after the
// store accepted them, and subscribers registered through the Watch methods
// stay consistent with the persistence layer.
//
// The display settings value is seeded with DefaultDisplaySettings at
// construction and is therefore always readable. The language value starts
// unset; a user without a stored language has no language at all.
type Cache struct {
	store  Store
	userID string
	logger Logger

	display  *Value[DisplaySettings]
	language *Value[Language]

	loaded chan struct{}
}

// New creates a Cache for userID on top of store. Construction never fails
// and does not block: a best-effort load of both values starts in the
// background and publishes whatever it manages to fetch. Use Loaded to await
// its completion where the distinction between seeded and stored values
// matters.
func New(store Store, userID string, opts ...Option) *Cache {
	cfg := &Config{
		logger: NewDefaultLogger(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	c := &Cache{
		store:    store,
		userID:   userID,
		logger:   cfg.logger,
		display:  NewValueFrom(DefaultDisplaySettings()),
		language: NewValue[Language](),
		loaded:   make(chan struct{}),
	}

	go func() {
		c.load(context.Background())
		close(c.loaded)
	}()

	return c
}

// Loaded returns a channel that is closed once the initial background load
// has finished, whether or not either fetch succeeded.
func (c *Cache) Loaded() <-chan struct{} {
	return c.loaded
}

// load fetches both values once and publishes whatever succeeds. Each fetch
// fails independently, and failures are swallowed: this runs outside any
// caller-visible operation, so the previously cached state simply remains.
func (c *Cache) load(ctx context.Context) {
	settings, err := c.store.GetDisplaySettings(ctx, c.userID)
	if err != nil {
		c.logger.Warn("display settings load failed", "user_id", c.userID, "error", err)
	} else {
		c.display.Publish(settings)
	}

	language, err := c.store.GetLanguage(ctx, c.userID)
	if err != nil {
		c.logger.Warn("language load failed", "user_id", c.userID, "error", err)
	} else {
		c.language.Publish(language)
	}
}

// GetDisplaySettings fetches the user's display settings from the store,
// publishes the result and returns it. A store failure propagates unchanged
// and leaves the cached value untouched.
func (c *Cache) GetDisplaySettings(ctx context.Context) (DisplaySettings, error) {
	settings, err := c.store.GetDisplaySettings(ctx, c.userID)
	if err != nil {
		return DisplaySettings{}, err
	}

	c.display.Publish(settings)
	return settings, nil
}

// SetDisplaySettings validates settings, writes them through the store and
// publishes them only once the store accepted the write.
func (c *Cache) SetDisplaySettings(ctx context.Context, settings DisplaySettings) error {
	if err := validateDisplaySettings(settings); err != nil {
		return err
	}

	if err := c.store.SetDisplaySettings(ctx, c.userID, settings); err != nil {
		return err
	}

	c.display.Publish(settings)
	return nil
}

// GetLanguage fetches the user's language from the store, publishes the
// result and returns it. A store failure propagates unchanged and leaves the
// cached value untouched.
func (c *Cache) GetLanguage(ctx context.Context) (Language, error) {
	language, err := c.store.GetLanguage(ctx, c.userID)
	if err != nil {
		return "", err
	}

	c.language.Publish(language)
	return language, nil
}

// SetLanguage validates language, writes it through the store and publishes
// it only once the store accepted the write.
func (c *Cache) SetLanguage(ctx context.Context, language Language) error {
	if err := validateLanguage(language); err != nil {
		return err
	}

	if err := c.store.SetLanguage(ctx, c.userID, language); err != nil {
		return err
	}

	c.language.Publish(language)
	return nil
}

// ClearSettings removes the user's settings from the store. On success both
// values are re-fetched before returning, so the caches reflect whatever the
// store reports for a cleared user, which need not equal
// DefaultDisplaySettings. On failure the error propagates and no reload is
// attempted.
func (c *Cache) ClearSettings(ctx context.Context) error {
	if err := c.store.ClearSettings(ctx, c.userID); err != nil {
		return err
	}

	c.load(ctx)
	return nil
}

// WatchDisplaySettings subscribes fn to display settings updates. The current
// value is delivered synchronously before WatchDisplaySettings returns.
func (c *Cache) WatchDisplaySettings(fn func(DisplaySettings)) *Subscription {
	return c.display.Subscribe(fn)
}

// WatchLanguage subscribes fn to language updates. If a language is already
// known it is delivered synchronously first; otherwise fn fires on the first
// successful load or set.
func (c *Cache) WatchLanguage(fn func(Language)) *Subscription {
	return c.language.Subscribe(fn)
}

// CurrentDisplaySettings returns the last published display settings. The
// value is seeded at construction, so it is always defined.
func (c *Cache) CurrentDisplaySettings() DisplaySettings {
	settings, _ := c.display.Get()
	return settings
}

// CurrentLanguage returns the last published language. It fails with
// ErrNoValue until a language has been loaded or set.
func (c *Cache) CurrentLanguage() (Language, error) {
	return c.language.Get()
}

// Close closes both cached values and detaches their subscribers. It is
// idempotent and never errors. In-flight store calls are not cancelled; once
// they complete their publishes are no-ops. The injected Store stays open,
// since the caller owns it.
func (c *Cache) Close() error {
	c.display.Close()
	c.language.Close()
	return nil
}
