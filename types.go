package usersettings

// BaseTheme selects the overall colour scheme of the application.
type BaseTheme string

// Base themes understood by the application.
const (
	// BaseThemeSystem follows the platform's light/dark preference.
	BaseThemeSystem BaseTheme = "system"
	BaseThemeLight  BaseTheme = "light"
	BaseThemeDark   BaseTheme = "dark"
)

// AccentTheme selects the highlight palette layered on top of the base theme.
type AccentTheme string

// Accent themes understood by the application.
const (
	AccentThemeDefault  AccentTheme = "default"
	AccentThemeNewsRed  AccentTheme = "newsRed"
	AccentThemeDeepBlue AccentTheme = "deepBlue"
)

// DisplaySettings is the pair of theme choices that make up a user's visual
// preference. It is a plain comparable value: two DisplaySettings are equal
// exactly when both fields are equal. JSON tags are included for
// serialization, typically used by store implementations and the HTTP API.
type DisplaySettings struct {
	BaseTheme   BaseTheme   `json:"base_theme"`
	AccentTheme AccentTheme `json:"accent_theme"`
}

// DefaultDisplaySettings returns the value a Cache starts with before any
// stored settings are known.
func DefaultDisplaySettings() DisplaySettings {
	return DisplaySettings{BaseTheme: BaseThemeSystem, AccentTheme: AccentThemeDefault}
}

// Language is an opaque application language code (for example "en" or "es").
// This package assigns no meaning to its contents and guarantees no default:
// a user who has never chosen a language has no Language at all, which the
// Cache models as an unset value rather than as an empty string.
type Language string

// Config holds the internal configuration for a Cache instance.
// It is populated by applying functional Options (e.g. WithLogger)
// when a new Cache is created with New().
// This struct is not intended to be instantiated or modified directly by users of the package.
type Config struct {
	// logger is the logging interface used by the Cache.
	logger Logger
}

// Option defines the signature for a functional option that configures a Cache instance.
// Functions of this type are passed to New() to customize the Cache's behavior.
// Each Option function takes a pointer to a Config struct and modifies it.
type Option func(*Config)

// WithLogger is a functional option that sets the Logger implementation for the Cache.
// The Cache uses the provided Logger to report swallowed background-load failures
// and lifecycle events. If not set, a default logger writing JSON to os.Stderr is used.
func WithLogger(l Logger) Option {
	return func(c *Config) {
		c.logger = l
	}
}
