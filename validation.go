// validation.go
package usersettings

import (
	"fmt"
)

var validBaseThemes = map[BaseTheme]bool{
	BaseThemeSystem: true,
	BaseThemeLight:  true,
	BaseThemeDark:   true,
}

var validAccentThemes = map[AccentTheme]bool{
	AccentThemeDefault:  true,
	AccentThemeNewsRed:  true,
	AccentThemeDeepBlue: true,
}

func validateDisplaySettings(settings DisplaySettings) error {
	if !validBaseThemes[settings.BaseTheme] {
		return fmt.Errorf("%w: unknown base theme %q", ErrInvalidValue, settings.BaseTheme)
	}
	if !validAccentThemes[settings.AccentTheme] {
		return fmt.Errorf("%w: unknown accent theme %q", ErrInvalidValue, settings.AccentTheme)
	}
	return nil
}

func validateLanguage(language Language) error {
	if language == "" {
		return fmt.Errorf("%w: language must not be empty", ErrInvalidValue)
	}
	return nil
}
