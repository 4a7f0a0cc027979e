// errors.go
package usersettings

import "errors"

var (
	ErrInvalidValue     = errors.New("invalid settings value")
	ErrNoValue          = errors.New("no value published yet")
	ErrNotFound         = errors.New("settings not found")
	ErrStoreUnavailable = errors.New("settings store unavailable")
)
