package config

import (
	"errors"
	"strings"
)

// ErrMissingSetting is matched by every MissingSettingError.
var ErrMissingSetting = errors.New("required setting is not configured")

// MissingSettingError is a deployment fault: a setting the current call needs is absent.
type MissingSettingError struct {
	Names []string
}

func (e *MissingSettingError) Error() string {
	return strings.Join(e.Names, " or ") + " not set in environment"
}

func (e *MissingSettingError) Is(target error) bool {
	return target == ErrMissingSetting
}
