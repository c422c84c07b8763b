package app

import "errors"

// Application error types
var (
	ErrNoPageSource        = errors.New("no page source provided")
	ErrPageParse           = errors.New("failed to parse page source")
	ErrInvalidSettingsFile = errors.New("settings file is not a valid settings record")
)
