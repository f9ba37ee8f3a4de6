package constants

import "errors"

// Configuration errors.
var (
	ErrNoAPIKeyConfigured = errors.New("no API key configured, use 'easypost login' or set EASYPOST_API_KEY")
	ErrUnknownConfigKey   = errors.New("unknown configuration key")
)

// Command input errors.
var (
	ErrInvalidLabelFormat  = errors.New("unsupported label format")
	ErrInvalidOutputFormat = errors.New("output format must be table, json or yaml")
)
