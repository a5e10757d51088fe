package constants

import "errors"

// Configuration errors.
var (
	ErrNoCredentials      = errors.New("no API key and secret configured, use 'freedom config set-credentials' or ATLAS_KEY/ATLAS_SECRET")
	ErrUnknownEnvironment = errors.New("unknown environment, expected test or prod")
	ErrUnknownConfigKey   = errors.New("unknown configuration key")
)

// Argument errors.
var (
	ErrInvalidID        = errors.New("invalid resource id")
	ErrStartEndRequired = errors.New("--start and --end are required")
	ErrEndBeforeStart   = errors.New("--end must be after --start")
	ErrUnknownFormat    = errors.New("unknown output format, expected table, json or yaml")
	ErrUnknownKind      = errors.New("unknown resource kind")
)

// Operation errors.
var (
	ErrDeleteFailed   = errors.New("one or more deletes failed")
	ErrEmptySecret    = errors.New("secret must not be empty")
	ErrCachingMissing = errors.New("caching backend not compiled into this binary")
)
