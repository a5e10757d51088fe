package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Freedom API entry points.
const (
	// TestEntrypoint is the base URL of the test environment.
	TestEntrypoint = "https://test-api.atlasground.com/api/"

	// ProdEntrypoint is the base URL of the production environment.
	ProdEntrypoint = "https://api.atlasground.com/api/"

	// APIPathPrefix is the path prefix every canonical resource href starts with.
	APIPathPrefix = "/api/"
)

// Environment variables read by the env configuration loader.
const (
	// EnvPrefix is the viper env prefix (ATLAS_ENV, ATLAS_KEY, ATLAS_SECRET).
	EnvPrefix = "ATLAS"

	// EnvKeyEnvironment selects test or prod.
	EnvKeyEnvironment = "env"

	// EnvKeyKey is the API key.
	EnvKeyKey = "key"

	// EnvKeySecret is the API secret.
	EnvKeySecret = "secret"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second

	// CacheOperationTimeout bounds L2 cache calls made without a caller context.
	CacheOperationTimeout = 2 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 500 * time.Millisecond

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// HTTP headers.
const (
	// HeaderRequestID carries a per-request correlation id.
	HeaderRequestID = "X-Request-ID"

	// MediaTypeJSON is sent in Accept and Content-Type.
	MediaTypeJSON = "application/json"

	// MediaTypeHAL is the HAL flavour the API answers with.
	MediaTypeHAL = "application/hal+json"

	// DefaultUserAgent is sent when Config.UserAgent is empty.
	DefaultUserAgent = "freedom-go/1.0"
)

// Pagination.
const (
	// DefaultPageSize is used by the CLI when no size flag is given.
	DefaultPageSize = 50

	// MaxDebugBodyLength truncates logged response bodies.
	MaxDebugBodyLength = 2048
)

// Cache sizing.
const (
	// DefaultCacheSize is the default L1 capacity in entries.
	DefaultCacheSize = 1024

	// DefaultCacheTTL is the default L1 and L2 entry lifetime.
	DefaultCacheTTL = 5 * time.Minute

	// DefaultNATSBucket is the JetStream KV bucket used by the NATS cache.
	DefaultNATSBucket = "freedom-cache"
)

// Time formats.
const (
	// QueryTimeFormat is the timestamp layout the search endpoints accept.
	QueryTimeFormat = "2006-01-02T15:04:05Z"
)

// UI and display constants.
const (
	// NotAvailable is printed for empty table cells.
	NotAvailable = "N/A"

	// MaskedSecret replaces secrets in output.
	MaskedSecret = "***"

	// StringTruncationLimit is how many characters of a secret are kept when masking.
	StringTruncationLimit = 4
)

// Format constants.
const (
	// FormatTable renders output with tablewriter.
	FormatTable = "table"

	// FormatJSON represents JSON output format.
	FormatJSON = "json"

	// FormatYAML represents YAML output format.
	FormatYAML = "yaml"
)
