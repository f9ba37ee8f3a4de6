package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// API endpoints.
const (
	// DefaultBaseURL is the production API host.
	DefaultBaseURL = "https://api.easypost.com"

	// PathPrefixV2 is the path prefix for the V2 and Latest API versions.
	PathPrefixV2 = "/v2"

	// PathPrefixBeta is the path prefix for the Beta API version.
	PathPrefixBeta = "/beta"

	// DefaultUserAgent is sent when the caller does not configure one.
	DefaultUserAgent = "easypost-go/1.0"
)

// HTTP and network timeouts.
const (
	// DefaultConnectTimeout bounds dialing the API host.
	DefaultConnectTimeout = 30 * time.Second

	// DefaultRequestTimeout bounds a whole request including reading the body.
	DefaultRequestTimeout = 60 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits. Retries only ever apply to GET requests.
const (
	// DefaultRetryMax is zero: retries are opt-in.
	DefaultRetryMax = 0

	// LowRetryMax is used by the CLI for read commands.
	LowRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Concurrency and batching limits.
const (
	// DefaultConcurrencyLimit limits concurrent operations in a BatchExecutor.
	DefaultConcurrencyLimit = 5

	// DefaultBatchTimeout bounds a single operation run by a BatchExecutor.
	DefaultBatchTimeout = 30 * time.Second
)

// Polling for asynchronous resources.
const (
	// DefaultPollInterval is the wait between status checks.
	DefaultPollInterval = 2 * time.Second

	// DefaultPollTimeout bounds waiting for a report or batch to settle.
	DefaultPollTimeout = 5 * time.Minute

	// ReportStatusAvailable is the status of a report ready for download.
	ReportStatusAvailable = "available"

	// ReportStatusFailed is the status of a report that could not be generated.
	ReportStatusFailed = "failed"

	// BatchStatePurchased is the state of a batch whose postage was bought.
	BatchStatePurchased = "purchased"

	// BatchStateCreationFailed is the state of a batch whose shipments could not be created.
	BatchStateCreationFailed = "creation_failed"

	// BatchStatePurchaseFailed is the state of a batch whose postage could not be bought.
	BatchStatePurchaseFailed = "purchase_failed"
)

// Pagination limits.
const (
	// DefaultPageSize is the default number of items per page.
	DefaultPageSize = 20

	// MaxPageSize is the largest page the API serves.
	MaxPageSize = 100

	// MaxPages is used to prevent infinite loops in pagination.
	MaxPages = 50

	// MaxEmptyPages is how many consecutive empty pages reporting has_more
	// are tolerated before pagination gives up.
	MaxEmptyPages = 3
)

// Cache limits.
const (
	// DefaultCacheSize is the default cache size limit.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is the default cache time-to-live.
	DefaultCacheTTL = 5 * time.Minute

	// RatesCacheTTL is the TTL for retrieved rates, which never change.
	RatesCacheTTL = 30 * time.Minute

	// MaxCacheValueSize is the maximum size for cached values (1MB).
	MaxCacheValueSize = 1024 * 1024

	// DefaultNATSBucket is the KV bucket used when none is configured.
	DefaultNATSBucket = "easypost-cache"
)

// Rate limiting.
const (
	// DefaultRateLimitBurst is used when a rate limit is configured without a burst.
	DefaultRateLimitBurst = 1
)

// Display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "****"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2

	// MaskVisibleChars is how many trailing characters of a secret stay visible.
	MaskVisibleChars = 4
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)

// Label file formats.
const (
	// LabelFormatPNG is the PNG label format. Batch labels do not support it.
	LabelFormatPNG = "PNG"

	// LabelFormatPDF is the PDF label format.
	LabelFormatPDF = "PDF"

	// LabelFormatZPL is the ZPL label format.
	LabelFormatZPL = "ZPL"

	// LabelFormatEPL2 is the EPL2 label format.
	LabelFormatEPL2 = "EPL2"
)

// Command argument counts.
const (
	// MinimumArgumentCount is the minimum number of arguments for key/value commands.
	MinimumArgumentCount = 2
)
