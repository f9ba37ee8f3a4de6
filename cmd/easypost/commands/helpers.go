package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/easypost-go/internal/constants"
	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
	"github.com/fivetwenty-io/easypost-go/pkg/epclient"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = constants.NotAvailable

	// Output formats.
	OutputFormatTable = constants.FormatTable
	OutputFormatJSON  = constants.FormatJSON
	OutputFormatYAML  = constants.FormatYAML

	// JSON formatting.
	defaultJSONIndent = constants.JSONIndentSize

	Masked = constants.MaskedSecret
)

// Viper keys. Each maps onto an EASYPOST_* environment variable.
const (
	keyAPIKey   = "api_key"
	keyBaseURL  = "base_url"
	keyBetaURL  = "beta_url"
	keyOutput   = "output"
	keyRetryMax = "retry_max"
	keyCache    = "cache"
	keyNATSURL  = "nats_url"
)

// Common static errors used throughout the commands package.
var (
	ErrNotAuthenticated    = constants.ErrNoAPIKeyConfigured
	ErrInvalidOutputFormat = constants.ErrInvalidOutputFormat
	ErrUnknownConfigKey    = constants.ErrUnknownConfigKey
	ErrInvalidLabelFormat  = constants.ErrInvalidLabelFormat
	ErrAPIKeyRequired      = errors.New("API key is required")
	ErrInvalidRetryMax     = errors.New("retry_max must be a non-negative integer")
	ErrInvalidCacheType    = errors.New("cache must be one of memory, nats or none")
	ErrNATSURLRequired     = errors.New("nats_url is required when cache is nats")
)

// CreateClient builds a Latest client from the flags, environment and config file.
func CreateClient() (easypost.Client, error) {
	config, err := clientConfig()
	if err != nil {
		return nil, err
	}

	client, err := epclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

func clientConfig() (*easypost.Config, error) {
	apiKey := strings.TrimSpace(viper.GetString(keyAPIKey))
	if apiKey == "" {
		return nil, ErrNotAuthenticated
	}

	verbose := viper.GetBool("verbose")

	logger, err := newLogger(verbose)
	if err != nil {
		return nil, err
	}

	cache, err := newCache()
	if err != nil {
		return nil, err
	}

	config := &easypost.Config{
		APIKey:    apiKey,
		BaseURL:   viper.GetString(keyBaseURL),
		RetryMax:  constants.LowRetryMax,
		Debug:     verbose,
		Logger:    logger,
		UserAgent: constants.DefaultUserAgent + " (cli)",
		Cache:     cache,
	}

	if viper.IsSet(keyRetryMax) {
		config.RetryMax = viper.GetInt(keyRetryMax)
	}

	if betaURL := viper.GetString(keyBetaURL); betaURL != "" {
		config.VersionURLs = map[easypost.APIVersion]string{easypost.Beta: betaURL}
	}

	return config, nil
}

// newLogger returns a console logger at debug level for --verbose, otherwise a JSON
// logger that only reports warnings and errors.
func newLogger(verbose bool) (*easypost.ZapLogger, error) {
	var (
		logger *zap.Logger
		err    error
	)

	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		logger, err = config.Build()
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return easypost.NewZapLogger(logger), nil
}

// newCache builds the response cache named by the cache key. Memory is the default;
// nats shares cached rates between invocations through a JetStream KV bucket.
func newCache() (easypost.Cache, error) {
	cacheType, err := parseCacheType(viper.GetString(keyCache))
	if err != nil {
		return nil, err
	}

	config := &easypost.CacheConfig{
		Type:   cacheType,
		Memory: &easypost.MemoryCacheConfig{MaxSize: constants.DefaultCacheSize},
	}

	if cacheType == easypost.CacheTypeNATS {
		natsURL := viper.GetString(keyNATSURL)
		if natsURL == "" {
			return nil, ErrNATSURLRequired
		}

		config.NATS = &easypost.NATSKVConfig{URL: natsURL, TTL: constants.RatesCacheTTL}
	}

	cache, err := easypost.NewCacheFromConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	return cache, nil
}

func parseCacheType(value string) (easypost.CacheType, error) {
	switch cacheType := easypost.CacheType(strings.ToLower(strings.TrimSpace(value))); cacheType {
	case "":
		return easypost.CacheTypeMemory, nil
	case easypost.CacheTypeMemory, easypost.CacheTypeNATS, easypost.CacheTypeNone:
		return cacheType, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidCacheType, value)
	}
}

// parseLabelFormat upper-cases value and checks it against the formats a command accepts.
func parseLabelFormat(value string, allowed ...string) (string, error) {
	format := strings.ToUpper(strings.TrimSpace(value))
	for _, candidate := range allowed {
		if format == candidate {
			return format, nil
		}
	}

	return "", fmt.Errorf("%w: %q (use one of %s)", ErrInvalidLabelFormat, value, strings.Join(allowed, ", "))
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

func outputFormat() string {
	format := strings.ToLower(strings.TrimSpace(viper.GetString(keyOutput)))
	if format == "" {
		return OutputFormatTable
	}

	return format
}

// render writes value as JSON or YAML, or hands off to table for the table format.
func render(w io.Writer, value any, table func(io.Writer) error) error {
	switch format := outputFormat(); format {
	case OutputFormatJSON:
		return StandardJSONRenderer(w, value)
	case OutputFormatYAML:
		return StandardYAMLRenderer(w, value)
	case OutputFormatTable:
		return table(w)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidOutputFormat, format)
	}
}

// StandardJSONRenderer writes value as indented JSON.
func StandardJSONRenderer(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", strings.Repeat(" ", defaultJSONIndent))

	return encoder.Encode(value)
}

// StandardYAMLRenderer writes value as YAML.
func StandardYAMLRenderer(w io.Writer, value any) error {
	encoder := yaml.NewEncoder(w)

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}

	return encoder.Close()
}

func renderTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)

	cells := make([]any, 0, len(header))
	for _, column := range header {
		cells = append(cells, column)
	}

	table.Header(cells...)

	for _, row := range rows {
		_ = table.Append(row)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func renderProperties(w io.Writer, rows [][]string) error {
	return renderTable(w, []string{"Property", "Value"}, rows)
}

func writeLine(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format+"\n", args...)
}

// listFlags are the pagination flags shared by list commands.
type listFlags struct {
	pageSize int
	beforeID string
	afterID  string
	all      bool
}

func addListFlags(cmd *cobra.Command, flags *listFlags) {
	cmd.Flags().IntVar(&flags.pageSize, "page-size", constants.DefaultPageSize, "results per page")
	cmd.Flags().StringVar(&flags.beforeID, "before-id", "", "return items created before this ID")
	cmd.Flags().StringVar(&flags.afterID, "after-id", "", "return items created after this ID")
	cmd.Flags().BoolVar(&flags.all, "all", false, "fetch all pages")
}

func (f *listFlags) params() *easypost.ListParams {
	params := easypost.NewListParams()

	if f.pageSize > 0 {
		params.WithPageSize(min(f.pageSize, constants.MaxPageSize))
	}

	if f.beforeID != "" {
		params.WithBeforeID(f.beforeID)
	}

	if f.afterID != "" {
		params.WithAfterID(f.afterID)
	}

	return params
}

// fetchList returns one page, or every page when --all is set. Hitting the page
// limit under --all reports that more results remain.
func fetchList[T easypost.Identifiable](ctx context.Context, fetch easypost.PageFetcher[T], flags *listFlags) ([]T, bool, error) {
	if flags.all {
		items, err := easypost.FetchAllPages(ctx, fetch, flags.params(), constants.MaxPages)
		if errors.Is(err, easypost.ErrMaxPagesReached) {
			return items, true, nil
		}

		return items, false, err
	}

	page, err := fetch(ctx, flags.params())
	if err != nil {
		return nil, false, err
	}

	return page.Items, page.HasMore, nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return NotAvailable
	}

	return t.Format(time.RFC3339)
}

func orNA(value string) string {
	if value == "" {
		return NotAvailable
	}

	return value
}

func formatDays(days *int) string {
	if days == nil {
		return NotAvailable
	}

	return strconv.Itoa(*days)
}

func maskSecret(secret string) string {
	if len(secret) <= constants.MaskVisibleChars {
		return Masked
	}

	return Masked + secret[len(secret)-constants.MaskVisibleChars:]
}

func optionalString(cmd *cobra.Command, name, value string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}

	return easypost.Ptr(value)
}
