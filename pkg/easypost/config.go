package easypost

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/kelseyhightower/envconfig"
	"go.opentelemetry.io/otel/trace"

	"github.com/fivetwenty-io/easypost-go/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired = errors.New("config is required")
	ErrInvalidConfig  = errors.New("invalid config")
)

// EnvPrefix is the prefix of the environment variables read by LoadConfigFromEnv.
const EnvPrefix = "EASYPOST"

// RateLimit configures client-side request throttling.
type RateLimit struct {
	// RequestsPerSecond is the sustained request rate.
	RequestsPerSecond float64 `validate:"gt=0"`
	// Burst is the number of requests allowed at once. Defaults to 1.
	Burst int `validate:"gte=0"`
}

// Config represents client configuration for building a client with epclient.
type Config struct {
	// APIKey: the test or production API key. Sent as the basic-auth username.
	APIKey string `validate:"required"`

	// BaseURL: API host (e.g., "https://api.easypost.com"). Version path prefixes
	// are appended to it. Defaults to the production host.
	BaseURL string `validate:"omitempty,url"`
	// VersionURLs: full base URLs for individual versions, replacing BaseURL plus
	// prefix. Useful when the beta surface is served from another host.
	VersionURLs map[APIVersion]string `validate:"omitempty,dive,url"`

	// ConnectTimeout: bound on dialing the API host. Ignored when HTTPClient is set.
	ConnectTimeout time.Duration `validate:"gte=0"`
	// RequestTimeout: bound on a whole request. Applied to HTTPClient when it has none.
	RequestTimeout time.Duration `validate:"gte=0"`

	// RetryMax: retries for GET requests on connection errors, 429 and 5xx. Other
	// methods are never retried. Zero disables retries.
	RetryMax int `validate:"gte=0,lte=10"`
	// RetryWaitMin: minimum backoff between retries.
	RetryWaitMin time.Duration `validate:"gte=0"`
	// RetryWaitMax: maximum backoff between retries.
	RetryWaitMax time.Duration `validate:"gte=0"`

	// PollInterval: wait between status checks of WaitUntilAvailable and WaitForState.
	PollInterval time.Duration `validate:"gte=0"`
	// PollTimeout: bound on a whole wait.
	PollTimeout time.Duration `validate:"gte=0"`

	// Debug: enables request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger `validate:"-"`
	// UserAgent: overrides the default User-Agent header.
	UserAgent string

	// HTTPClient: optional injected HTTP client whose transport carries the requests.
	HTTPClient *http.Client `validate:"-"`
	// Cache: optional response cache for immutable resources such as rates.
	Cache Cache `validate:"-"`
	// Interceptors: optional request/response hooks.
	Interceptors *InterceptorChain `validate:"-"`
	// RateLimit: optional client-side throttling.
	RateLimit *RateLimit `validate:"omitempty"`
	// Tracer: optional OpenTelemetry tracer. Defaults to the global provider.
	Tracer trace.Tracer `validate:"-"`
}

// WithDefaults returns a copy of the config with unset fields defaulted.
func (c *Config) WithDefaults() *Config {
	config := *c

	if config.BaseURL == "" {
		config.BaseURL = constants.DefaultBaseURL
	}

	config.BaseURL = strings.TrimSuffix(config.BaseURL, "/")

	if config.ConnectTimeout == 0 {
		config.ConnectTimeout = constants.DefaultConnectTimeout
	}

	if config.RequestTimeout == 0 {
		config.RequestTimeout = constants.DefaultRequestTimeout
	}

	if config.RetryWaitMin == 0 {
		config.RetryWaitMin = constants.DefaultRetryWaitMin
	}

	if config.RetryWaitMax == 0 {
		config.RetryWaitMax = constants.DefaultRetryWaitMax
	}

	if config.PollInterval == 0 {
		config.PollInterval = constants.DefaultPollInterval
	}

	if config.PollTimeout == 0 {
		config.PollTimeout = constants.DefaultPollTimeout
	}

	if config.UserAgent == "" {
		config.UserAgent = constants.DefaultUserAgent
	}

	return &config
}

// BaseURLFor returns the base URL requests for version are sent to.
func (c *Config) BaseURLFor(version APIVersion) string {
	if override, ok := c.VersionURLs[version]; ok && override != "" {
		return strings.TrimSuffix(override, "/")
	}

	base := c.BaseURL
	if base == "" {
		base = constants.DefaultBaseURL
	}

	return strings.TrimSuffix(base, "/") + version.PathPrefix()
}

// Validate checks the config against its field rules.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigRequired
	}

	validate, translator := configValidator()

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("validating config: %w", err)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, fieldErr.Translate(translator))
	}

	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(messages, "; "))
}

var (
	validatorOnce     sync.Once
	validatorInstance *validator.Validate
	translatorInst    ut.Translator
)

func configValidator() (*validator.Validate, ut.Translator) {
	validatorOnce.Do(func() {
		validatorInstance = validator.New(validator.WithRequiredStructEnabled())
		translatorInst, _ = ut.New(en.New(), en.New()).GetTranslator("en")

		err := en_translations.RegisterDefaultTranslations(validatorInstance, translatorInst)
		if err != nil {
			panic(err)
		}
	})

	return validatorInstance, translatorInst
}

// envSpec is the environment-variable shape of Config.
type envSpec struct {
	APIKey         string        `envconfig:"API_KEY"         required:"true"`
	BaseURL        string        `envconfig:"BASE_URL"        default:"https://api.easypost.com"`
	BetaURL        string        `envconfig:"BETA_URL"`
	ConnectTimeout time.Duration `envconfig:"CONNECT_TIMEOUT" default:"30s"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"60s"`
	RetryMax       int           `envconfig:"RETRY_MAX"       default:"0"`
	PollInterval   time.Duration `envconfig:"POLL_INTERVAL"   default:"2s"`
	PollTimeout    time.Duration `envconfig:"POLL_TIMEOUT"    default:"5m"`
	Debug          bool          `envconfig:"DEBUG"           default:"false"`
	UserAgent      string        `envconfig:"USER_AGENT"`
}

// LoadConfigFromEnv builds a Config from EASYPOST_* environment variables.
func LoadConfigFromEnv() (*Config, error) {
	var env envSpec

	err := envconfig.Process(EnvPrefix, &env)
	if err != nil {
		return nil, fmt.Errorf("loading config from environment: %w", err)
	}

	config := &Config{
		APIKey:         env.APIKey,
		BaseURL:        env.BaseURL,
		ConnectTimeout: env.ConnectTimeout,
		RequestTimeout: env.RequestTimeout,
		RetryMax:       env.RetryMax,
		PollInterval:   env.PollInterval,
		PollTimeout:    env.PollTimeout,
		Debug:          env.Debug,
		UserAgent:      env.UserAgent,
	}

	if env.BetaURL != "" {
		config.VersionURLs = map[APIVersion]string{Beta: env.BetaURL}
	}

	return config, nil
}
