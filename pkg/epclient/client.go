// Package epclient provides the main entry point for creating EasyPost API clients
package epclient

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/easypost-go/internal/client"
	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

// ErrAPIKeyRequired is returned when neither the config nor the environment carries an API key.
var ErrAPIKeyRequired = errors.New("API key is required")

// New creates a client bound to the Latest API version.
func New(config *easypost.Config) (easypost.Client, error) {
	normalized, err := prepare(config)
	if err != nil {
		return nil, err
	}

	latest, err := client.New(normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return latest, nil
}

// NewV2 creates a client bound to the V2 API version.
func NewV2(config *easypost.Config) (easypost.V2Client, error) {
	normalized, err := prepare(config)
	if err != nil {
		return nil, err
	}

	v2, err := client.NewV2(normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new v2 client: %w", err)
	}

	return v2, nil
}

// NewBeta creates a client bound to the Beta API version.
func NewBeta(config *easypost.Config) (easypost.BetaClient, error) {
	normalized, err := prepare(config)
	if err != nil {
		return nil, err
	}

	beta, err := client.NewBeta(normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new beta client: %w", err)
	}

	return beta, nil
}

// NewWithAPIKey creates a Latest client against the production host.
func NewWithAPIKey(apiKey string) (easypost.Client, error) {
	return New(&easypost.Config{APIKey: apiKey})
}

// NewFromEnv creates a Latest client from EASYPOST_* environment variables.
func NewFromEnv() (easypost.Client, error) {
	config, err := easypost.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}

	return New(config)
}

// prepare defaults and validates a copy of config. The caller's value is left untouched.
func prepare(config *easypost.Config) (*easypost.Config, error) {
	if config == nil {
		return nil, easypost.ErrConfigRequired
	}

	if strings.TrimSpace(config.APIKey) == "" {
		return nil, ErrAPIKeyRequired
	}

	normalized := config.WithDefaults()
	normalized.BaseURL = normalizeURL(normalized.BaseURL)

	if len(config.VersionURLs) > 0 {
		normalized.VersionURLs = make(map[easypost.APIVersion]string, len(config.VersionURLs))
		for version, url := range config.VersionURLs {
			normalized.VersionURLs[version] = normalizeURL(url)
		}
	}

	err := normalized.Validate()
	if err != nil {
		return nil, err
	}

	return normalized, nil
}

func normalizeURL(raw string) string {
	url := strings.TrimSuffix(strings.TrimSpace(raw), "/")
	if url == "" {
		return url
	}

	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	return url
}
