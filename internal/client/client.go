package client

import (
	"fmt"

	"github.com/fivetwenty-io/easypost-go/internal/constants"
	internalhttp "github.com/fivetwenty-io/easypost-go/internal/http"
	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

// Client implements easypost.Client, bound to the Latest API version.
type Client struct {
	httpClient *internalhttp.Client

	addresses       *AddressesClient
	parcels         *ParcelsClient
	customsInfos    *CustomsInfosClient
	customsItems    *CustomsItemsClient
	shipments       *ShipmentsClient
	rates           *RatesClient
	batches         *BatchesClient
	reports         *ReportsClient
	apiKeys         *APIKeysClient
	carrierAccounts *CarrierAccountsClient
	insurances      *InsurancesClient
	events          *EventsClient
	endShippers     *EndShippersClient
}

// V2Client implements easypost.V2Client.
type V2Client struct {
	httpClient *internalhttp.Client

	addresses       *AddressesClient
	parcels         *ParcelsClient
	shipments       *ShipmentsClient
	rates           *RatesClient
	batches         *BatchesClient
	orders          *OrdersClient
	apiKeys         *APIKeysClient
	carrierAccounts *LegacyCarrierAccountsClient
	creditCards     *CreditCardsClient
}

// BetaClient implements easypost.BetaClient.
type BetaClient struct {
	httpClient *internalhttp.Client

	endShippers *EndShippersClient
	rates       *BetaRatesClient
}

// New creates a client for the Latest API version.
func New(config *easypost.Config) (*Client, error) {
	r, err := newVersionRequester(config, easypost.Latest)
	if err != nil {
		return nil, err
	}

	return &Client{
		httpClient:      r.http,
		addresses:       newAddressesClient(r),
		parcels:         newParcelsClient(r),
		customsInfos:    newCustomsInfosClient(r),
		customsItems:    newCustomsItemsClient(r),
		shipments:       newShipmentsClient(r),
		rates:           newRatesClient(r),
		batches:         newBatchesClient(r),
		reports:         newReportsClient(r),
		apiKeys:         newAPIKeysClient(r),
		carrierAccounts: newCarrierAccountsClient(r),
		insurances:      newInsurancesClient(r),
		events:          newEventsClient(r),
		endShippers:     newEndShippersClient(r),
	}, nil
}

// NewV2 creates a client for the V2 API version.
func NewV2(config *easypost.Config) (*V2Client, error) {
	r, err := newVersionRequester(config, easypost.V2)
	if err != nil {
		return nil, err
	}

	return &V2Client{
		httpClient:      r.http,
		addresses:       newAddressesClient(r),
		parcels:         newParcelsClient(r),
		shipments:       newShipmentsClient(r),
		rates:           newRatesClient(r),
		batches:         newBatchesClient(r),
		orders:          newOrdersClient(r),
		apiKeys:         newAPIKeysClient(r),
		carrierAccounts: newLegacyCarrierAccountsClient(r),
		creditCards:     newCreditCardsClient(r),
	}, nil
}

// NewBeta creates a client for the Beta API version.
func NewBeta(config *easypost.Config) (*BetaClient, error) {
	r, err := newVersionRequester(config, easypost.Beta)
	if err != nil {
		return nil, err
	}

	return &BetaClient{
		httpClient:  r.http,
		endShippers: newEndShippersClient(r),
		rates:       newBetaRatesClient(r),
	}, nil
}

func newVersionRequester(config *easypost.Config, version easypost.APIVersion) (*requester, error) {
	if config == nil {
		return nil, easypost.ErrConfigRequired
	}

	if config.APIKey == "" {
		return nil, fmt.Errorf("%w: API key is required", easypost.ErrInvalidConfig)
	}

	httpOpts, err := createHTTPClientOptions(config, version)
	if err != nil {
		return nil, err
	}

	httpClient := internalhttp.NewClient(config.BaseURLFor(version), config.APIKey, httpOpts...)

	var cache *easypost.CacheManager
	if config.Cache != nil {
		cache = easypost.NewCacheManager(config.Cache, easypost.DefaultCacheOptions())
	}

	r := newRequester(httpClient, cache)

	if config.PollInterval > 0 {
		r.pollInterval = config.PollInterval
	}

	if config.PollTimeout > 0 {
		r.pollTimeout = config.PollTimeout
	}

	return r, nil
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *easypost.Config, version easypost.APIVersion) ([]internalhttp.Option, error) {
	httpOpts := []internalhttp.Option{internalhttp.WithVersion(version)}

	if config.Logger != nil {
		httpOpts = append(httpOpts, internalhttp.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, internalhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.HTTPClient != nil {
		httpClient := *config.HTTPClient
		if httpClient.Timeout == 0 && config.RequestTimeout > 0 {
			httpClient.Timeout = config.RequestTimeout
		}

		httpOpts = append(httpOpts, internalhttp.WithHTTPClient(&httpClient))
	} else if config.ConnectTimeout > 0 || config.RequestTimeout > 0 {
		httpOpts = append(httpOpts, internalhttp.WithTimeouts(config.ConnectTimeout, config.RequestTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, internalhttp.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if config.Tracer != nil {
		httpOpts = append(httpOpts, internalhttp.WithTracer(config.Tracer))
	}

	chain, err := interceptorChain(config)
	if err != nil {
		return nil, err
	}

	if chain != nil {
		httpOpts = append(httpOpts, internalhttp.WithInterceptors(chain))
	}

	return httpOpts, nil
}

// interceptorChain puts the rate limiter ahead of the configured interceptors.
func interceptorChain(config *easypost.Config) (*easypost.InterceptorChain, error) {
	if config.RateLimit == nil {
		return config.Interceptors, nil
	}

	limiter, err := easypost.RateLimitInterceptor(*config.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("configuring rate limit: %w", err)
	}

	return easypost.NewInterceptorChain().
		AddRequestInterceptor(limiter).
		Merge(config.Interceptors), nil
}

// Addresses implements easypost.Client.Addresses.
func (c *Client) Addresses() easypost.AddressesClient { return c.addresses }

// Parcels implements easypost.Client.Parcels.
func (c *Client) Parcels() easypost.ParcelsClient { return c.parcels }

// CustomsInfos implements easypost.Client.CustomsInfos.
func (c *Client) CustomsInfos() easypost.CustomsInfosClient { return c.customsInfos }

// CustomsItems implements easypost.Client.CustomsItems.
func (c *Client) CustomsItems() easypost.CustomsItemsClient { return c.customsItems }

// Shipments implements easypost.Client.Shipments.
func (c *Client) Shipments() easypost.ShipmentsClient { return c.shipments }

// Rates implements easypost.Client.Rates.
func (c *Client) Rates() easypost.RatesClient { return c.rates }

// Batches implements easypost.Client.Batches.
func (c *Client) Batches() easypost.BatchesClient { return c.batches }

// Reports implements easypost.Client.Reports.
func (c *Client) Reports() easypost.ReportsClient { return c.reports }

// APIKeys implements easypost.Client.APIKeys.
func (c *Client) APIKeys() easypost.APIKeysClient { return c.apiKeys }

// CarrierAccounts implements easypost.Client.CarrierAccounts.
func (c *Client) CarrierAccounts() easypost.CarrierAccountsClient { return c.carrierAccounts }

// Insurances implements easypost.Client.Insurances.
func (c *Client) Insurances() easypost.InsurancesClient { return c.insurances }

// Events implements easypost.Client.Events.
func (c *Client) Events() easypost.EventsClient { return c.events }

// EndShippers implements easypost.Client.EndShippers.
func (c *Client) EndShippers() easypost.EndShippersClient { return c.endShippers }

// Version implements easypost.Client.Version.
func (c *Client) Version() easypost.APIVersion { return c.httpClient.Version() }

// Addresses implements easypost.V2Client.Addresses.
func (c *V2Client) Addresses() easypost.AddressesClient { return c.addresses }

// Parcels implements easypost.V2Client.Parcels.
func (c *V2Client) Parcels() easypost.ParcelsClient { return c.parcels }

// Shipments implements easypost.V2Client.Shipments.
func (c *V2Client) Shipments() easypost.ShipmentsClient { return c.shipments }

// Rates implements easypost.V2Client.Rates.
func (c *V2Client) Rates() easypost.RatesClient { return c.rates }

// Batches implements easypost.V2Client.Batches.
func (c *V2Client) Batches() easypost.BatchesClient { return c.batches }

// Orders implements easypost.V2Client.Orders.
func (c *V2Client) Orders() easypost.OrdersClient { return c.orders }

// APIKeys implements easypost.V2Client.APIKeys.
func (c *V2Client) APIKeys() easypost.APIKeysClient { return c.apiKeys }

// CarrierAccounts implements easypost.V2Client.CarrierAccounts.
func (c *V2Client) CarrierAccounts() easypost.LegacyCarrierAccountsClient { return c.carrierAccounts }

// CreditCards implements easypost.V2Client.CreditCards.
func (c *V2Client) CreditCards() easypost.CreditCardsClient { return c.creditCards }

// Version implements easypost.V2Client.Version.
func (c *V2Client) Version() easypost.APIVersion { return c.httpClient.Version() }

// EndShippers implements easypost.BetaClient.EndShippers.
func (c *BetaClient) EndShippers() easypost.EndShippersClient { return c.endShippers }

// Rates implements easypost.BetaClient.Rates.
func (c *BetaClient) Rates() easypost.BetaRatesClient { return c.rates }

// Version implements easypost.BetaClient.Version.
func (c *BetaClient) Version() easypost.APIVersion { return c.httpClient.Version() }
