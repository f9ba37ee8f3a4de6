package client

import (
	"context"
	"net/http"

	"github.com/fivetwenty-io/easypost-go/internal/constants"
	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

// RatesClient implements easypost.RatesClient. Rates never change once issued, so
// retrievals go through the response cache when one is configured.
type RatesClient struct {
	requester *requester
}

func newRatesClient(r *requester) *RatesClient {
	return &RatesClient{requester: r}
}

// Retrieve implements easypost.RatesClient.Retrieve.
func (c *RatesClient) Retrieve(ctx context.Context, id string) (*easypost.Rate, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	ttl := constants.RatesCacheTTL
	if c.requester.cache != nil {
		ttl = c.requester.cache.Options().RatesTTL
	}

	return executeCached[easypost.Rate](ctx, c.requester, resourcePath("rates", id), ttl)
}

// BetaRatesClient implements easypost.BetaRatesClient.
type BetaRatesClient struct {
	requester *requester
}

func newBetaRatesClient(r *requester) *BetaRatesClient {
	return &BetaRatesClient{requester: r}
}

// RetrieveStateless implements easypost.BetaRatesClient.RetrieveStateless.
func (c *BetaRatesClient) RetrieveStateless(ctx context.Context, params *easypost.StatelessRateParams) ([]easypost.Rate, error) {
	err := c.requester.require("rates.retrieve_stateless", easypost.Beta)
	if err != nil {
		return nil, err
	}

	rates, err := execute[[]easypost.Rate](ctx, c.requester, http.MethodPost, "rates", paramsOf(params), "rates")
	if err != nil {
		return nil, err
	}

	return *rates, nil
}
