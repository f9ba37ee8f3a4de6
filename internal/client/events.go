package client

import (
	"context"
	"net/http"

	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

// InsurancesClient implements easypost.InsurancesClient.
type InsurancesClient struct {
	requester *requester
}

func newInsurancesClient(r *requester) *InsurancesClient {
	return &InsurancesClient{requester: r}
}

// Create implements easypost.InsurancesClient.Create. Insurance has no typed
// parameter set; build params with easypost.NewRawParams("insurance", values).
func (c *InsurancesClient) Create(ctx context.Context, params *easypost.RawParams) (*easypost.Insurance, error) {
	return execute[easypost.Insurance](ctx, c.requester, http.MethodPost, "insurances", paramsOf(params), "")
}

// Retrieve implements easypost.InsurancesClient.Retrieve.
func (c *InsurancesClient) Retrieve(ctx context.Context, id string) (*easypost.Insurance, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	return execute[easypost.Insurance](ctx, c.requester, http.MethodGet, resourcePath("insurances", id), nil, "")
}

// All implements easypost.InsurancesClient.All.
func (c *InsurancesClient) All(ctx context.Context, params *easypost.ListParams) (*easypost.Collection[easypost.Insurance], error) {
	return list[easypost.Insurance](ctx, c.requester, "insurances", "insurances", params)
}

// NextPage implements easypost.InsurancesClient.NextPage.
func (c *InsurancesClient) NextPage(ctx context.Context, page *easypost.Collection[easypost.Insurance]) (*easypost.Collection[easypost.Insurance], error) {
	return nextPage(ctx, c.requester, "insurances", "insurances", page)
}

// EventsClient implements easypost.EventsClient.
type EventsClient struct {
	requester *requester
}

func newEventsClient(r *requester) *EventsClient {
	return &EventsClient{requester: r}
}

// Retrieve implements easypost.EventsClient.Retrieve.
func (c *EventsClient) Retrieve(ctx context.Context, id string) (*easypost.Event, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	return execute[easypost.Event](ctx, c.requester, http.MethodGet, resourcePath("events", id), nil, "")
}

// All implements easypost.EventsClient.All.
func (c *EventsClient) All(ctx context.Context, params *easypost.ListParams) (*easypost.Collection[easypost.Event], error) {
	return list[easypost.Event](ctx, c.requester, "events", "events", params)
}

// NextPage implements easypost.EventsClient.NextPage.
func (c *EventsClient) NextPage(ctx context.Context, page *easypost.Collection[easypost.Event]) (*easypost.Collection[easypost.Event], error) {
	return nextPage(ctx, c.requester, "events", "events", page)
}
