package client

import (
	"context"
	"net/http"

	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

// OrdersClient implements easypost.OrdersClient. Orders are a V2 resource.
type OrdersClient struct {
	requester *requester
}

func newOrdersClient(r *requester) *OrdersClient {
	return &OrdersClient{requester: r}
}

// Create implements easypost.OrdersClient.Create.
func (c *OrdersClient) Create(ctx context.Context, params *easypost.OrderCreateParams) (*easypost.Order, error) {
	err := c.requester.require("orders.create", easypost.V2)
	if err != nil {
		return nil, err
	}

	return execute[easypost.Order](ctx, c.requester, http.MethodPost, "orders", paramsOf(params), "")
}

// Retrieve implements easypost.OrdersClient.Retrieve.
func (c *OrdersClient) Retrieve(ctx context.Context, id string) (*easypost.Order, error) {
	err := c.check("orders.retrieve", id)
	if err != nil {
		return nil, err
	}

	return execute[easypost.Order](ctx, c.requester, http.MethodGet, resourcePath("orders", id), nil, "")
}

// GetRates implements easypost.OrdersClient.GetRates.
func (c *OrdersClient) GetRates(ctx context.Context, id string) (*easypost.Order, error) {
	err := c.check("orders.get_rates", id)
	if err != nil {
		return nil, err
	}

	return execute[easypost.Order](ctx, c.requester, http.MethodGet, resourcePath("orders", id, "rates"), nil, "")
}

// Buy implements easypost.OrdersClient.Buy.
func (c *OrdersClient) Buy(ctx context.Context, id string, params *easypost.OrderBuyParams) (*easypost.Order, error) {
	err := c.check("orders.buy", id)
	if err != nil {
		return nil, err
	}

	return execute[easypost.Order](ctx, c.requester, http.MethodPost, resourcePath("orders", id, "buy"), paramsOf(params), "")
}

func (c *OrdersClient) check(operation, id string) error {
	err := c.requester.require(operation, easypost.V2)
	if err != nil {
		return err
	}

	return requireID(id)
}
