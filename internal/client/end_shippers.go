package client

import (
	"context"
	"net/http"

	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

// EndShippersClient implements easypost.EndShippersClient on Latest and Beta.
type EndShippersClient struct {
	requester *requester
}

func newEndShippersClient(r *requester) *EndShippersClient {
	return &EndShippersClient{requester: r}
}

// Create implements easypost.EndShippersClient.Create.
func (c *EndShippersClient) Create(ctx context.Context, params *easypost.EndShipperParams) (*easypost.EndShipper, error) {
	err := c.requester.require("end_shippers.create", easypost.Latest, easypost.Beta)
	if err != nil {
		return nil, err
	}

	return execute[easypost.EndShipper](ctx, c.requester, http.MethodPost, "end_shippers", paramsOf(params), "")
}

// Retrieve implements easypost.EndShippersClient.Retrieve.
func (c *EndShippersClient) Retrieve(ctx context.Context, id string) (*easypost.EndShipper, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	return execute[easypost.EndShipper](ctx, c.requester, http.MethodGet, resourcePath("end_shippers", id), nil, "")
}

// All implements easypost.EndShippersClient.All.
func (c *EndShippersClient) All(ctx context.Context, params *easypost.ListParams) (*easypost.Collection[easypost.EndShipper], error) {
	return list[easypost.EndShipper](ctx, c.requester, "end_shippers", "end_shippers", params)
}

// NextPage implements easypost.EndShippersClient.NextPage.
func (c *EndShippersClient) NextPage(ctx context.Context, page *easypost.Collection[easypost.EndShipper]) (*easypost.Collection[easypost.EndShipper], error) {
	return nextPage(ctx, c.requester, "end_shippers", "end_shippers", page)
}

// Update implements easypost.EndShippersClient.Update.
func (c *EndShippersClient) Update(ctx context.Context, id string, params *easypost.EndShipperParams) (*easypost.EndShipper, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	return execute[easypost.EndShipper](ctx, c.requester, http.MethodPut, resourcePath("end_shippers", id), paramsOf(params), "")
}
