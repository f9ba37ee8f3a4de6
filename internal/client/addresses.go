package client

import (
	"context"
	"net/http"

	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

// AddressesClient implements easypost.AddressesClient.
type AddressesClient struct {
	requester *requester
}

func newAddressesClient(r *requester) *AddressesClient {
	return &AddressesClient{requester: r}
}

// Create implements easypost.AddressesClient.Create.
func (c *AddressesClient) Create(ctx context.Context, params *easypost.AddressCreateParams) (*easypost.Address, error) {
	err := c.requester.require("addresses.create", easypost.V2, easypost.Latest)
	if err != nil {
		return nil, err
	}

	return execute[easypost.Address](ctx, c.requester, http.MethodPost, "addresses", paramsOf(params), "")
}

// CreateAndVerify implements easypost.AddressesClient.CreateAndVerify. The address is
// only created when verification succeeds.
func (c *AddressesClient) CreateAndVerify(ctx context.Context, params *easypost.AddressCreateParams) (*easypost.Address, error) {
	err := c.requester.require("addresses.create_and_verify", easypost.V2, easypost.Latest)
	if err != nil {
		return nil, err
	}

	return execute[easypost.Address](ctx, c.requester, http.MethodPost, "addresses/create_and_verify", paramsOf(params), "address")
}

// Retrieve implements easypost.AddressesClient.Retrieve.
func (c *AddressesClient) Retrieve(ctx context.Context, id string) (*easypost.Address, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	return execute[easypost.Address](ctx, c.requester, http.MethodGet, resourcePath("addresses", id), nil, "")
}

// All implements easypost.AddressesClient.All.
func (c *AddressesClient) All(ctx context.Context, params *easypost.ListParams) (*easypost.Collection[easypost.Address], error) {
	return list[easypost.Address](ctx, c.requester, "addresses", "addresses", params)
}

// NextPage implements easypost.AddressesClient.NextPage.
func (c *AddressesClient) NextPage(ctx context.Context, page *easypost.Collection[easypost.Address]) (*easypost.Collection[easypost.Address], error) {
	return nextPage(ctx, c.requester, "addresses", "addresses", page)
}

// Verify implements easypost.AddressesClient.Verify.
func (c *AddressesClient) Verify(ctx context.Context, id string) (*easypost.Address, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	return execute[easypost.Address](ctx, c.requester, http.MethodGet, resourcePath("addresses", id, "verify"), nil, "address")
}
