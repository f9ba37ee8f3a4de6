package client

import (
	"context"
	"net/http"

	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

// CarrierAccountsClient implements easypost.CarrierAccountsClient for the Latest
// carrier account shape.
type CarrierAccountsClient struct {
	requester *requester
}

func newCarrierAccountsClient(r *requester) *CarrierAccountsClient {
	return &CarrierAccountsClient{requester: r}
}

// Create implements easypost.CarrierAccountsClient.Create.
func (c *CarrierAccountsClient) Create(ctx context.Context, params *easypost.CarrierAccountCreateParams) (*easypost.CarrierAccount, error) {
	err := c.requester.require("carrier_accounts.create", easypost.Latest)
	if err != nil {
		return nil, err
	}

	return execute[easypost.CarrierAccount](ctx, c.requester, http.MethodPost, "carrier_accounts", paramsOf(params), "")
}

// Retrieve implements easypost.CarrierAccountsClient.Retrieve.
func (c *CarrierAccountsClient) Retrieve(ctx context.Context, id string) (*easypost.CarrierAccount, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	return execute[easypost.CarrierAccount](ctx, c.requester, http.MethodGet, resourcePath("carrier_accounts", id), nil, "")
}

// All implements easypost.CarrierAccountsClient.All. The API returns a bare array.
func (c *CarrierAccountsClient) All(ctx context.Context) ([]easypost.CarrierAccount, error) {
	accounts, err := execute[[]easypost.CarrierAccount](ctx, c.requester, http.MethodGet, "carrier_accounts", nil, "")
	if err != nil {
		return nil, err
	}

	return *accounts, nil
}

// Update implements easypost.CarrierAccountsClient.Update.
func (c *CarrierAccountsClient) Update(ctx context.Context, id string, params *easypost.CarrierAccountUpdateParams) (*easypost.CarrierAccount, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	return execute[easypost.CarrierAccount](ctx, c.requester, http.MethodPatch, resourcePath("carrier_accounts", id), paramsOf(params), "")
}

// Delete implements easypost.CarrierAccountsClient.Delete.
func (c *CarrierAccountsClient) Delete(ctx context.Context, id string) error {
	err := requireID(id)
	if err != nil {
		return err
	}

	return executeNoContent(ctx, c.requester, http.MethodDelete, resourcePath("carrier_accounts", id), nil)
}

// LegacyCarrierAccountsClient implements easypost.LegacyCarrierAccountsClient for
// the V2 carrier account shape.
type LegacyCarrierAccountsClient struct {
	requester *requester
}

func newLegacyCarrierAccountsClient(r *requester) *LegacyCarrierAccountsClient {
	return &LegacyCarrierAccountsClient{requester: r}
}

// Create implements easypost.LegacyCarrierAccountsClient.Create.
func (c *LegacyCarrierAccountsClient) Create(ctx context.Context, params *easypost.LegacyCarrierAccountParams) (*easypost.LegacyCarrierAccount, error) {
	err := c.requester.require("carrier_accounts.create", easypost.V2)
	if err != nil {
		return nil, err
	}

	return execute[easypost.LegacyCarrierAccount](ctx, c.requester, http.MethodPost, "carrier_accounts", paramsOf(params), "")
}

// Retrieve implements easypost.LegacyCarrierAccountsClient.Retrieve.
func (c *LegacyCarrierAccountsClient) Retrieve(ctx context.Context, id string) (*easypost.LegacyCarrierAccount, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	return execute[easypost.LegacyCarrierAccount](ctx, c.requester, http.MethodGet, resourcePath("carrier_accounts", id), nil, "")
}

// All implements easypost.LegacyCarrierAccountsClient.All.
func (c *LegacyCarrierAccountsClient) All(ctx context.Context) ([]easypost.LegacyCarrierAccount, error) {
	accounts, err := execute[[]easypost.LegacyCarrierAccount](ctx, c.requester, http.MethodGet, "carrier_accounts", nil, "")
	if err != nil {
		return nil, err
	}

	return *accounts, nil
}

// Update implements easypost.LegacyCarrierAccountsClient.Update.
func (c *LegacyCarrierAccountsClient) Update(ctx context.Context, id string, params *easypost.LegacyCarrierAccountParams) (*easypost.LegacyCarrierAccount, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	return execute[easypost.LegacyCarrierAccount](ctx, c.requester, http.MethodPut, resourcePath("carrier_accounts", id), paramsOf(params), "")
}

// Delete implements easypost.LegacyCarrierAccountsClient.Delete.
func (c *LegacyCarrierAccountsClient) Delete(ctx context.Context, id string) error {
	err := requireID(id)
	if err != nil {
		return err
	}

	return executeNoContent(ctx, c.requester, http.MethodDelete, resourcePath("carrier_accounts", id), nil)
}
