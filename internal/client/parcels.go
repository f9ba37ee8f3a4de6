package client

import (
	"context"
	"net/http"

	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

// ParcelsClient implements easypost.ParcelsClient.
type ParcelsClient struct {
	requester *requester
}

func newParcelsClient(r *requester) *ParcelsClient {
	return &ParcelsClient{requester: r}
}

// Create implements easypost.ParcelsClient.Create.
func (c *ParcelsClient) Create(ctx context.Context, params *easypost.ParcelCreateParams) (*easypost.Parcel, error) {
	return execute[easypost.Parcel](ctx, c.requester, http.MethodPost, "parcels", paramsOf(params), "")
}

// Retrieve implements easypost.ParcelsClient.Retrieve.
func (c *ParcelsClient) Retrieve(ctx context.Context, id string) (*easypost.Parcel, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	return execute[easypost.Parcel](ctx, c.requester, http.MethodGet, resourcePath("parcels", id), nil, "")
}

// CustomsInfosClient implements easypost.CustomsInfosClient.
type CustomsInfosClient struct {
	requester *requester
}

func newCustomsInfosClient(r *requester) *CustomsInfosClient {
	return &CustomsInfosClient{requester: r}
}

// Create implements easypost.CustomsInfosClient.Create.
func (c *CustomsInfosClient) Create(ctx context.Context, params *easypost.CustomsInfoCreateParams) (*easypost.CustomsInfo, error) {
	return execute[easypost.CustomsInfo](ctx, c.requester, http.MethodPost, "customs_infos", paramsOf(params), "")
}

// Retrieve implements easypost.CustomsInfosClient.Retrieve.
func (c *CustomsInfosClient) Retrieve(ctx context.Context, id string) (*easypost.CustomsInfo, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	return execute[easypost.CustomsInfo](ctx, c.requester, http.MethodGet, resourcePath("customs_infos", id), nil, "")
}

// CustomsItemsClient implements easypost.CustomsItemsClient.
type CustomsItemsClient struct {
	requester *requester
}

func newCustomsItemsClient(r *requester) *CustomsItemsClient {
	return &CustomsItemsClient{requester: r}
}

// Create implements easypost.CustomsItemsClient.Create.
func (c *CustomsItemsClient) Create(ctx context.Context, params *easypost.CustomsItemCreateParams) (*easypost.CustomsItem, error) {
	return execute[easypost.CustomsItem](ctx, c.requester, http.MethodPost, "customs_items", paramsOf(params), "")
}

// Retrieve implements easypost.CustomsItemsClient.Retrieve.
func (c *CustomsItemsClient) Retrieve(ctx context.Context, id string) (*easypost.CustomsItem, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	return execute[easypost.CustomsItem](ctx, c.requester, http.MethodGet, resourcePath("customs_items", id), nil, "")
}
