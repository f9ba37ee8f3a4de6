package client

import (
	"context"
	"net/http"

	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

// ShipmentsClient implements easypost.ShipmentsClient.
type ShipmentsClient struct {
	requester *requester
}

func newShipmentsClient(r *requester) *ShipmentsClient {
	return &ShipmentsClient{requester: r}
}

// Create implements easypost.ShipmentsClient.Create.
func (c *ShipmentsClient) Create(ctx context.Context, params *easypost.ShipmentCreateParams) (*easypost.Shipment, error) {
	return execute[easypost.Shipment](ctx, c.requester, http.MethodPost, "shipments", paramsOf(params), "")
}

// Retrieve implements easypost.ShipmentsClient.Retrieve.
func (c *ShipmentsClient) Retrieve(ctx context.Context, id string) (*easypost.Shipment, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	return execute[easypost.Shipment](ctx, c.requester, http.MethodGet, resourcePath("shipments", id), nil, "")
}

// All implements easypost.ShipmentsClient.All.
func (c *ShipmentsClient) All(ctx context.Context, params *easypost.ListParams) (*easypost.Collection[easypost.Shipment], error) {
	return list[easypost.Shipment](ctx, c.requester, "shipments", "shipments", params)
}

// NextPage implements easypost.ShipmentsClient.NextPage.
func (c *ShipmentsClient) NextPage(ctx context.Context, page *easypost.Collection[easypost.Shipment]) (*easypost.Collection[easypost.Shipment], error) {
	return nextPage(ctx, c.requester, "shipments", "shipments", page)
}

// Buy implements easypost.ShipmentsClient.Buy.
func (c *ShipmentsClient) Buy(ctx context.Context, id string, params *easypost.ShipmentBuyParams) (*easypost.Shipment, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	return execute[easypost.Shipment](ctx, c.requester, http.MethodPost, resourcePath("shipments", id, "buy"), paramsOf(params), "")
}

// RegenerateRates implements easypost.ShipmentsClient.RegenerateRates.
func (c *ShipmentsClient) RegenerateRates(ctx context.Context, id string, params *easypost.ShipmentRerateParams) (*easypost.Shipment, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	return execute[easypost.Shipment](ctx, c.requester, http.MethodPost, resourcePath("shipments", id, "rerate"), paramsOf(params), "")
}

// Smartrates implements easypost.ShipmentsClient.Smartrates.
func (c *ShipmentsClient) Smartrates(ctx context.Context, id string) ([]easypost.Smartrate, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	smartrates, err := execute[[]easypost.Smartrate](ctx, c.requester, http.MethodGet, resourcePath("shipments", id, "smartrate"), nil, "result")
	if err != nil {
		return nil, err
	}

	return *smartrates, nil
}

// LowestSmartrate implements easypost.ShipmentsClient.LowestSmartrate.
func (c *ShipmentsClient) LowestSmartrate(ctx context.Context, id string, deliveryDays int, accuracy easypost.SmartrateAccuracy) (*easypost.Smartrate, error) {
	parsed, err := easypost.ParseSmartrateAccuracy(string(accuracy))
	if err != nil {
		return nil, err
	}

	smartrates, err := c.Smartrates(ctx, id)
	if err != nil {
		return nil, err
	}

	lowest, err := easypost.LowestSmartrate(smartrates, deliveryDays, parsed)
	if err != nil {
		return nil, err
	}

	return &lowest, nil
}

// GenerateLabel implements easypost.ShipmentsClient.GenerateLabel.
func (c *ShipmentsClient) GenerateLabel(ctx context.Context, id string, params *easypost.LabelParams) (*easypost.Shipment, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	return execute[easypost.Shipment](ctx, c.requester, http.MethodGet, resourcePath("shipments", id, "label"), paramsOf(params), "")
}

// Insure implements easypost.ShipmentsClient.Insure.
func (c *ShipmentsClient) Insure(ctx context.Context, id string, params *easypost.ShipmentInsureParams) (*easypost.Shipment, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	return execute[easypost.Shipment](ctx, c.requester, http.MethodPost, resourcePath("shipments", id, "insure"), paramsOf(params), "")
}

// Refund implements easypost.ShipmentsClient.Refund.
func (c *ShipmentsClient) Refund(ctx context.Context, id string) (*easypost.Shipment, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	return execute[easypost.Shipment](ctx, c.requester, http.MethodGet, resourcePath("shipments", id, "refund"), nil, "")
}
