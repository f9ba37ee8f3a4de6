package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/easypost-go/internal/constants"
	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

// BatchesClient implements easypost.BatchesClient.
type BatchesClient struct {
	requester *requester
}

func newBatchesClient(r *requester) *BatchesClient {
	return &BatchesClient{requester: r}
}

// Create implements easypost.BatchesClient.Create.
func (c *BatchesClient) Create(ctx context.Context, params *easypost.BatchCreateParams) (*easypost.Batch, error) {
	return execute[easypost.Batch](ctx, c.requester, http.MethodPost, "batches", paramsOf(params), "")
}

// CreateAndBuy implements easypost.BatchesClient.CreateAndBuy.
func (c *BatchesClient) CreateAndBuy(ctx context.Context, params *easypost.BatchCreateParams) (*easypost.Batch, error) {
	return execute[easypost.Batch](ctx, c.requester, http.MethodPost, "batches/create_and_buy", paramsOf(params), "")
}

// Retrieve implements easypost.BatchesClient.Retrieve.
func (c *BatchesClient) Retrieve(ctx context.Context, id string) (*easypost.Batch, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	return execute[easypost.Batch](ctx, c.requester, http.MethodGet, resourcePath("batches", id), nil, "")
}

// All implements easypost.BatchesClient.All.
func (c *BatchesClient) All(ctx context.Context, params *easypost.ListParams) (*easypost.Collection[easypost.Batch], error) {
	return list[easypost.Batch](ctx, c.requester, "batches", "batches", params)
}

// NextPage implements easypost.BatchesClient.NextPage.
func (c *BatchesClient) NextPage(ctx context.Context, page *easypost.Collection[easypost.Batch]) (*easypost.Collection[easypost.Batch], error) {
	return nextPage(ctx, c.requester, "batches", "batches", page)
}

// AddShipments implements easypost.BatchesClient.AddShipments.
func (c *BatchesClient) AddShipments(ctx context.Context, id string, params *easypost.BatchShipmentsParams) (*easypost.Batch, error) {
	return c.action(ctx, id, "add_shipments", paramsOf(params))
}

// RemoveShipments implements easypost.BatchesClient.RemoveShipments.
func (c *BatchesClient) RemoveShipments(ctx context.Context, id string, params *easypost.BatchShipmentsParams) (*easypost.Batch, error) {
	return c.action(ctx, id, "remove_shipments", paramsOf(params))
}

// Buy implements easypost.BatchesClient.Buy.
func (c *BatchesClient) Buy(ctx context.Context, id string) (*easypost.Batch, error) {
	return c.action(ctx, id, "buy", nil)
}

// GenerateLabel implements easypost.BatchesClient.GenerateLabel.
func (c *BatchesClient) GenerateLabel(ctx context.Context, id string, params *easypost.LabelParams) (*easypost.Batch, error) {
	return c.action(ctx, id, "label", paramsOf(params))
}

// GenerateScanForm implements easypost.BatchesClient.GenerateScanForm.
func (c *BatchesClient) GenerateScanForm(ctx context.Context, id string) (*easypost.Batch, error) {
	return c.action(ctx, id, "scan_form", nil)
}

// WaitForState implements easypost.BatchesClient.WaitForState.
func (c *BatchesClient) WaitForState(ctx context.Context, id, state string) (*easypost.Batch, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	if state == "" {
		return nil, &easypost.MissingParameterError{Name: "state"}
	}

	return pollUntil(ctx, c.requester,
		func(ctx context.Context) (*easypost.Batch, error) {
			return c.Retrieve(ctx, id)
		},
		func(batch *easypost.Batch) (bool, error) {
			switch batch.State {
			case state:
				return true, nil
			case constants.BatchStateCreationFailed, constants.BatchStatePurchaseFailed:
				return true, fmt.Errorf("%w: %s is %s", easypost.ErrBatchFailed, batch.ID, batch.State)
			default:
				return false, nil
			}
		})
}

func (c *BatchesClient) action(ctx context.Context, id, action string, params easypost.Params) (*easypost.Batch, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	return execute[easypost.Batch](ctx, c.requester, http.MethodPost, resourcePath("batches", id, action), params, "")
}
