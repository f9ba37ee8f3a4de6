package client_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

func TestBatchesClient_Create(t *testing.T) {
	t.Parallel()

	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/batches", r.URL.Path)
		assert.Equal(t, map[string]interface{}{
			"batch": map[string]interface{}{
				"reference": "morning",
				"shipments": []interface{}{
					map[string]interface{}{"reference": "a"},
					map[string]interface{}{"reference": "b"},
				},
			},
		}, readBody(t, r))

		writeJSON(w, http.StatusOK, `{"id": "batch_1", "object": "Batch", "state": "creating", "num_shipments": 2}`)
	})

	c := newLatestClient(t, server)

	batch, err := c.Batches().Create(context.Background(), &easypost.BatchCreateParams{
		Reference: easypost.Ptr("morning"),
		Shipments: []*easypost.ShipmentCreateParams{
			{Reference: easypost.Ptr("a")},
			nil,
			{Reference: easypost.Ptr("b")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "batch_1", batch.ID)
	assert.Equal(t, 2, batch.NumShipments)
}

func TestBatchesClient_AddAndRemoveShipments(t *testing.T) {
	t.Parallel()

	var paths []string

	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, map[string]interface{}{
			"shipments": []interface{}{
				map[string]interface{}{"id": "shp_1"},
				map[string]interface{}{"id": "shp_2"},
			},
		}, readBody(t, r))

		writeJSON(w, http.StatusOK, `{"id": "batch_1", "num_shipments": 2}`)
	})

	c := newLatestClient(t, server)
	ctx := context.Background()
	params := &easypost.BatchShipmentsParams{ShipmentIDs: []string{"shp_1", "", "shp_2"}}

	_, err := c.Batches().AddShipments(ctx, "batch_1", params)
	require.NoError(t, err)

	_, err = c.Batches().RemoveShipments(ctx, "batch_1", params)
	require.NoError(t, err)

	assert.Equal(t, []string{"/v2/batches/batch_1/add_shipments", "/v2/batches/batch_1/remove_shipments"}, paths)
}

func TestBatchesClient_AddShipments_RequiresShipments(t *testing.T) {
	t.Parallel()

	c := newLatestClient(t, failingServer(t))

	_, err := c.Batches().AddShipments(context.Background(), "batch_1", &easypost.BatchShipmentsParams{ShipmentIDs: []string{""}})

	var paramErr *easypost.MissingParameterError
	require.ErrorAs(t, err, &paramErr)
	assert.Equal(t, "shipments", paramErr.Name)
}

func TestBatchesClient_Actions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		call func(context.Context, easypost.BatchesClient) (*easypost.Batch, error)
	}{
		{
			name: "buy",
			path: "/v2/batches/batch_1/buy",
			call: func(ctx context.Context, b easypost.BatchesClient) (*easypost.Batch, error) {
				return b.Buy(ctx, "batch_1")
			},
		},
		{
			name: "label",
			path: "/v2/batches/batch_1/label",
			call: func(ctx context.Context, b easypost.BatchesClient) (*easypost.Batch, error) {
				return b.GenerateLabel(ctx, "batch_1", &easypost.LabelParams{FileFormat: easypost.Ptr("PDF")})
			},
		},
		{
			name: "scan form",
			path: "/v2/batches/batch_1/scan_form",
			call: func(ctx context.Context, b easypost.BatchesClient) (*easypost.Batch, error) {
				return b.GenerateScanForm(ctx, "batch_1")
			},
		},
		{
			name: "create and buy",
			path: "/v2/batches/create_and_buy",
			call: func(ctx context.Context, b easypost.BatchesClient) (*easypost.Batch, error) {
				return b.CreateAndBuy(ctx, &easypost.BatchCreateParams{Reference: easypost.Ptr("x")})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, tt.path, r.URL.Path)
				writeJSON(w, http.StatusOK, `{"id": "batch_1", "state": "purchased"}`)
			})

			c := newLatestClient(t, server)

			batch, err := tt.call(context.Background(), c.Batches())
			require.NoError(t, err)
			assert.Equal(t, "purchased", batch.State)
		})
	}
}

func TestBatchesClient_GenerateLabel_RequiresFormat(t *testing.T) {
	t.Parallel()

	c := newLatestClient(t, failingServer(t))

	_, err := c.Batches().GenerateLabel(context.Background(), "batch_1", nil)
	require.ErrorIs(t, err, easypost.ErrMissingParameter)

	_, err = c.Batches().Buy(context.Background(), "")
	require.ErrorIs(t, err, easypost.ErrMissingProperty)
}

func TestBatchesClient_All(t *testing.T) {
	t.Parallel()

	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/batches", r.URL.Path)
		assert.Equal(t, "batch_9", r.URL.Query().Get("after_id"))
		writeJSON(w, http.StatusOK, `{"batches": [{"id": "batch_10"}], "has_more": false}`)
	})

	c := newLatestClient(t, server)

	page, err := c.Batches().All(context.Background(), easypost.NewListParams().WithAfterID("batch_9"))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.NotNil(t, page.Filters)
	assert.Equal(t, "batch_9", *page.Filters.AfterID)
}
