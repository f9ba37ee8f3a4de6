package easypost_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

// MockClient implements easypost.Client for testing. Unmocked services panic.
type MockClient struct {
	easypost.Client
	mock.Mock
}

func (m *MockClient) Rates() easypost.RatesClient {
	args := m.Called()

	return args.Get(0).(easypost.RatesClient)
}

func (m *MockClient) Shipments() easypost.ShipmentsClient {
	args := m.Called()

	return args.Get(0).(easypost.ShipmentsClient)
}

// MockRatesClient implements easypost.RatesClient for testing.
type MockRatesClient struct {
	mock.Mock
}

func (m *MockRatesClient) Retrieve(ctx context.Context, id string) (*easypost.Rate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*easypost.Rate), args.Error(1)
}

// MockShipmentsClient implements the shipment calls the executor makes.
type MockShipmentsClient struct {
	easypost.ShipmentsClient
	mock.Mock
}

func (m *MockShipmentsClient) Refund(ctx context.Context, id string) (*easypost.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*easypost.Shipment), args.Error(1)
}

func TestBatchExecutor_Execute(t *testing.T) {
	t.Parallel()

	rates := &MockRatesClient{}
	rates.On("Retrieve", mock.Anything, "rate_1").Return(&easypost.Rate{Object: easypost.Object{ID: "rate_1"}}, nil)
	rates.On("Retrieve", mock.Anything, "rate_404").Return(nil, &easypost.APIError{StatusCode: 404})

	shipments := &MockShipmentsClient{}
	shipments.On("Refund", mock.Anything, "shp_1").Return(&easypost.Shipment{Object: easypost.Object{ID: "shp_1"}}, nil)

	client := &MockClient{}
	client.On("Rates").Return(rates)
	client.On("Shipments").Return(shipments)

	var callbacks atomic.Int32

	operations := easypost.NewBatchBuilder().
		AddGetRate("op-1", "rate_1").
		AddGetRate("op-2", "rate_404").
		AddRefundShipment("op-3", "shp_1").
		AddOperation(easypost.BatchOperation{
			ID: "op-4",
			Callback: func(result *easypost.BatchResult) {
				callbacks.Add(1)
			},
		}).
		Build()

	results, err := easypost.NewBatchExecutor(client, 2).Execute(context.Background(), operations)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, "op-1", results[0].ID)
	assert.True(t, results[0].Success)
	assert.Equal(t, "rate_1", results[0].Data.(*easypost.Rate).ID)

	assert.False(t, results[1].Success)
	assert.True(t, easypost.IsNotFound(results[1].Error))

	assert.True(t, results[2].Success)
	assert.Equal(t, "shp_1", results[2].Data.(*easypost.Shipment).ID)

	require.ErrorIs(t, results[3].Error, easypost.ErrUnsupportedBatchOperation)
	assert.Equal(t, int32(1), callbacks.Load())

	rates.AssertExpectations(t)
	shipments.AssertExpectations(t)
}

func TestBatchExecutor_ConcurrencyLimit(t *testing.T) {
	t.Parallel()

	var (
		mu      sync.Mutex
		running int
		peak    int
	)

	builder := easypost.NewBatchBuilder()

	for range 10 {
		builder.AddOperation(easypost.BatchOperation{
			Run: func(ctx context.Context, client easypost.Client) (interface{}, error) {
				mu.Lock()
				running++
				peak = max(peak, running)
				mu.Unlock()

				time.Sleep(5 * time.Millisecond)

				mu.Lock()
				running--
				mu.Unlock()

				return nil, nil
			},
		})
	}

	results, err := easypost.NewBatchExecutor(nil, 3).Execute(context.Background(), builder.Build())
	require.NoError(t, err)
	require.Len(t, results, 10)
	assert.LessOrEqual(t, peak, 3)

	for _, result := range results {
		assert.True(t, result.Success)
	}
}

func TestBatchExecutor_Timeout(t *testing.T) {
	t.Parallel()

	executor := easypost.NewBatchExecutor(nil, 1)
	executor.SetTimeout(10 * time.Millisecond)

	results, err := executor.Execute(context.Background(), []easypost.BatchOperation{{
		ID: "slow",
		Run: func(ctx context.Context, client easypost.Client) (interface{}, error) {
			<-ctx.Done()

			return nil, ctx.Err()
		},
	}})
	require.NoError(t, err)
	require.ErrorIs(t, results[0].Error, context.DeadlineExceeded)
	assert.GreaterOrEqual(t, results[0].Duration, 5*time.Millisecond)
}

func TestBatchExecutor_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	errStopped := errors.New("stopped")

	results, err := easypost.NewBatchExecutor(nil, 1).Execute(ctx, []easypost.BatchOperation{{
		Run: func(ctx context.Context, client easypost.Client) (interface{}, error) {
			if ctx.Err() != nil {
				return nil, errStopped
			}

			return "ran", nil
		},
	}})
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 1)
	require.ErrorIs(t, results[0].Error, errStopped)
}

func TestBatchBuilder(t *testing.T) {
	t.Parallel()

	operations := easypost.NewBatchBuilder().
		AddCreateAddress("a", &easypost.AddressCreateParams{}).
		AddVerifyAddress("b", "adr_1").
		AddGetShipment("c", "shp_1").
		AddBuyShipment("d", "shp_1", &easypost.ShipmentBuyParams{RateID: easypost.Ptr("rate_1")}).
		AddRefundShipment("e", "shp_1").
		AddGetRate("f", "rate_1").
		Build()

	require.Len(t, operations, 6)

	kinds := make([]string, 0, len(operations))
	for _, operation := range operations {
		assert.NotNil(t, operation.Run, operation.ID)
		kinds = append(kinds, operation.Type+" "+operation.Resource)
	}

	assert.Equal(t, []string{
		"create address",
		"verify address",
		"get shipment",
		"buy shipment",
		"refund shipment",
		"get rate",
	}, kinds)
}
