package easypost

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fivetwenty-io/easypost-go/internal/constants"
)

// ErrUnsupportedBatchOperation is returned for an operation without a Run function.
var ErrUnsupportedBatchOperation = errors.New("unsupported batch operation")

// BatchOperation is one unit of work for a BatchExecutor.
type BatchOperation struct {
	ID       string
	Type     string // "create", "get", "buy", "refund", "verify"
	Resource string // "shipment", "address", "rate"
	Data     interface{}
	Run      func(ctx context.Context, client Client) (interface{}, error)
	Callback func(result *BatchResult)
}

// BatchResult is the outcome of one BatchOperation.
type BatchResult struct {
	ID       string
	Success  bool
	Data     interface{}
	Error    error
	Duration time.Duration
}

// BatchExecutor runs independent operations concurrently against a Client. It is
// unrelated to the Batch resource, which groups shipments server-side.
type BatchExecutor struct {
	client      Client
	concurrency int
	timeout     time.Duration
}

// NewBatchExecutor creates an executor running at most concurrency operations at once.
func NewBatchExecutor(client Client, concurrency int) *BatchExecutor {
	if concurrency <= 0 {
		concurrency = constants.DefaultConcurrencyLimit
	}

	return &BatchExecutor{
		client:      client,
		concurrency: concurrency,
		timeout:     constants.DefaultBatchTimeout,
	}
}

// SetTimeout bounds each operation.
func (b *BatchExecutor) SetTimeout(timeout time.Duration) {
	b.timeout = timeout
}

// Execute runs operations and returns their results in input order. A failed
// operation does not stop the others; its error is in its result.
func (b *BatchExecutor) Execute(ctx context.Context, operations []BatchOperation) ([]BatchResult, error) {
	results := make([]BatchResult, len(operations))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(b.concurrency)

	for index, operation := range operations {
		group.Go(func() error {
			opCtx, cancel := context.WithTimeout(groupCtx, b.timeout)
			defer cancel()

			start := time.Now()
			result := b.executeOperation(opCtx, operation)
			result.Duration = time.Since(start)
			results[index] = result

			if operation.Callback != nil {
				operation.Callback(&results[index])
			}

			return nil
		})
	}

	_ = group.Wait()

	if err := ctx.Err(); err != nil {
		return results, fmt.Errorf("batch interrupted: %w", err)
	}

	return results, nil
}

func (b *BatchExecutor) executeOperation(ctx context.Context, operation BatchOperation) BatchResult {
	result := BatchResult{ID: operation.ID}

	if operation.Run == nil {
		result.Error = fmt.Errorf("%w: %s %s", ErrUnsupportedBatchOperation, operation.Type, operation.Resource)

		return result
	}

	data, err := operation.Run(ctx, b.client)
	if err != nil {
		result.Error = err

		return result
	}

	result.Success = true
	result.Data = data

	return result
}

// BatchBuilder assembles operations for a BatchExecutor.
type BatchBuilder struct {
	operations []BatchOperation
}

// NewBatchBuilder creates an empty builder.
func NewBatchBuilder() *BatchBuilder {
	return &BatchBuilder{operations: make([]BatchOperation, 0)}
}

// AddCreateAddress queues an address creation.
func (b *BatchBuilder) AddCreateAddress(id string, params *AddressCreateParams) *BatchBuilder {
	return b.AddOperation(BatchOperation{
		ID:       id,
		Type:     "create",
		Resource: "address",
		Data:     params,
		Run: func(ctx context.Context, client Client) (interface{}, error) {
			return client.Addresses().Create(ctx, params)
		},
	})
}

// AddVerifyAddress queues verification of an existing address.
func (b *BatchBuilder) AddVerifyAddress(id, addressID string) *BatchBuilder {
	return b.AddOperation(BatchOperation{
		ID:       id,
		Type:     "verify",
		Resource: "address",
		Data:     addressID,
		Run: func(ctx context.Context, client Client) (interface{}, error) {
			return client.Addresses().Verify(ctx, addressID)
		},
	})
}

// AddGetShipment queues a shipment retrieval.
func (b *BatchBuilder) AddGetShipment(id, shipmentID string) *BatchBuilder {
	return b.AddOperation(BatchOperation{
		ID:       id,
		Type:     "get",
		Resource: "shipment",
		Data:     shipmentID,
		Run: func(ctx context.Context, client Client) (interface{}, error) {
			return client.Shipments().Retrieve(ctx, shipmentID)
		},
	})
}

// AddBuyShipment queues a shipment purchase.
func (b *BatchBuilder) AddBuyShipment(id, shipmentID string, params *ShipmentBuyParams) *BatchBuilder {
	return b.AddOperation(BatchOperation{
		ID:       id,
		Type:     "buy",
		Resource: "shipment",
		Data:     params,
		Run: func(ctx context.Context, client Client) (interface{}, error) {
			return client.Shipments().Buy(ctx, shipmentID, params)
		},
	})
}

// AddRefundShipment queues a label refund.
func (b *BatchBuilder) AddRefundShipment(id, shipmentID string) *BatchBuilder {
	return b.AddOperation(BatchOperation{
		ID:       id,
		Type:     "refund",
		Resource: "shipment",
		Data:     shipmentID,
		Run: func(ctx context.Context, client Client) (interface{}, error) {
			return client.Shipments().Refund(ctx, shipmentID)
		},
	})
}

// AddGetRate queues a rate retrieval.
func (b *BatchBuilder) AddGetRate(id, rateID string) *BatchBuilder {
	return b.AddOperation(BatchOperation{
		ID:       id,
		Type:     "get",
		Resource: "rate",
		Data:     rateID,
		Run: func(ctx context.Context, client Client) (interface{}, error) {
			return client.Rates().Retrieve(ctx, rateID)
		},
	})
}

// AddOperation queues a custom operation.
func (b *BatchBuilder) AddOperation(operation BatchOperation) *BatchBuilder {
	b.operations = append(b.operations, operation)

	return b
}

// Build returns the queued operations.
func (b *BatchBuilder) Build() []BatchOperation {
	return b.operations
}
