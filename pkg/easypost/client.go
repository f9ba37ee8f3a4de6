package easypost

import (
	"context"
)

// Client is bound to the Latest API version.
type Client interface {
	Addresses() AddressesClient
	Parcels() ParcelsClient
	CustomsInfos() CustomsInfosClient
	CustomsItems() CustomsItemsClient
	Shipments() ShipmentsClient
	Rates() RatesClient
	Batches() BatchesClient
	Reports() ReportsClient
	APIKeys() APIKeysClient
	CarrierAccounts() CarrierAccountsClient
	Insurances() InsurancesClient
	Events() EventsClient
	EndShippers() EndShippersClient

	Version() APIVersion
}

// V2Client is bound to the V2 API version.
type V2Client interface {
	Addresses() AddressesClient
	Parcels() ParcelsClient
	Shipments() ShipmentsClient
	Rates() RatesClient
	Batches() BatchesClient
	Orders() OrdersClient
	APIKeys() APIKeysClient
	CarrierAccounts() LegacyCarrierAccountsClient
	CreditCards() CreditCardsClient

	Version() APIVersion
}

// BetaClient is bound to the Beta API version.
type BetaClient interface {
	EndShippers() EndShippersClient
	Rates() BetaRatesClient

	Version() APIVersion
}

// Logger is the structured logger the client writes to.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// PageFetcher fetches one page of a list operation.
type PageFetcher[T Identifiable] func(ctx context.Context, params *ListParams) (*Collection[T], error)

// AddressesClient defines operations for addresses.
type AddressesClient interface {
	Create(ctx context.Context, params *AddressCreateParams) (*Address, error)
	CreateAndVerify(ctx context.Context, params *AddressCreateParams) (*Address, error)
	Retrieve(ctx context.Context, id string) (*Address, error)
	All(ctx context.Context, params *ListParams) (*Collection[Address], error)
	NextPage(ctx context.Context, page *Collection[Address]) (*Collection[Address], error)
	Verify(ctx context.Context, id string) (*Address, error)
}

// ParcelsClient defines operations for parcels.
type ParcelsClient interface {
	Create(ctx context.Context, params *ParcelCreateParams) (*Parcel, error)
	Retrieve(ctx context.Context, id string) (*Parcel, error)
}

// CustomsInfosClient defines operations for customs declarations.
type CustomsInfosClient interface {
	Create(ctx context.Context, params *CustomsInfoCreateParams) (*CustomsInfo, error)
	Retrieve(ctx context.Context, id string) (*CustomsInfo, error)
}

// CustomsItemsClient defines operations for customs items.
type CustomsItemsClient interface {
	Create(ctx context.Context, params *CustomsItemCreateParams) (*CustomsItem, error)
	Retrieve(ctx context.Context, id string) (*CustomsItem, error)
}

// ShipmentsClient defines operations for shipments.
type ShipmentsClient interface {
	Create(ctx context.Context, params *ShipmentCreateParams) (*Shipment, error)
	Retrieve(ctx context.Context, id string) (*Shipment, error)
	All(ctx context.Context, params *ListParams) (*Collection[Shipment], error)
	NextPage(ctx context.Context, page *Collection[Shipment]) (*Collection[Shipment], error)
	Buy(ctx context.Context, id string, params *ShipmentBuyParams) (*Shipment, error)
	RegenerateRates(ctx context.Context, id string, params *ShipmentRerateParams) (*Shipment, error)
	Smartrates(ctx context.Context, id string) ([]Smartrate, error)
	LowestSmartrate(ctx context.Context, id string, deliveryDays int, accuracy SmartrateAccuracy) (*Smartrate, error)
	GenerateLabel(ctx context.Context, id string, params *LabelParams) (*Shipment, error)
	Insure(ctx context.Context, id string, params *ShipmentInsureParams) (*Shipment, error)
	Refund(ctx context.Context, id string) (*Shipment, error)
}

// RatesClient defines operations for rates.
type RatesClient interface {
	Retrieve(ctx context.Context, id string) (*Rate, error)
}

// BetaRatesClient defines beta rating operations.
type BetaRatesClient interface {
	RetrieveStateless(ctx context.Context, params *StatelessRateParams) ([]Rate, error)
}

// BatchesClient defines operations for batches.
type BatchesClient interface {
	Create(ctx context.Context, params *BatchCreateParams) (*Batch, error)
	CreateAndBuy(ctx context.Context, params *BatchCreateParams) (*Batch, error)
	Retrieve(ctx context.Context, id string) (*Batch, error)
	All(ctx context.Context, params *ListParams) (*Collection[Batch], error)
	NextPage(ctx context.Context, page *Collection[Batch]) (*Collection[Batch], error)
	AddShipments(ctx context.Context, id string, params *BatchShipmentsParams) (*Batch, error)
	RemoveShipments(ctx context.Context, id string, params *BatchShipmentsParams) (*Batch, error)
	Buy(ctx context.Context, id string) (*Batch, error)
	GenerateLabel(ctx context.Context, id string, params *LabelParams) (*Batch, error)
	GenerateScanForm(ctx context.Context, id string) (*Batch, error)
	// WaitForState polls the batch until it reaches state. It fails with
	// ErrBatchFailed on a failed state and ErrPollTimeout when the wait runs out.
	WaitForState(ctx context.Context, id, state string) (*Batch, error)
}

// OrdersClient defines operations for orders.
type OrdersClient interface {
	Create(ctx context.Context, params *OrderCreateParams) (*Order, error)
	Retrieve(ctx context.Context, id string) (*Order, error)
	GetRates(ctx context.Context, id string) (*Order, error)
	Buy(ctx context.Context, id string, params *OrderBuyParams) (*Order, error)
}

// ReportsClient defines operations for reports of one type, e.g. "shipment".
type ReportsClient interface {
	Create(ctx context.Context, reportType string, params *ReportCreateParams) (*Report, error)
	Retrieve(ctx context.Context, id string) (*Report, error)
	All(ctx context.Context, reportType string, params *ListParams) (*Collection[Report], error)
	NextPage(ctx context.Context, reportType string, page *Collection[Report]) (*Collection[Report], error)
	// WaitUntilAvailable polls the report until it can be downloaded. It fails with
	// ErrReportFailed when generation fails and ErrPollTimeout when the wait runs out.
	WaitUntilAvailable(ctx context.Context, id string) (*Report, error)
}

// APIKeysClient defines operations for API keys.
type APIKeysClient interface {
	All(ctx context.Context) ([]APIKey, error)
}

// CarrierAccountsClient defines operations for carrier accounts.
type CarrierAccountsClient interface {
	Create(ctx context.Context, params *CarrierAccountCreateParams) (*CarrierAccount, error)
	Retrieve(ctx context.Context, id string) (*CarrierAccount, error)
	All(ctx context.Context) ([]CarrierAccount, error)
	Update(ctx context.Context, id string, params *CarrierAccountUpdateParams) (*CarrierAccount, error)
	Delete(ctx context.Context, id string) error
}

// LegacyCarrierAccountsClient defines operations for V2 carrier accounts.
type LegacyCarrierAccountsClient interface {
	Create(ctx context.Context, params *LegacyCarrierAccountParams) (*LegacyCarrierAccount, error)
	Retrieve(ctx context.Context, id string) (*LegacyCarrierAccount, error)
	All(ctx context.Context) ([]LegacyCarrierAccount, error)
	Update(ctx context.Context, id string, params *LegacyCarrierAccountParams) (*LegacyCarrierAccount, error)
	Delete(ctx context.Context, id string) error
}

// CreditCardsClient defines billing operations.
type CreditCardsClient interface {
	Fund(ctx context.Context, id string, params *CreditCardFundParams) error
	Delete(ctx context.Context, id string) error
}

// InsurancesClient defines operations for standalone insurance.
type InsurancesClient interface {
	Create(ctx context.Context, params *RawParams) (*Insurance, error)
	Retrieve(ctx context.Context, id string) (*Insurance, error)
	All(ctx context.Context, params *ListParams) (*Collection[Insurance], error)
	NextPage(ctx context.Context, page *Collection[Insurance]) (*Collection[Insurance], error)
}

// EventsClient defines operations for webhook events.
type EventsClient interface {
	Retrieve(ctx context.Context, id string) (*Event, error)
	All(ctx context.Context, params *ListParams) (*Collection[Event], error)
	NextPage(ctx context.Context, page *Collection[Event]) (*Collection[Event], error)
}

// EndShippersClient defines operations for end shippers.
type EndShippersClient interface {
	Create(ctx context.Context, params *EndShipperParams) (*EndShipper, error)
	Retrieve(ctx context.Context, id string) (*EndShipper, error)
	All(ctx context.Context, params *ListParams) (*Collection[EndShipper], error)
	NextPage(ctx context.Context, page *Collection[EndShipper]) (*Collection[EndShipper], error)
	Update(ctx context.Context, id string, params *EndShipperParams) (*EndShipper, error)
}
