package easypost

import "time"

// AddressCreateParams creates an address. It also describes addresses nested in
// shipments and orders.
type AddressCreateParams struct {
	Name            *string
	Company         *string
	Street1         *string
	Street2         *string
	City            *string
	State           *string
	Zip             *string
	Country         *string
	Phone           *string
	Email           *string
	Residential     *bool
	CarrierFacility *string
	FederalTaxID    *string
	StateTaxID      *string
	// Verify lists verifications to run, e.g. "delivery" or "zip4".
	Verify []string
	// VerifyStrict lists verifications that must pass for creation to succeed.
	VerifyStrict []string

	Overrides
}

func (p *AddressCreateParams) ParamRoot() string { return "address" }

func (p *AddressCreateParams) ParamFields() []Field {
	return []Field{
		Optional("name", p.Name),
		Optional("company", p.Company),
		Optional("street1", p.Street1),
		Optional("street2", p.Street2),
		Optional("city", p.City),
		Optional("state", p.State),
		Optional("zip", p.Zip),
		Optional("country", p.Country),
		Optional("phone", p.Phone),
		Optional("email", p.Email),
		Optional("residential", p.Residential),
		Optional("carrier_facility", p.CarrierFacility),
		Optional("federal_tax_id", p.FederalTaxID),
		Optional("state_tax_id", p.StateTaxID),
		OptionalList("verify", p.Verify),
		OptionalList("verify_strict", p.VerifyStrict),
	}
}

// ParcelCreateParams creates a parcel.
type ParcelCreateParams struct {
	Length            *float64
	Width             *float64
	Height            *float64
	Weight            *float64
	PredefinedPackage *string

	Overrides
}

func (p *ParcelCreateParams) ParamRoot() string { return "parcel" }

func (p *ParcelCreateParams) ParamFields() []Field {
	return []Field{
		Optional("length", p.Length),
		Optional("width", p.Width),
		Optional("height", p.Height),
		Required("weight", p.Weight),
		Optional("predefined_package", p.PredefinedPackage),
	}
}

// CustomsItemCreateParams creates a customs item.
type CustomsItemCreateParams struct {
	Description    *string
	Quantity       *int
	Weight         *float64
	Value          *float64
	HSTariffNumber *string
	OriginCountry  *string
	Code           *string
	Currency       *string

	Overrides
}

func (p *CustomsItemCreateParams) ParamRoot() string { return "customs_item" }

func (p *CustomsItemCreateParams) ParamFields() []Field {
	return []Field{
		Optional("description", p.Description),
		Optional("quantity", p.Quantity),
		Optional("weight", p.Weight),
		Optional("value", p.Value),
		Optional("hs_tariff_number", p.HSTariffNumber),
		Optional("origin_country", p.OriginCountry),
		Optional("code", p.Code),
		Optional("currency", p.Currency),
	}
}

// CustomsInfoCreateParams creates a customs declaration with its items.
type CustomsInfoCreateParams struct {
	ContentsType        *string
	ContentsExplanation *string
	CustomsCertify      *bool
	CustomsSigner       *string
	EELPFC              *string
	NonDeliveryOption   *string
	RestrictionType     *string
	RestrictionComments *string
	Declaration         *string
	CustomsItems        []*CustomsItemCreateParams

	Overrides
}

func (p *CustomsInfoCreateParams) ParamRoot() string { return "customs_info" }

func (p *CustomsInfoCreateParams) ParamFields() []Field {
	return []Field{
		Optional("contents_type", p.ContentsType),
		Optional("contents_explanation", p.ContentsExplanation),
		Optional("customs_certify", p.CustomsCertify),
		Optional("customs_signer", p.CustomsSigner),
		Optional("eel_pfc", p.EELPFC),
		Optional("non_delivery_option", p.NonDeliveryOption),
		Optional("restriction_type", p.RestrictionType),
		Optional("restriction_comments", p.RestrictionComments),
		Optional("declaration", p.Declaration),
		OptionalNestedList("customs_items", p.CustomsItems),
	}
}

// ShipmentCreateParams creates a shipment, which is rated on creation.
type ShipmentCreateParams struct {
	Reference       *string
	IsReturn        *bool
	ToAddress       *AddressCreateParams
	FromAddress     *AddressCreateParams
	ReturnAddress   *AddressCreateParams
	BuyerAddress    *AddressCreateParams
	Parcel          *ParcelCreateParams
	CustomsInfo     *CustomsInfoCreateParams
	Options         map[string]any
	CarrierAccounts []string
	// Service and Carrier buy the matching rate in the same call.
	Service *string
	Carrier *string

	Overrides
}

func (p *ShipmentCreateParams) ParamRoot() string { return "shipment" }

func (p *ShipmentCreateParams) ParamFields() []Field {
	return []Field{
		Optional("reference", p.Reference),
		Optional("is_return", p.IsReturn),
		OptionalNested("to_address", p.ToAddress),
		OptionalNested("from_address", p.FromAddress),
		OptionalNested("return_address", p.ReturnAddress),
		OptionalNested("buyer_address", p.BuyerAddress),
		OptionalNested("parcel", p.Parcel),
		OptionalNested("customs_info", p.CustomsInfo),
		OptionalMap("options", p.Options),
		OptionalList("carrier_accounts", p.CarrierAccounts),
		Optional("service", p.Service).For(Latest),
		Optional("carrier", p.Carrier).For(Latest),
	}
}

// ShipmentBuyParams buys one of a shipment's rates.
type ShipmentBuyParams struct {
	RateID       *string
	Insurance    *string
	EndShipperID *string

	Overrides
}

func (p *ShipmentBuyParams) ParamRoot() string { return "" }

func (p *ShipmentBuyParams) ParamFields() []Field {
	return []Field{
		Required("rate.id", p.RateID),
		Optional("insurance", p.Insurance),
		Optional("end_shipper_id", p.EndShipperID).For(Latest),
	}
}

// ShipmentRerateParams regenerates a shipment's rates.
type ShipmentRerateParams struct {
	CarrierAccounts []string

	Overrides
}

func (p *ShipmentRerateParams) ParamRoot() string { return "" }

func (p *ShipmentRerateParams) ParamFields() []Field {
	return []Field{
		OptionalList("carrier_accounts", p.CarrierAccounts),
	}
}

// LabelParams converts a label to another file format.
type LabelParams struct {
	FileFormat *string

	Overrides
}

func (p *LabelParams) ParamRoot() string { return "" }

func (p *LabelParams) ParamFields() []Field {
	return []Field{
		Required("file_format", p.FileFormat),
	}
}

// ShipmentInsureParams insures a purchased shipment.
type ShipmentInsureParams struct {
	Amount *string

	Overrides
}

func (p *ShipmentInsureParams) ParamRoot() string { return "" }

func (p *ShipmentInsureParams) ParamFields() []Field {
	return []Field{
		Required("amount", p.Amount),
	}
}

// BatchCreateParams creates a batch, optionally with new shipments.
type BatchCreateParams struct {
	Reference *string
	Shipments []*ShipmentCreateParams

	Overrides
}

func (p *BatchCreateParams) ParamRoot() string { return "batch" }

func (p *BatchCreateParams) ParamFields() []Field {
	return []Field{
		Optional("reference", p.Reference),
		OptionalNestedList("shipments", p.Shipments),
	}
}

// BatchShipmentsParams adds existing shipments to, or removes them from, a batch.
// Empty IDs are skipped.
type BatchShipmentsParams struct {
	ShipmentIDs []string

	Overrides
}

func (p *BatchShipmentsParams) ParamRoot() string { return "" }

func (p *BatchShipmentsParams) ParamFields() []Field {
	refs := make([]map[string]any, 0, len(p.ShipmentIDs))

	for _, id := range p.ShipmentIDs {
		if id != "" {
			refs = append(refs, map[string]any{"id": id})
		}
	}

	return []Field{
		RequiredList("shipments", refs),
	}
}

// OrderCreateParams creates an order.
type OrderCreateParams struct {
	Reference       *string
	IsReturn        *bool
	ToAddress       *AddressCreateParams
	FromAddress     *AddressCreateParams
	ReturnAddress   *AddressCreateParams
	BuyerAddress    *AddressCreateParams
	CustomsInfo     *CustomsInfoCreateParams
	Shipments       []*ShipmentCreateParams
	CarrierAccounts []string

	Overrides
}

func (p *OrderCreateParams) ParamRoot() string { return "order" }

func (p *OrderCreateParams) ParamFields() []Field {
	return []Field{
		Optional("reference", p.Reference),
		Optional("is_return", p.IsReturn),
		OptionalNested("to_address", p.ToAddress),
		OptionalNested("from_address", p.FromAddress),
		OptionalNested("return_address", p.ReturnAddress),
		OptionalNested("buyer_address", p.BuyerAddress),
		OptionalNested("customs_info", p.CustomsInfo),
		OptionalNestedList("shipments", p.Shipments),
		OptionalList("carrier_accounts", p.CarrierAccounts),
	}
}

// OrderBuyParams buys an order with a carrier and service.
type OrderBuyParams struct {
	Carrier *string
	Service *string

	Overrides
}

func (p *OrderBuyParams) ParamRoot() string { return "" }

func (p *OrderBuyParams) ParamFields() []Field {
	return []Field{
		Required("carrier", p.Carrier),
		Required("service", p.Service),
	}
}

// OrderBuyParamsFromRate builds buy parameters from one of the order's rates.
func OrderBuyParamsFromRate(rate Rate) (*OrderBuyParams, error) {
	if rate.Carrier == "" {
		return nil, &MissingPropertyError{Property: "carrier"}
	}

	if rate.Service == "" {
		return nil, &MissingPropertyError{Property: "service"}
	}

	return &OrderBuyParams{Carrier: &rate.Carrier, Service: &rate.Service}, nil
}

// ReportCreateParams requests a report.
type ReportCreateParams struct {
	StartDate         *string
	EndDate           *string
	IncludeChildren   *bool
	SendEmail         *bool
	Columns           []string
	AdditionalColumns []string

	Overrides
}

// NewReportDateRange formats start and end as report dates.
func NewReportDateRange(start, end time.Time) (*string, *string) {
	const layout = "2006-01-02"

	startDate := start.Format(layout)
	endDate := end.Format(layout)

	return &startDate, &endDate
}

func (p *ReportCreateParams) ParamRoot() string { return "" }

func (p *ReportCreateParams) ParamFields() []Field {
	return []Field{
		Required("start_date", p.StartDate),
		Required("end_date", p.EndDate),
		Optional("include_children", p.IncludeChildren),
		Optional("send_email", p.SendEmail),
		OptionalList("columns", p.Columns),
		OptionalList("additional_columns", p.AdditionalColumns),
	}
}

// CarrierAccountCreateParams creates a carrier account in the current shape.
type CarrierAccountCreateParams struct {
	Type             *string
	Description      *string
	Reference        *string
	Credentials      map[string]any
	TestCredentials  map[string]any
	RegistrationData map[string]any

	Overrides
}

func (p *CarrierAccountCreateParams) ParamRoot() string { return "carrier_account" }

func (p *CarrierAccountCreateParams) ParamFields() []Field {
	return []Field{
		Required("type", p.Type),
		Optional("description", p.Description),
		Optional("reference", p.Reference),
		OptionalMap("credentials", p.Credentials),
		OptionalMap("test_credentials", p.TestCredentials),
		OptionalMap("registration_data", p.RegistrationData).For(Latest),
	}
}

// CarrierAccountUpdateParams updates a carrier account in the current shape.
type CarrierAccountUpdateParams struct {
	Description     *string
	Reference       *string
	Credentials     map[string]any
	TestCredentials map[string]any

	Overrides
}

func (p *CarrierAccountUpdateParams) ParamRoot() string { return "carrier_account" }

func (p *CarrierAccountUpdateParams) ParamFields() []Field {
	return []Field{
		Optional("description", p.Description),
		Optional("reference", p.Reference),
		OptionalMap("credentials", p.Credentials),
		OptionalMap("test_credentials", p.TestCredentials),
	}
}

// LegacyCarrierAccountParams creates or updates a carrier account in the V2 shape,
// where credentials are flat string maps.
type LegacyCarrierAccountParams struct {
	Type            *string
	Description     *string
	Reference       *string
	Credentials     map[string]string
	TestCredentials map[string]string

	Overrides
}

func (p *LegacyCarrierAccountParams) ParamRoot() string { return "carrier_account" }

func (p *LegacyCarrierAccountParams) ParamFields() []Field {
	return []Field{
		Optional("type", p.Type).For(V2),
		Optional("description", p.Description).For(V2),
		Optional("reference", p.Reference).For(V2),
		OptionalMap("credentials", p.Credentials).For(V2),
		OptionalMap("test_credentials", p.TestCredentials).For(V2),
	}
}

// CreditCardFundParams adds funds to the wallet from a credit card.
type CreditCardFundParams struct {
	// Amount is in cents.
	Amount *string

	Overrides
}

func (p *CreditCardFundParams) ParamRoot() string { return "" }

func (p *CreditCardFundParams) ParamFields() []Field {
	return []Field{
		Required("amount", p.Amount).For(V2),
	}
}

// EndShipperParams creates or updates an end shipper. Every address field is required.
type EndShipperParams struct {
	Name    *string
	Company *string
	Street1 *string
	Street2 *string
	City    *string
	State   *string
	Zip     *string
	Country *string
	Phone   *string
	Email   *string

	Overrides
}

func (p *EndShipperParams) ParamRoot() string { return "address" }

func (p *EndShipperParams) ParamFields() []Field {
	return []Field{
		Required("name", p.Name),
		Optional("company", p.Company),
		Required("street1", p.Street1),
		Optional("street2", p.Street2),
		Required("city", p.City),
		Required("state", p.State),
		Required("zip", p.Zip),
		Required("country", p.Country),
		Required("phone", p.Phone),
		Required("email", p.Email),
	}
}

// StatelessRateParams rates a shipment without creating it.
type StatelessRateParams struct {
	ToAddress       *AddressCreateParams
	FromAddress     *AddressCreateParams
	Parcel          *ParcelCreateParams
	CarrierAccounts []string

	Overrides
}

func (p *StatelessRateParams) ParamRoot() string { return "shipment" }

func (p *StatelessRateParams) ParamFields() []Field {
	return []Field{
		RequiredNested("to_address", p.ToAddress).For(Beta),
		RequiredNested("from_address", p.FromAddress).For(Beta),
		RequiredNested("parcel", p.Parcel).For(Beta),
		OptionalList("carrier_accounts", p.CarrierAccounts).For(Beta),
	}
}
