package easypost

import (
	"encoding/json"
	"time"
)

// Address represents a postal address.
type Address struct {
	Object `yaml:",inline"`

	Name            string         `json:"name,omitempty"             yaml:"name,omitempty"`
	Company         string         `json:"company,omitempty"          yaml:"company,omitempty"`
	Street1         string         `json:"street1,omitempty"          yaml:"street1,omitempty"`
	Street2         string         `json:"street2,omitempty"          yaml:"street2,omitempty"`
	City            string         `json:"city,omitempty"             yaml:"city,omitempty"`
	State           string         `json:"state,omitempty"            yaml:"state,omitempty"`
	Zip             string         `json:"zip,omitempty"              yaml:"zip,omitempty"`
	Country         string         `json:"country,omitempty"          yaml:"country,omitempty"`
	Phone           string         `json:"phone,omitempty"            yaml:"phone,omitempty"`
	Email           string         `json:"email,omitempty"            yaml:"email,omitempty"`
	Residential     *bool          `json:"residential,omitempty"      yaml:"residential,omitempty"`
	CarrierFacility string         `json:"carrier_facility,omitempty" yaml:"carrier_facility,omitempty"`
	FederalTaxID    string         `json:"federal_tax_id,omitempty"   yaml:"federal_tax_id,omitempty"`
	StateTaxID      string         `json:"state_tax_id,omitempty"     yaml:"state_tax_id,omitempty"`
	Verifications   *Verifications `json:"verifications,omitempty"    yaml:"verifications,omitempty"`
}

// Verifications holds the results of address verification.
type Verifications struct {
	Delivery *Verification `json:"delivery,omitempty" yaml:"delivery,omitempty"`
	Zip4     *Verification `json:"zip4,omitempty"     yaml:"zip4,omitempty"`
}

// Verification is the outcome of one verification type.
type Verification struct {
	Success bool                   `json:"success"           yaml:"success"`
	Errors  []FieldError           `json:"errors,omitempty"  yaml:"errors,omitempty"`
	Details map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
}

// Parcel represents package dimensions and weight.
type Parcel struct {
	Object `yaml:",inline"`

	Length            Amount `json:"length,omitempty"             yaml:"length,omitempty"`
	Width             Amount `json:"width,omitempty"              yaml:"width,omitempty"`
	Height            Amount `json:"height,omitempty"             yaml:"height,omitempty"`
	Weight            Amount `json:"weight"                       yaml:"weight"`
	PredefinedPackage string `json:"predefined_package,omitempty" yaml:"predefined_package,omitempty"`
}

// CustomsItem is one line of a customs declaration.
type CustomsItem struct {
	Object `yaml:",inline"`

	Description    string `json:"description,omitempty"      yaml:"description,omitempty"`
	Quantity       int    `json:"quantity,omitempty"         yaml:"quantity,omitempty"`
	Weight         Amount `json:"weight,omitempty"           yaml:"weight,omitempty"`
	Value          Amount `json:"value,omitempty"            yaml:"value,omitempty"`
	HSTariffNumber string `json:"hs_tariff_number,omitempty" yaml:"hs_tariff_number,omitempty"`
	OriginCountry  string `json:"origin_country,omitempty"   yaml:"origin_country,omitempty"`
	Code           string `json:"code,omitempty"             yaml:"code,omitempty"`
	Currency       string `json:"currency,omitempty"         yaml:"currency,omitempty"`
}

// CustomsInfo is a customs declaration.
type CustomsInfo struct {
	Object `yaml:",inline"`

	ContentsType        string        `json:"contents_type,omitempty"        yaml:"contents_type,omitempty"`
	ContentsExplanation string        `json:"contents_explanation,omitempty" yaml:"contents_explanation,omitempty"`
	CustomsCertify      bool          `json:"customs_certify"                yaml:"customs_certify"`
	CustomsSigner       string        `json:"customs_signer,omitempty"       yaml:"customs_signer,omitempty"`
	EELPFC              string        `json:"eel_pfc,omitempty"              yaml:"eel_pfc,omitempty"`
	NonDeliveryOption   string        `json:"non_delivery_option,omitempty"  yaml:"non_delivery_option,omitempty"`
	RestrictionType     string        `json:"restriction_type,omitempty"     yaml:"restriction_type,omitempty"`
	RestrictionComments string        `json:"restriction_comments,omitempty" yaml:"restriction_comments,omitempty"`
	Declaration         string        `json:"declaration,omitempty"          yaml:"declaration,omitempty"`
	CustomsItems        []CustomsItem `json:"customs_items,omitempty"        yaml:"customs_items,omitempty"`
}

// Rate is a carrier price quote for a shipment.
type Rate struct {
	Object `yaml:",inline"`

	Carrier                string     `json:"carrier"                            yaml:"carrier"`
	CarrierAccountID       string     `json:"carrier_account_id,omitempty"       yaml:"carrier_account_id,omitempty"`
	Service                string     `json:"service"                            yaml:"service"`
	Rate                   Amount     `json:"rate"                               yaml:"rate"`
	Currency               string     `json:"currency,omitempty"                 yaml:"currency,omitempty"`
	ListRate               *Amount    `json:"list_rate,omitempty"                yaml:"list_rate,omitempty"`
	ListCurrency           string     `json:"list_currency,omitempty"            yaml:"list_currency,omitempty"`
	RetailRate             *Amount    `json:"retail_rate,omitempty"              yaml:"retail_rate,omitempty"`
	RetailCurrency         string     `json:"retail_currency,omitempty"          yaml:"retail_currency,omitempty"`
	DeliveryDays           *int       `json:"delivery_days,omitempty"            yaml:"delivery_days,omitempty"`
	DeliveryDate           *time.Time `json:"delivery_date,omitempty"            yaml:"delivery_date,omitempty"`
	DeliveryDateGuaranteed bool       `json:"delivery_date_guaranteed,omitempty" yaml:"delivery_date_guaranteed,omitempty"`
	EstDeliveryDays        *int       `json:"est_delivery_days,omitempty"        yaml:"est_delivery_days,omitempty"`
	ShipmentID             string     `json:"shipment_id,omitempty"              yaml:"shipment_id,omitempty"`
	BillingType            string     `json:"billing_type,omitempty"             yaml:"billing_type,omitempty"`
}

// Smartrate is a rate annotated with delivery-time percentiles.
type Smartrate struct {
	Rate `yaml:",inline"`

	TimeInTransit TimeInTransit `json:"time_in_transit" yaml:"time_in_transit"`
}

// TimeInTransit holds the delivery-days estimate at each accuracy percentile.
type TimeInTransit struct {
	Percentile50 *int `json:"percentile_50,omitempty" yaml:"percentile_50,omitempty"`
	Percentile75 *int `json:"percentile_75,omitempty" yaml:"percentile_75,omitempty"`
	Percentile85 *int `json:"percentile_85,omitempty" yaml:"percentile_85,omitempty"`
	Percentile90 *int `json:"percentile_90,omitempty" yaml:"percentile_90,omitempty"`
	Percentile95 *int `json:"percentile_95,omitempty" yaml:"percentile_95,omitempty"`
	Percentile97 *int `json:"percentile_97,omitempty" yaml:"percentile_97,omitempty"`
	Percentile99 *int `json:"percentile_99,omitempty" yaml:"percentile_99,omitempty"`
}

// PostageLabel is a purchased label.
type PostageLabel struct {
	Object `yaml:",inline"`

	LabelDate       *time.Time `json:"label_date,omitempty"       yaml:"label_date,omitempty"`
	LabelFileType   string     `json:"label_file_type,omitempty"  yaml:"label_file_type,omitempty"`
	LabelResolution int        `json:"label_resolution,omitempty" yaml:"label_resolution,omitempty"`
	LabelSize       string     `json:"label_size,omitempty"       yaml:"label_size,omitempty"`
	LabelType       string     `json:"label_type,omitempty"       yaml:"label_type,omitempty"`
	LabelURL        string     `json:"label_url,omitempty"        yaml:"label_url,omitempty"`
	LabelPDFURL     string     `json:"label_pdf_url,omitempty"    yaml:"label_pdf_url,omitempty"`
	LabelZPLURL     string     `json:"label_zpl_url,omitempty"    yaml:"label_zpl_url,omitempty"`
	LabelEPL2URL    string     `json:"label_epl2_url,omitempty"   yaml:"label_epl2_url,omitempty"`
}

// Tracker follows a package through the carrier network.
type Tracker struct {
	Object `yaml:",inline"`

	TrackingCode    string     `json:"tracking_code,omitempty"    yaml:"tracking_code,omitempty"`
	Status          string     `json:"status,omitempty"           yaml:"status,omitempty"`
	StatusDetail    string     `json:"status_detail,omitempty"    yaml:"status_detail,omitempty"`
	Carrier         string     `json:"carrier,omitempty"          yaml:"carrier,omitempty"`
	ShipmentID      string     `json:"shipment_id,omitempty"      yaml:"shipment_id,omitempty"`
	PublicURL       string     `json:"public_url,omitempty"       yaml:"public_url,omitempty"`
	EstDeliveryDate *time.Time `json:"est_delivery_date,omitempty" yaml:"est_delivery_date,omitempty"`
}

// Fee is a charge applied to a shipment.
type Fee struct {
	Object   string `json:"object,omitempty" yaml:"object,omitempty"`
	Type     string `json:"type"             yaml:"type"`
	Amount   Amount `json:"amount"           yaml:"amount"`
	Charged  bool   `json:"charged"          yaml:"charged"`
	Refunded bool   `json:"refunded"         yaml:"refunded"`
}

// Form is a carrier document generated for a shipment.
type Form struct {
	Object `yaml:",inline"`

	FormType string `json:"form_type,omitempty" yaml:"form_type,omitempty"`
	FormURL  string `json:"form_url,omitempty"  yaml:"form_url,omitempty"`
}

// Message is a carrier message attached to rating or purchase.
type Message struct {
	Carrier          string `json:"carrier,omitempty"            yaml:"carrier,omitempty"`
	CarrierAccountID string `json:"carrier_account_id,omitempty" yaml:"carrier_account_id,omitempty"`
	Type             string `json:"type,omitempty"               yaml:"type,omitempty"`
	Message          string `json:"message,omitempty"            yaml:"message,omitempty"`
}

// UnmarshalJSON tolerates carrier messages sent as objects or lists.
func (m *Message) UnmarshalJSON(data []byte) error {
	var raw struct {
		Carrier          string          `json:"carrier"`
		CarrierAccountID string          `json:"carrier_account_id"`
		Type             string          `json:"type"`
		Message          json.RawMessage `json:"message"`
	}

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}

	m.Carrier = raw.Carrier
	m.CarrierAccountID = raw.CarrierAccountID
	m.Type = raw.Type
	m.Message = flattenMessage(raw.Message)

	return nil
}

// Shipment represents a shipment and, once created, its rates.
type Shipment struct {
	Object `yaml:",inline"`

	Reference     string                 `json:"reference,omitempty"      yaml:"reference,omitempty"`
	Status        string                 `json:"status,omitempty"         yaml:"status,omitempty"`
	TrackingCode  string                 `json:"tracking_code,omitempty"  yaml:"tracking_code,omitempty"`
	IsReturn      *bool                  `json:"is_return,omitempty"      yaml:"is_return,omitempty"`
	ToAddress     *Address               `json:"to_address,omitempty"     yaml:"to_address,omitempty"`
	FromAddress   *Address               `json:"from_address,omitempty"   yaml:"from_address,omitempty"`
	ReturnAddress *Address               `json:"return_address,omitempty" yaml:"return_address,omitempty"`
	BuyerAddress  *Address               `json:"buyer_address,omitempty"  yaml:"buyer_address,omitempty"`
	Parcel        *Parcel                `json:"parcel,omitempty"         yaml:"parcel,omitempty"`
	CustomsInfo   *CustomsInfo           `json:"customs_info,omitempty"   yaml:"customs_info,omitempty"`
	Options       map[string]interface{} `json:"options,omitempty"        yaml:"options,omitempty"`
	Rates         []Rate                 `json:"rates,omitempty"          yaml:"rates,omitempty"`
	SelectedRate  *Rate                  `json:"selected_rate,omitempty"  yaml:"selected_rate,omitempty"`
	PostageLabel  *PostageLabel          `json:"postage_label,omitempty"  yaml:"postage_label,omitempty"`
	Tracker       *Tracker               `json:"tracker,omitempty"        yaml:"tracker,omitempty"`
	Messages      []Message              `json:"messages,omitempty"       yaml:"messages,omitempty"`
	Fees          []Fee                  `json:"fees,omitempty"           yaml:"fees,omitempty"`
	Forms         []Form                 `json:"forms,omitempty"          yaml:"forms,omitempty"`
	Insurance     *Amount                `json:"insurance,omitempty"      yaml:"insurance,omitempty"`
	BatchID       string                 `json:"batch_id,omitempty"       yaml:"batch_id,omitempty"`
	BatchStatus   string                 `json:"batch_status,omitempty"   yaml:"batch_status,omitempty"`
	BatchMessage  string                 `json:"batch_message,omitempty"  yaml:"batch_message,omitempty"`
	RefundStatus  string                 `json:"refund_status,omitempty"  yaml:"refund_status,omitempty"`
	USPSZone      json.Number            `json:"usps_zone,omitempty"      yaml:"usps_zone,omitempty"`
}

// LowestRate selects the cheapest of the shipment's rates matching filter.
func (s *Shipment) LowestRate(filter RateFilter) (Rate, error) {
	return LowestRate(s.Rates, filter)
}

// BatchShipment is a shipment's status inside a batch.
type BatchShipment struct {
	ID           string `json:"id"                      yaml:"id"`
	Reference    string `json:"reference,omitempty"     yaml:"reference,omitempty"`
	BatchStatus  string `json:"batch_status,omitempty"  yaml:"batch_status,omitempty"`
	BatchMessage string `json:"batch_message,omitempty" yaml:"batch_message,omitempty"`
	TrackingCode string `json:"tracking_code,omitempty" yaml:"tracking_code,omitempty"`
}

// Batch groups shipments for bulk purchase, labelling and scan forms.
type Batch struct {
	Object `yaml:",inline"`

	State        string          `json:"state,omitempty"         yaml:"state,omitempty"`
	Reference    string          `json:"reference,omitempty"     yaml:"reference,omitempty"`
	NumShipments int             `json:"num_shipments"           yaml:"num_shipments"`
	Shipments    []BatchShipment `json:"shipments,omitempty"     yaml:"shipments,omitempty"`
	Status       map[string]int  `json:"status,omitempty"        yaml:"status,omitempty"`
	LabelURL     string          `json:"label_url,omitempty"     yaml:"label_url,omitempty"`
	ScanForm     *ScanForm       `json:"scan_form,omitempty"     yaml:"scan_form,omitempty"`
	Pickup       json.RawMessage `json:"pickup,omitempty"        yaml:"-"`
	Message      string          `json:"message,omitempty"       yaml:"message,omitempty"`
}

// ScanForm is a carrier manifest for a batch.
type ScanForm struct {
	Object `yaml:",inline"`

	Status        string   `json:"status,omitempty"         yaml:"status,omitempty"`
	Message       string   `json:"message,omitempty"        yaml:"message,omitempty"`
	Address       *Address `json:"address,omitempty"        yaml:"address,omitempty"`
	TrackingCodes []string `json:"tracking_codes,omitempty" yaml:"tracking_codes,omitempty"`
	FormURL       string   `json:"form_url,omitempty"       yaml:"form_url,omitempty"`
	FormFileType  string   `json:"form_file_type,omitempty" yaml:"form_file_type,omitempty"`
	BatchID       string   `json:"batch_id,omitempty"       yaml:"batch_id,omitempty"`
}

// Order is a multi-parcel shipment rated and bought as one unit.
type Order struct {
	Object `yaml:",inline"`

	Reference     string       `json:"reference,omitempty"      yaml:"reference,omitempty"`
	IsReturn      *bool        `json:"is_return,omitempty"      yaml:"is_return,omitempty"`
	ToAddress     *Address     `json:"to_address,omitempty"     yaml:"to_address,omitempty"`
	FromAddress   *Address     `json:"from_address,omitempty"   yaml:"from_address,omitempty"`
	ReturnAddress *Address     `json:"return_address,omitempty" yaml:"return_address,omitempty"`
	BuyerAddress  *Address     `json:"buyer_address,omitempty"  yaml:"buyer_address,omitempty"`
	CustomsInfo   *CustomsInfo `json:"customs_info,omitempty"   yaml:"customs_info,omitempty"`
	Shipments     []Shipment   `json:"shipments,omitempty"      yaml:"shipments,omitempty"`
	Rates         []Rate       `json:"rates"                    yaml:"rates"`
	Messages      []Message    `json:"messages,omitempty"       yaml:"messages,omitempty"`
	Service       string       `json:"service,omitempty"        yaml:"service,omitempty"`
}

// LowestRate selects the cheapest of the order's rates matching filter. The order must
// have been rated first.
func (o *Order) LowestRate(filter RateFilter) (Rate, error) {
	if o.Rates == nil {
		return Rate{}, &MissingPropertyError{Property: "rates"}
	}

	return LowestRate(o.Rates, filter)
}

// Report is an asynchronously generated CSV export.
type Report struct {
	Object `yaml:",inline"`

	Status          string     `json:"status,omitempty"           yaml:"status,omitempty"`
	StartDate       string     `json:"start_date,omitempty"       yaml:"start_date,omitempty"`
	EndDate         string     `json:"end_date,omitempty"         yaml:"end_date,omitempty"`
	IncludeChildren *bool      `json:"include_children,omitempty" yaml:"include_children,omitempty"`
	URL             string     `json:"url,omitempty"              yaml:"url,omitempty"`
	URLExpiresAt    *time.Time `json:"url_expires_at,omitempty"   yaml:"url_expires_at,omitempty"`
}

// APIKey is an API key of the user or one of its children.
type APIKey struct {
	Object `yaml:",inline"`

	Key string `json:"key" yaml:"key"`
}

// CarrierAccount is a carrier account in its current shape.
type CarrierAccount struct {
	Object `yaml:",inline"`

	Type            string                 `json:"type"                       yaml:"type"`
	Description     string                 `json:"description,omitempty"      yaml:"description,omitempty"`
	Reference       string                 `json:"reference,omitempty"        yaml:"reference,omitempty"`
	Readable        string                 `json:"readable,omitempty"         yaml:"readable,omitempty"`
	BillingType     string                 `json:"billing_type,omitempty"     yaml:"billing_type,omitempty"`
	Logo            string                 `json:"logo,omitempty"             yaml:"logo,omitempty"`
	Clone           bool                   `json:"clone,omitempty"            yaml:"clone,omitempty"`
	Fields          *CarrierFields         `json:"fields,omitempty"           yaml:"fields,omitempty"`
	Credentials     map[string]interface{} `json:"credentials,omitempty"      yaml:"credentials,omitempty"`
	TestCredentials map[string]interface{} `json:"test_credentials,omitempty" yaml:"test_credentials,omitempty"`
}

// CarrierFields describes the credential fields a carrier account exposes.
type CarrierFields struct {
	Credentials     map[string]CarrierField `json:"credentials,omitempty"      yaml:"credentials,omitempty"`
	TestCredentials map[string]CarrierField `json:"test_credentials,omitempty" yaml:"test_credentials,omitempty"`
	AutoLink        bool                    `json:"auto_link,omitempty"        yaml:"auto_link,omitempty"`
	CustomWorkflow  bool                    `json:"custom_workflow,omitempty"  yaml:"custom_workflow,omitempty"`
}

// CarrierField is one credential field of a carrier account.
type CarrierField struct {
	Visibility string `json:"visibility,omitempty" yaml:"visibility,omitempty"`
	Label      string `json:"label,omitempty"      yaml:"label,omitempty"`
	Value      string `json:"value,omitempty"      yaml:"value,omitempty"`
}

// LegacyCarrierAccount is a carrier account in the V2 shape. It is a distinct type
// from CarrierAccount and is only returned by V2 clients.
type LegacyCarrierAccount struct {
	Object `yaml:",inline"`

	Type            string            `json:"type"                       yaml:"type"`
	Description     string            `json:"description,omitempty"      yaml:"description,omitempty"`
	Reference       string            `json:"reference,omitempty"        yaml:"reference,omitempty"`
	Readable        string            `json:"readable,omitempty"         yaml:"readable,omitempty"`
	BillingType     string            `json:"billing_type,omitempty"     yaml:"billing_type,omitempty"`
	Credentials     map[string]string `json:"credentials,omitempty"      yaml:"credentials,omitempty"`
	TestCredentials map[string]string `json:"test_credentials,omitempty" yaml:"test_credentials,omitempty"`
}

// CreditCard is a payment method on the account.
type CreditCard struct {
	Object `yaml:",inline"`

	Brand      string     `json:"brand,omitempty"       yaml:"brand,omitempty"`
	DisabledAt *time.Time `json:"disabled_at,omitempty" yaml:"disabled_at,omitempty"`
	ExpMonth   int        `json:"exp_month,omitempty"   yaml:"exp_month,omitempty"`
	ExpYear    int        `json:"exp_year,omitempty"    yaml:"exp_year,omitempty"`
	Last4      string     `json:"last4,omitempty"       yaml:"last4,omitempty"`
	Name       string     `json:"name,omitempty"        yaml:"name,omitempty"`
}

// Insurance is a standalone insurance policy.
type Insurance struct {
	Object `yaml:",inline"`

	Reference    string   `json:"reference,omitempty"     yaml:"reference,omitempty"`
	Amount       Amount   `json:"amount"                  yaml:"amount"`
	Provider     string   `json:"provider,omitempty"      yaml:"provider,omitempty"`
	ProviderID   string   `json:"provider_id,omitempty"   yaml:"provider_id,omitempty"`
	ShipmentID   string   `json:"shipment_id,omitempty"   yaml:"shipment_id,omitempty"`
	TrackingCode string   `json:"tracking_code,omitempty" yaml:"tracking_code,omitempty"`
	Status       string   `json:"status,omitempty"        yaml:"status,omitempty"`
	Tracker      *Tracker `json:"tracker,omitempty"       yaml:"tracker,omitempty"`
	ToAddress    *Address `json:"to_address,omitempty"    yaml:"to_address,omitempty"`
	FromAddress  *Address `json:"from_address,omitempty"  yaml:"from_address,omitempty"`
	Fee          *Fee     `json:"fee,omitempty"           yaml:"fee,omitempty"`
	Messages     []string `json:"messages,omitempty"      yaml:"messages,omitempty"`
}

// Event is a webhook event record.
type Event struct {
	Object `yaml:",inline"`

	Description        string                 `json:"description,omitempty"         yaml:"description,omitempty"`
	Status             string                 `json:"status,omitempty"              yaml:"status,omitempty"`
	Result             json.RawMessage        `json:"result,omitempty"              yaml:"-"`
	PreviousAttributes map[string]interface{} `json:"previous_attributes,omitempty" yaml:"previous_attributes,omitempty"`
	PendingURLs        []string               `json:"pending_urls,omitempty"        yaml:"pending_urls,omitempty"`
	CompletedURLs      []string               `json:"completed_urls,omitempty"      yaml:"completed_urls,omitempty"`
}

// EndShipper is the merchant address a shipment is sent on behalf of.
type EndShipper struct {
	Object `yaml:",inline"`

	Name    string `json:"name,omitempty"    yaml:"name,omitempty"`
	Company string `json:"company,omitempty" yaml:"company,omitempty"`
	Street1 string `json:"street1,omitempty" yaml:"street1,omitempty"`
	Street2 string `json:"street2,omitempty" yaml:"street2,omitempty"`
	City    string `json:"city,omitempty"    yaml:"city,omitempty"`
	State   string `json:"state,omitempty"   yaml:"state,omitempty"`
	Zip     string `json:"zip,omitempty"     yaml:"zip,omitempty"`
	Country string `json:"country,omitempty" yaml:"country,omitempty"`
	Phone   string `json:"phone,omitempty"   yaml:"phone,omitempty"`
	Email   string `json:"email,omitempty"   yaml:"email,omitempty"`
}
