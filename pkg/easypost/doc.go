// Package easypost provides types, interfaces, and helpers for working with the
// EasyPost shipping API.
//
// # Overview
//
// The easypost package defines the entities (Address, Parcel, Shipment, Rate,
// Batch, Order, Report, CarrierAccount, ...), the parameter sets sent to the API,
// and the resource client interfaces (ShipmentsClient, BatchesClient, ...). The
// epclient package builds concrete clients bound to one API version:
//
//	cli, err := epclient.New(&easypost.Config{APIKey: os.Getenv("EASYPOST_API_KEY")})
//	if err != nil { log.Fatal(err) }
//
//	shipment, err := cli.Shipments().Create(ctx, &easypost.ShipmentCreateParams{
//	  ToAddress:   &easypost.AddressCreateParams{Street1: easypost.Ptr("417 Montgomery St")},
//	  FromAddress: &easypost.AddressCreateParams{Street1: easypost.Ptr("179 N Harbor Dr")},
//	  Parcel:      &easypost.ParcelCreateParams{Weight: easypost.Ptr(10.0)},
//	})
//
// epclient.NewV2 and epclient.NewBeta return V2Client and BetaClient, which expose
// the operations and entity shapes of those versions.
//
// # Parameters
//
// Every parameter set implements Params: a root key plus field metadata (name,
// dotted path, required flag, versions). BuildParams turns a set into the request
// body for a version, dropping unset optional fields and fields that do not apply
// to the version, and failing with MissingParameterError for an unset required
// field. Raw values the typed fields do not cover can be added with
// Overrides.Set("options.label_date", ...); they are merged after the typed
// fields.
//
// # Pagination
//
// List operations return a Collection. NextPage on the resource client fetches
// the following page, and PaginationIterator or FetchAllPages walk all of them:
//
//	it := easypost.NewPaginationIterator(ctx, cli.Shipments().All, easypost.NewListParams().WithPageSize(50))
//	for it.HasNext() {
//	  shipment, err := it.Next()
//	  if err != nil { break }
//	  _ = shipment
//	}
//
// # Errors
//
// Non-2xx responses become *APIError, which matches a status sentinel such as
// ErrNotFound or ErrUnprocessableEntity with errors.Is. Network failures are
// *TransportError and undecodable bodies are *ParseError.
//
// # Rates
//
// LowestRate and LowestSmartrate select the cheapest rate from a list, optionally
// filtered by carrier or service, or bounded by a delivery-time estimate.
package easypost
