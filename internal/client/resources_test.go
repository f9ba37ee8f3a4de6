package client_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

func TestParcelsAndCustoms_Create(t *testing.T) {
	t.Parallel()

	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		body := readBody(t, r)

		switch r.URL.Path {
		case "/v2/parcels":
			assert.Equal(t, map[string]interface{}{"parcel": map[string]interface{}{"weight": 15.4, "predefined_package": "FlatRateEnvelope"}}, body)
			writeJSON(w, http.StatusOK, `{"id": "prcl_1", "weight": 15.4}`)
		case "/v2/customs_items":
			assert.Equal(t, map[string]interface{}{"customs_item": map[string]interface{}{
				"description": "T-shirt", "quantity": 1.0, "value": 10.0, "hs_tariff_number": "123456",
			}}, body)
			writeJSON(w, http.StatusOK, `{"id": "cstitem_1", "description": "T-shirt", "value": "10.00"}`)
		case "/v2/customs_infos":
			info, _ := body["customs_info"].(map[string]interface{})
			assert.Equal(t, "merchandise", info["contents_type"])
			assert.Equal(t, []interface{}{map[string]interface{}{"description": "Mug"}}, info["customs_items"])
			writeJSON(w, http.StatusOK, `{"id": "cstinfo_1", "contents_type": "merchandise", "customs_items": [{"id": "cstitem_2"}]}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	c := newLatestClient(t, server)
	ctx := context.Background()

	parcel, err := c.Parcels().Create(ctx, &easypost.ParcelCreateParams{
		Weight:            easypost.Ptr(15.4),
		PredefinedPackage: easypost.Ptr("FlatRateEnvelope"),
	})
	require.NoError(t, err)
	assert.InDelta(t, 15.4, parcel.Weight.Float64(), 0.0001)

	item, err := c.CustomsItems().Create(ctx, &easypost.CustomsItemCreateParams{
		Description:    easypost.Ptr("T-shirt"),
		Quantity:       easypost.Ptr(1),
		Value:          easypost.Ptr(10.0),
		HSTariffNumber: easypost.Ptr("123456"),
	})
	require.NoError(t, err)
	assert.InDelta(t, 10.0, item.Value.Float64(), 0.0001)

	info, err := c.CustomsInfos().Create(ctx, &easypost.CustomsInfoCreateParams{
		ContentsType: easypost.Ptr("merchandise"),
		CustomsItems: []*easypost.CustomsItemCreateParams{{Description: easypost.Ptr("Mug")}},
	})
	require.NoError(t, err)
	require.Len(t, info.CustomsItems, 1)
	assert.Equal(t, "cstitem_2", info.CustomsItems[0].ID)
}

func TestParcelsClient_Create_RequiresWeight(t *testing.T) {
	t.Parallel()

	c := newLatestClient(t, failingServer(t))

	_, err := c.Parcels().Create(context.Background(), nil)

	var paramErr *easypost.MissingParameterError
	require.ErrorAs(t, err, &paramErr)
	assert.Equal(t, "weight", paramErr.Name)
}

func TestOrdersClient(t *testing.T) {
	t.Parallel()

	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/orders":
			assert.Equal(t, http.MethodPost, r.Method)
			writeJSON(w, http.StatusOK, `{"id": "order_1", "rates": [
				{"id": "rate_1", "carrier": "USPS", "service": "Priority", "rate": "12.00"},
				{"id": "rate_2", "carrier": "UPS", "service": "Ground", "rate": "10.00"}
			]}`)
		case "/v2/orders/order_1/rates":
			assert.Equal(t, http.MethodGet, r.Method)
			writeJSON(w, http.StatusOK, `{"id": "order_1", "rates": []}`)
		case "/v2/orders/order_1/buy":
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, map[string]interface{}{"carrier": "UPS", "service": "Ground"}, readBody(t, r))
			writeJSON(w, http.StatusOK, `{"id": "order_1", "service": "Ground", "rates": []}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	c := newV2Client(t, server)
	ctx := context.Background()

	order, err := c.Orders().Create(ctx, &easypost.OrderCreateParams{
		Shipments: []*easypost.ShipmentCreateParams{{Reference: easypost.Ptr("box-1")}},
	})
	require.NoError(t, err)

	lowest, err := order.LowestRate(easypost.RateFilter{})
	require.NoError(t, err)
	assert.Equal(t, "rate_2", lowest.ID)

	params, err := easypost.OrderBuyParamsFromRate(lowest)
	require.NoError(t, err)

	bought, err := c.Orders().Buy(ctx, order.ID, params)
	require.NoError(t, err)
	assert.Equal(t, "Ground", bought.Service)

	rerated, err := c.Orders().GetRates(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, rerated.Rates)

	_, err = c.Orders().Buy(ctx, order.ID, &easypost.OrderBuyParams{Carrier: easypost.Ptr("UPS")})

	var paramErr *easypost.MissingParameterError
	require.ErrorAs(t, err, &paramErr)
	assert.Equal(t, "service", paramErr.Name)
}

func TestOrder_LowestRate_Unrated(t *testing.T) {
	t.Parallel()

	order := &easypost.Order{}

	_, err := order.LowestRate(easypost.RateFilter{})

	var propErr *easypost.MissingPropertyError
	require.ErrorAs(t, err, &propErr)
	assert.Equal(t, "rates", propErr.Property)
}

func TestReportsClient(t *testing.T) {
	t.Parallel()

	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v2/reports/shipment":
			assert.Equal(t, map[string]interface{}{
				"start_date": "2026-01-01",
				"end_date":   "2026-01-31",
				"columns":    []interface{}{"id", "carrier"},
			}, readBody(t, r))
			writeJSON(w, http.StatusOK, `{"id": "shprep_1", "object": "ShipmentReport", "status": "new"}`)
		case r.Method == http.MethodGet && r.URL.Path == "/v2/reports/shipment":
			writeJSON(w, http.StatusOK, `{"reports": [{"id": "shprep_1"}], "has_more": false}`)
		case r.Method == http.MethodGet && r.URL.Path == "/v2/reports/shprep_1":
			writeJSON(w, http.StatusOK, `{"id": "shprep_1", "status": "available", "url": "https://example.com/r.csv"}`)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	c := newLatestClient(t, server)
	ctx := context.Background()

	report, err := c.Reports().Create(ctx, "shipment", &easypost.ReportCreateParams{
		StartDate: easypost.Ptr("2026-01-01"),
		EndDate:   easypost.Ptr("2026-01-31"),
		Columns:   []string{"id", "carrier"},
	})
	require.NoError(t, err)
	assert.Equal(t, "new", report.Status)

	page, err := c.Reports().All(ctx, "shipment", nil)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	report, err = c.Reports().Retrieve(ctx, "shprep_1")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/r.csv", report.URL)
}

func TestReportsClient_Validation(t *testing.T) {
	t.Parallel()

	c := newLatestClient(t, failingServer(t))
	ctx := context.Background()

	_, err := c.Reports().Create(ctx, "", &easypost.ReportCreateParams{})
	require.ErrorIs(t, err, easypost.ErrMissingParameter)

	_, err = c.Reports().Create(ctx, "shipment", &easypost.ReportCreateParams{StartDate: easypost.Ptr("2026-01-01")})

	var paramErr *easypost.MissingParameterError
	require.ErrorAs(t, err, &paramErr)
	assert.Equal(t, "end_date", paramErr.Name)

	_, err = c.Reports().All(ctx, " ", nil)
	require.ErrorIs(t, err, easypost.ErrMissingParameter)
}

func TestAPIKeysClient_All(t *testing.T) {
	t.Parallel()

	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/api_keys", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"keys": [{"id": "ak_1", "mode": "test", "key": "EZTK1"}], "children": []}`)
	})

	keys, err := newLatestClient(t, server).APIKeys().All(context.Background())
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, "EZTK1", keys[0].Key)
}

func TestCarrierAccountsClient(t *testing.T) {
	t.Parallel()

	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v2/carrier_accounts":
			assert.Equal(t, map[string]interface{}{"carrier_account": map[string]interface{}{
				"type":              "UpsAccount",
				"registration_data": map[string]interface{}{"account_number": "A1"},
			}}, readBody(t, r))
			writeJSON(w, http.StatusOK, `{"id": "ca_1", "type": "UpsAccount", "credentials": {"account_number": "A1", "enabled": true}}`)
		case r.Method == http.MethodGet && r.URL.Path == "/v2/carrier_accounts":
			writeJSON(w, http.StatusOK, `[{"id": "ca_1", "type": "UpsAccount"}, {"id": "ca_2", "type": "UspsAccount"}]`)
		case r.Method == http.MethodPatch && r.URL.Path == "/v2/carrier_accounts/ca_1":
			assert.Equal(t, map[string]interface{}{"carrier_account": map[string]interface{}{"description": "main"}}, readBody(t, r))
			writeJSON(w, http.StatusOK, `{"id": "ca_1", "type": "UpsAccount", "description": "main"}`)
		case r.Method == http.MethodDelete && r.URL.Path == "/v2/carrier_accounts/ca_1":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	accounts := newLatestClient(t, server).CarrierAccounts()
	ctx := context.Background()

	created, err := accounts.Create(ctx, &easypost.CarrierAccountCreateParams{
		Type:             easypost.Ptr("UpsAccount"),
		RegistrationData: map[string]any{"account_number": "A1"},
	})
	require.NoError(t, err)
	assert.Equal(t, true, created.Credentials["enabled"])

	all, err := accounts.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	updated, err := accounts.Update(ctx, "ca_1", &easypost.CarrierAccountUpdateParams{Description: easypost.Ptr("main")})
	require.NoError(t, err)
	assert.Equal(t, "main", updated.Description)

	require.NoError(t, accounts.Delete(ctx, "ca_1"))
	require.ErrorIs(t, accounts.Delete(ctx, ""), easypost.ErrMissingProperty)

	_, err = accounts.Create(ctx, &easypost.CarrierAccountCreateParams{})
	require.ErrorIs(t, err, easypost.ErrMissingParameter)
}

func TestLegacyCarrierAccountsClient(t *testing.T) {
	t.Parallel()

	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v2/carrier_accounts":
			assert.Equal(t, map[string]interface{}{"carrier_account": map[string]interface{}{
				"type":        "FedexAccount",
				"credentials": map[string]interface{}{"meter": "123"},
			}}, readBody(t, r))
			writeJSON(w, http.StatusOK, `{"id": "ca_9", "type": "FedexAccount", "credentials": {"meter": "123"}}`)
		case r.Method == http.MethodPut && r.URL.Path == "/v2/carrier_accounts/ca_9":
			writeJSON(w, http.StatusOK, `{"id": "ca_9", "type": "FedexAccount", "reference": "r1"}`)
		case r.Method == http.MethodGet && r.URL.Path == "/v2/carrier_accounts/ca_9":
			writeJSON(w, http.StatusOK, `{"id": "ca_9", "type": "FedexAccount"}`)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	accounts := newV2Client(t, server).CarrierAccounts()
	ctx := context.Background()

	created, err := accounts.Create(ctx, &easypost.LegacyCarrierAccountParams{
		Type:        easypost.Ptr("FedexAccount"),
		Credentials: map[string]string{"meter": "123"},
	})
	require.NoError(t, err)
	assert.Equal(t, "123", created.Credentials["meter"])

	updated, err := accounts.Update(ctx, "ca_9", &easypost.LegacyCarrierAccountParams{Reference: easypost.Ptr("r1")})
	require.NoError(t, err)
	assert.Equal(t, "r1", updated.Reference)

	retrieved, err := accounts.Retrieve(ctx, "ca_9")
	require.NoError(t, err)
	assert.Equal(t, "FedexAccount", retrieved.Type)
}

func TestCreditCardsClient(t *testing.T) {
	t.Parallel()

	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v2/credit_cards/card_1/charge":
			assert.Equal(t, map[string]interface{}{"amount": "2000"}, readBody(t, r))
			writeJSON(w, http.StatusOK, `{}`)
		case r.Method == http.MethodDelete && r.URL.Path == "/v2/credit_cards/card_1":
			writeJSON(w, http.StatusOK, `{}`)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	cards := newV2Client(t, server).CreditCards()
	ctx := context.Background()

	require.NoError(t, cards.Fund(ctx, "card_1", &easypost.CreditCardFundParams{Amount: easypost.Ptr("2000")}))
	require.NoError(t, cards.Delete(ctx, "card_1"))
	require.ErrorIs(t, cards.Fund(ctx, "card_1", nil), easypost.ErrMissingParameter)
}

func TestCreditCardsClient_PaymentRequired(t *testing.T) {
	t.Parallel()

	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusPaymentRequired, `{"error": {"code": "BILLING.INSUFFICIENT_FUNDS", "message": "Insufficient funds."}}`)
	})

	err := newV2Client(t, server).CreditCards().Fund(context.Background(), "card_1", &easypost.CreditCardFundParams{Amount: easypost.Ptr("1")})
	require.ErrorIs(t, err, easypost.ErrPaymentRequired)
}

func TestInsurancesClient(t *testing.T) {
	t.Parallel()

	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v2/insurances":
			assert.Equal(t, map[string]interface{}{"insurance": map[string]interface{}{
				"amount":        "100.00",
				"carrier":       "USPS",
				"tracking_code": "9400",
			}}, readBody(t, r))
			writeJSON(w, http.StatusOK, `{"id": "ins_1", "amount": "100.00", "status": "new"}`)
		case r.Method == http.MethodGet && r.URL.Path == "/v2/insurances":
			writeJSON(w, http.StatusOK, `{"insurances": [{"id": "ins_1"}], "has_more": false}`)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	insurances := newLatestClient(t, server).Insurances()
	ctx := context.Background()

	insurance, err := insurances.Create(ctx, easypost.NewRawParams("insurance", map[string]any{
		"amount":        "100.00",
		"carrier":       "USPS",
		"tracking_code": "9400",
	}))
	require.NoError(t, err)
	assert.InDelta(t, 100.0, insurance.Amount.Float64(), 0.0001)

	page, err := insurances.All(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}

func TestEventsClient(t *testing.T) {
	t.Parallel()

	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/events/evt_1":
			writeJSON(w, http.StatusOK, `{"id": "evt_1", "description": "tracker.updated", "result": {"id": "trk_1"}}`)
		case "/v2/events":
			assert.Equal(t, "5", r.URL.Query().Get("page_size"))
			writeJSON(w, http.StatusOK, `{"events": [{"id": "evt_2"}, {"id": "evt_1"}], "has_more": false}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	events := newLatestClient(t, server).Events()
	ctx := context.Background()

	event, err := events.Retrieve(ctx, "evt_1")
	require.NoError(t, err)
	assert.Equal(t, "tracker.updated", event.Description)
	assert.JSONEq(t, `{"id": "trk_1"}`, string(event.Result))

	page, err := events.All(ctx, easypost.NewListParams().WithPageSize(5))
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
}

func TestEndShippersClient(t *testing.T) {
	t.Parallel()

	complete := &easypost.EndShipperParams{
		Name:    easypost.Ptr("Jack"),
		Street1: easypost.Ptr("388 Townsend St"),
		City:    easypost.Ptr("San Francisco"),
		State:   easypost.Ptr("CA"),
		Zip:     easypost.Ptr("94107"),
		Country: easypost.Ptr("US"),
		Phone:   easypost.Ptr("5555555555"),
		Email:   easypost.Ptr("jack@example.com"),
	}

	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/beta/end_shippers":
			body := readBody(t, r)
			address, _ := body["address"].(map[string]interface{})
			assert.Equal(t, "Jack", address["name"])
			writeJSON(w, http.StatusOK, `{"id": "es_1", "name": "JACK"}`)
		case r.Method == http.MethodPut && r.URL.Path == "/beta/end_shippers/es_1":
			writeJSON(w, http.StatusOK, `{"id": "es_1", "name": "JILL"}`)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	endShippers := newBetaClient(t, server).EndShippers()
	ctx := context.Background()

	created, err := endShippers.Create(ctx, complete)
	require.NoError(t, err)
	assert.Equal(t, "JACK", created.Name)

	updated, err := endShippers.Update(ctx, "es_1", complete)
	require.NoError(t, err)
	assert.Equal(t, "JILL", updated.Name)

	_, err = endShippers.Create(ctx, &easypost.EndShipperParams{Name: easypost.Ptr("Jack")})

	var paramErr *easypost.MissingParameterError
	require.ErrorAs(t, err, &paramErr)
	assert.Equal(t, "street1", paramErr.Name)
}
