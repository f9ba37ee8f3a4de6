package easypost_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

func TestAmount_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{name: "numeric string", input: `"7.58"`, want: 7.58},
		{name: "number", input: `12.5`, want: 12.5},
		{name: "integer", input: `3`, want: 3},
		{name: "empty string", input: `""`, want: 0},
		{name: "null", input: `null`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var amount easypost.Amount

			err := json.Unmarshal([]byte(tt.input), &amount)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, amount.Float64(), 0.0001)
		})
	}
}

func TestAmount_UnmarshalJSON_Invalid(t *testing.T) {
	t.Parallel()

	var amount easypost.Amount

	err := json.Unmarshal([]byte(`"seven"`), &amount)
	require.ErrorIs(t, err, easypost.ErrInvalidAmount)
}

func TestAmount_MarshalJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(easypost.Amount(7.5))
	require.NoError(t, err)
	assert.JSONEq(t, `"7.5"`, string(data))
	assert.Equal(t, "7.50", easypost.Amount(7.5).String())
}

func TestAmount_ReencodeKeepsPrecision(t *testing.T) {
	t.Parallel()

	var parcel easypost.Parcel
	require.NoError(t, json.Unmarshal([]byte(`{"id": "prcl_1", "weight": 0.125, "length": "10.875"}`), &parcel))

	data, err := json.Marshal(parcel)
	require.NoError(t, err)

	var again easypost.Parcel
	require.NoError(t, json.Unmarshal(data, &again))
	assert.Equal(t, parcel.Weight, again.Weight)
	assert.Equal(t, parcel.Length, again.Length)
	assert.InDelta(t, 0.125, again.Weight.Float64(), 0)
}

func TestRate_Decode(t *testing.T) {
	t.Parallel()

	var rate easypost.Rate

	err := json.Unmarshal([]byte(`{
		"id": "rate_1",
		"object": "Rate",
		"carrier": "USPS",
		"service": "Priority",
		"rate": "7.58",
		"list_rate": 8.1,
		"delivery_days": 2,
		"created_at": "2024-01-02T03:04:05Z"
	}`), &rate)
	require.NoError(t, err)

	assert.Equal(t, "rate_1", rate.GetID())
	assert.Equal(t, "Rate", rate.Object.Object)
	assert.InDelta(t, 7.58, rate.Rate.Float64(), 0.0001)
	require.NotNil(t, rate.ListRate)
	assert.InDelta(t, 8.1, rate.ListRate.Float64(), 0.0001)
	require.NotNil(t, rate.CreatedAt)
	assert.Equal(t, 2024, rate.CreatedAt.Year())
}

func TestSmartrate_Decode(t *testing.T) {
	t.Parallel()

	var smartrate easypost.Smartrate

	err := json.Unmarshal([]byte(`{
		"id": "rate_1",
		"carrier": "UPS",
		"service": "Ground",
		"rate": "9.10",
		"time_in_transit": {"percentile_50": 2, "percentile_90": 4}
	}`), &smartrate)
	require.NoError(t, err)

	assert.Equal(t, "UPS", smartrate.Carrier)
	assert.InDelta(t, 9.10, smartrate.Rate.Rate.Float64(), 0.0001)

	days, err := smartrate.TimeInTransit.DaysAt(easypost.Percentile90)
	require.NoError(t, err)
	require.NotNil(t, days)
	assert.Equal(t, 4, *days)

	days, err = smartrate.TimeInTransit.DaysAt(easypost.Percentile99)
	require.NoError(t, err)
	assert.Nil(t, days)
}

func TestDecodeCollection(t *testing.T) {
	t.Parallel()

	page, err := easypost.DecodeCollection[easypost.Address](
		[]byte(`{"addresses": [{"id": "adr_1"}, {"id": "adr_2"}], "has_more": true}`),
		"addresses",
	)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.True(t, page.HasMore)
	assert.Equal(t, "adr_2", page.Items[1].ID)

	_, err = easypost.DecodeCollection[easypost.Address]([]byte(`{"shipments": []}`), "addresses")
	require.ErrorIs(t, err, easypost.ErrMissingCollectionKey)

	_, err = easypost.DecodeCollection[easypost.Address]([]byte(`not json`), "addresses")
	require.Error(t, err)
}

func TestCollection_NextPageParams(t *testing.T) {
	t.Parallel()

	filters := easypost.NewListParams().WithPageSize(2).WithAfterID("adr_0")

	page := &easypost.Collection[easypost.Address]{
		Items: []easypost.Address{
			{Object: easypost.Object{ID: "adr_1"}},
			{Object: easypost.Object{ID: "adr_2"}},
		},
		HasMore: true,
		Filters: filters,
	}

	next, err := page.NextPageParams()
	require.NoError(t, err)
	require.NotNil(t, next.BeforeID)
	assert.Equal(t, "adr_2", *next.BeforeID)
	assert.Equal(t, 2, *next.PageSize)
	assert.Equal(t, "adr_0", *next.AfterID)
	assert.Nil(t, filters.BeforeID)
}

func TestCollection_NextPageParams_EmptyPageKeepsCursor(t *testing.T) {
	t.Parallel()

	page := &easypost.Collection[easypost.Address]{
		HasMore: true,
		Filters: easypost.NewListParams().WithBeforeID("adr_5"),
	}

	next, err := page.NextPageParams()
	require.NoError(t, err)
	assert.Equal(t, "adr_5", *next.BeforeID)
}

func TestCollection_NextPageParams_LastPage(t *testing.T) {
	t.Parallel()

	page := &easypost.Collection[easypost.Address]{
		Items: []easypost.Address{{Object: easypost.Object{ID: "adr_1"}}},
	}

	_, err := page.NextPageParams()
	require.ErrorIs(t, err, easypost.ErrEndOfPagination)

	var nilPage *easypost.Collection[easypost.Address]

	_, err = nilPage.NextPageParams()
	require.ErrorIs(t, err, easypost.ErrEndOfPagination)
}
