package easypost_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

func TestListParams_ToValues(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	params := easypost.NewListParams().
		WithPageSize(50).
		WithBeforeID("shp_9").
		WithDateRange(start, end).
		WithFilter("purchased", true)

	values, err := params.ToValues(easypost.Latest)
	require.NoError(t, err)

	assert.Equal(t, url.Values{
		"page_size":      {"50"},
		"before_id":      {"shp_9"},
		"start_datetime": {"2024-01-02T03:04:05Z"},
		"end_datetime":   {"2024-01-03T03:04:05Z"},
		"purchased":      {"true"},
	}, values)
}

func TestListParams_ToValues_Empty(t *testing.T) {
	t.Parallel()

	values, err := easypost.NewListParams().ToValues(easypost.V2)
	require.NoError(t, err)
	assert.Empty(t, values)

	var nilParams *easypost.ListParams

	values, err = nilParams.ToValues(easypost.V2)
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestListParams_Clone(t *testing.T) {
	t.Parallel()

	original := easypost.NewListParams().WithPageSize(10).WithAfterID("adr_1")
	original.WithFilter("carrier", "USPS")

	clone := original.Clone()
	clone.WithPageSize(20)
	clone.WithFilter("purchased", false)

	assert.Equal(t, 10, *original.PageSize)
	assert.Equal(t, 20, *clone.PageSize)
	assert.Equal(t, "adr_1", *clone.AfterID)
	assert.Len(t, original.RawOverrides(), 1)
	assert.Len(t, clone.RawOverrides(), 2)

	var nilParams *easypost.ListParams
	assert.NotNil(t, nilParams.Clone())
}

func TestEncodeQuery(t *testing.T) {
	t.Parallel()

	values := easypost.EncodeQuery(map[string]any{
		"carrier": "USPS",
		"options": map[string]any{"label_format": "PDF", "print_custom": map[string]any{"1": "x"}},
		"ids":     []string{"a", "b"},
		"nested":  []any{map[string]any{"id": "shp_1"}},
		"weight":  4.5,
		"skip":    nil,
	})

	assert.Equal(t, url.Values{
		"carrier":                 {"USPS"},
		"options[label_format]":   {"PDF"},
		"options[print_custom][1]": {"x"},
		"ids[]":                   {"a", "b"},
		"nested[][id]":            {"shp_1"},
		"weight":                  {"4.5"},
	}, values)
}
