package epclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
	"github.com/fivetwenty-io/easypost-go/pkg/epclient"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("creates client with config", func(t *testing.T) {
		t.Parallel()

		client, err := epclient.New(&easypost.Config{APIKey: "EZTK123"})
		require.NoError(t, err)
		assert.Equal(t, easypost.Latest, client.Version())
	})

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		_, err := epclient.New(nil)
		require.ErrorIs(t, err, easypost.ErrConfigRequired)
	})

	t.Run("blank API key", func(t *testing.T) {
		t.Parallel()

		_, err := epclient.New(&easypost.Config{APIKey: "  "})
		require.ErrorIs(t, err, epclient.ErrAPIKeyRequired)
	})

	t.Run("invalid retry count", func(t *testing.T) {
		t.Parallel()

		_, err := epclient.New(&easypost.Config{APIKey: "EZTK123", RetryMax: 50})
		require.ErrorIs(t, err, easypost.ErrInvalidConfig)
	})

	t.Run("invalid rate limit", func(t *testing.T) {
		t.Parallel()

		_, err := epclient.New(&easypost.Config{APIKey: "EZTK123", RateLimit: &easypost.RateLimit{}})
		require.ErrorIs(t, err, easypost.ErrInvalidConfig)
	})
}

func TestNew_NormalizesHost(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/api_keys", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"keys": [{"id": "ak_1", "mode": "test", "key": "EZTK123"}]}`))
	}))
	defer server.Close()

	config := &easypost.Config{APIKey: "EZTK123", BaseURL: server.URL + "/"}

	client, err := epclient.New(config)
	require.NoError(t, err)

	keys, err := client.APIKeys().All(context.Background())
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, "ak_1", keys[0].ID)

	assert.Equal(t, server.URL+"/", config.BaseURL, "caller config is not mutated")
}

func TestNewV2(t *testing.T) {
	t.Parallel()

	client, err := epclient.NewV2(&easypost.Config{APIKey: "EZTK123", BaseURL: "api.example.com"})
	require.NoError(t, err)
	assert.Equal(t, easypost.V2, client.Version())
	assert.NotNil(t, client.Orders())
	assert.NotNil(t, client.CreditCards())
}

func TestNewBeta(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/beta/"))
		_, _ = w.Write([]byte(`{"id": "es_1", "name": "JACK"}`))
	}))
	defer server.Close()

	client, err := epclient.NewBeta(&easypost.Config{APIKey: "EZTK123", BaseURL: server.URL})
	require.NoError(t, err)
	assert.Equal(t, easypost.Beta, client.Version())

	endShipper, err := client.EndShippers().Retrieve(context.Background(), "es_1")
	require.NoError(t, err)
	assert.Equal(t, "JACK", endShipper.Name)
}

func TestNewWithAPIKey(t *testing.T) {
	t.Parallel()

	client, err := epclient.NewWithAPIKey("EZTK123")
	require.NoError(t, err)
	assert.NotNil(t, client.Shipments())
}

//nolint:paralleltest // t.Setenv cannot be combined with t.Parallel
func TestNewFromEnv(t *testing.T) {
	t.Setenv("EASYPOST_API_KEY", "EZTKenv")
	t.Setenv("EASYPOST_BASE_URL", "https://api.example.com")

	client, err := epclient.NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, easypost.Latest, client.Version())
}
