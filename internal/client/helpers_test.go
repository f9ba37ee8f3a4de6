package client_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/easypost-go/internal/client"
	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

const testAPIKey = "EZTKtest123"

// newServer starts a test server that is closed with the test.
func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return server
}

// failingServer fails the test if any request reaches it.
func failingServer(t *testing.T) *httptest.Server {
	t.Helper()

	return newServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
	})
}

func testConfig(server *httptest.Server) *easypost.Config {
	return &easypost.Config{APIKey: testAPIKey, BaseURL: server.URL}
}

func newLatestClient(t *testing.T, server *httptest.Server) *client.Client {
	t.Helper()

	c, err := client.New(testConfig(server))
	require.NoError(t, err)

	return c
}

func newV2Client(t *testing.T, server *httptest.Server) *client.V2Client {
	t.Helper()

	c, err := client.NewV2(testConfig(server))
	require.NoError(t, err)

	return c
}

func newBetaClient(t *testing.T, server *httptest.Server) *client.BetaClient {
	t.Helper()

	c, err := client.NewBeta(testConfig(server))
	require.NoError(t, err)

	return c
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// readBody decodes a JSON request body, returning nil when it is empty.
func readBody(t *testing.T, r *http.Request) map[string]interface{} {
	t.Helper()

	data, err := io.ReadAll(r.Body)
	if !assert.NoError(t, err) || len(data) == 0 {
		return nil
	}

	var body map[string]interface{}

	assert.NoError(t, json.Unmarshal(data, &body))

	return body
}

func assertAuthenticated(t *testing.T, r *http.Request) {
	t.Helper()

	user, password, ok := r.BasicAuth()
	assert.True(t, ok, "basic auth missing")
	assert.Equal(t, testAPIKey, user)
	assert.Empty(t, password)
}
