package client

import (
	"context"
	"net/http"

	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

// APIKeysClient implements easypost.APIKeysClient.
type APIKeysClient struct {
	requester *requester
}

func newAPIKeysClient(r *requester) *APIKeysClient {
	return &APIKeysClient{requester: r}
}

// All implements easypost.APIKeysClient.All.
func (c *APIKeysClient) All(ctx context.Context) ([]easypost.APIKey, error) {
	keys, err := execute[[]easypost.APIKey](ctx, c.requester, http.MethodGet, "api_keys", nil, "keys")
	if err != nil {
		return nil, err
	}

	return *keys, nil
}
