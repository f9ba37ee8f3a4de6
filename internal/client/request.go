package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fivetwenty-io/easypost-go/internal/constants"
	internalhttp "github.com/fivetwenty-io/easypost-go/internal/http"
	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

// requester is the generic resource client every façade delegates to. It builds
// bodies from parameter sets for its version, sends them, and decodes typed results.
type requester struct {
	http  *internalhttp.Client
	cache *easypost.CacheManager

	pollInterval time.Duration
	pollTimeout  time.Duration
}

func newRequester(httpClient *internalhttp.Client, cache *easypost.CacheManager) *requester {
	return &requester{
		http:         httpClient,
		cache:        cache,
		pollInterval: constants.DefaultPollInterval,
		pollTimeout:  constants.DefaultPollTimeout,
	}
}

func (r *requester) version() easypost.APIVersion {
	return r.http.Version()
}

// require fails unless the requester's version is one of versions.
func (r *requester) require(operation string, versions ...easypost.APIVersion) error {
	if r.version().In(versions...) {
		return nil
	}

	return easypost.UnsupportedVersionError(operation, r.version())
}

// requireID fails fast when an operation on an existing resource has no identifier.
func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return &easypost.MissingPropertyError{Property: "id"}
	}

	return nil
}

// paramsOf treats a nil parameter set as an empty one, so its required fields
// still fail with MissingParameter.
func paramsOf[T any, P interface {
	*T
	easypost.Params
}](p P) easypost.Params {
	if p == nil {
		return P(new(T))
	}

	return p
}

// send builds the request for method and params and returns the raw response.
// GET and DELETE parameters travel in the query string.
func (r *requester) send(ctx context.Context, method, path string, params easypost.Params) (*internalhttp.Response, error) {
	body, err := easypost.BuildParams(params, r.version())
	if err != nil {
		return nil, err
	}

	req := &internalhttp.Request{Method: method, Path: path}

	switch method {
	case http.MethodGet, http.MethodDelete:
		if len(body) > 0 {
			req.Query = easypost.EncodeQuery(body)
		}
	default:
		req.Body = body
	}

	return r.http.Do(ctx, req)
}

// execute sends a request and decodes the response into T, reading it from rootKey
// when one is given.
func execute[T any](ctx context.Context, r *requester, method, path string, params easypost.Params, rootKey string) (*T, error) {
	resp, err := r.send(ctx, method, path, params)
	if err != nil {
		return nil, err
	}

	return decode[T](resp.StatusCode, resp.Body, rootKey)
}

// executeNoContent sends a request whose response body is not needed.
func executeNoContent(ctx context.Context, r *requester, method, path string, params easypost.Params) error {
	_, err := r.send(ctx, method, path, params)

	return err
}

// executeCached is execute for GETs of immutable resources, served from the cache
// when one is configured.
func executeCached[T any](ctx context.Context, r *requester, path string, ttl time.Duration) (*T, error) {
	if r.cache == nil {
		return execute[T](ctx, r, http.MethodGet, path, nil, "")
	}

	key := r.cache.GetCacheKey(http.MethodGet, r.version().String()+"/"+strings.TrimPrefix(path, "/"), nil)

	data, err := r.cache.Get(ctx, key)
	if err == nil {
		result, decodeErr := decode[T](http.StatusOK, data, "")
		if decodeErr == nil {
			return result, nil
		}

		_ = r.cache.Delete(ctx, key)
	}

	resp, err := r.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	result, err := decode[T](resp.StatusCode, resp.Body, "")
	if err != nil {
		return nil, err
	}

	_ = r.cache.Set(ctx, key, resp.Body, ttl)

	return result, nil
}

// list fetches one page of a collection and records the filters that produced it.
func list[T easypost.Identifiable](ctx context.Context, r *requester, path, collectionKey string, params *easypost.ListParams) (*easypost.Collection[T], error) {
	query, err := params.ToValues(r.version())
	if err != nil {
		return nil, err
	}

	resp, err := r.http.Do(ctx, &internalhttp.Request{Method: http.MethodGet, Path: path, Query: query})
	if err != nil {
		return nil, err
	}

	collection, err := easypost.DecodeCollection[T](resp.Body, collectionKey)
	if err != nil {
		return nil, &easypost.ParseError{StatusCode: resp.StatusCode, Target: typeName[easypost.Collection[T]](), Err: err}
	}

	collection.Filters = params.Clone()

	return collection, nil
}

// nextPage fetches the page after page.
func nextPage[T easypost.Identifiable](ctx context.Context, r *requester, path, collectionKey string, page *easypost.Collection[T]) (*easypost.Collection[T], error) {
	params, err := page.NextPageParams()
	if err != nil {
		return nil, err
	}

	return list[T](ctx, r, path, collectionKey, params)
}

func decode[T any](statusCode int, body []byte, rootKey string) (*T, error) {
	payload := body

	if rootKey != "" {
		var envelope map[string]json.RawMessage

		err := json.Unmarshal(body, &envelope)
		if err != nil {
			return nil, &easypost.ParseError{StatusCode: statusCode, Target: typeName[T](), Err: err}
		}

		inner, ok := envelope[rootKey]
		if !ok {
			return nil, &easypost.ParseError{
				StatusCode: statusCode,
				Target:     typeName[T](),
				Err:        fmt.Errorf("%w: %s", easypost.ErrMissingCollectionKey, rootKey),
			}
		}

		payload = inner
	}

	var result T

	err := json.Unmarshal(payload, &result)
	if err != nil {
		return nil, &easypost.ParseError{StatusCode: statusCode, Target: typeName[T](), Err: err}
	}

	return &result, nil
}

func typeName[T any]() string {
	var zero T

	return fmt.Sprintf("%T", zero)
}

// resourcePath joins path segments, escaping each.
func resourcePath(segments ...string) string {
	escaped := make([]string, 0, len(segments))
	for _, segment := range segments {
		escaped = append(escaped, url.PathEscape(segment))
	}

	return strings.Join(escaped, "/")
}
