package easypost_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

func TestParseAPIError(t *testing.T) {
	t.Parallel()

	body := []byte(`{"error": {
		"code": "PARAMETER.INVALID",
		"message": "Wrong parameter type.",
		"errors": [
			{"field": "zip", "message": "must be present", "suggestion": "10001"},
			{"field": "street1", "message": ["is required", "is too short"]}
		]
	}}`)

	apiErr := easypost.ParseAPIError(http.StatusUnprocessableEntity, body)

	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "PARAMETER.INVALID", apiErr.Code)
	assert.Equal(t, "Wrong parameter type.", apiErr.Message)
	require.Len(t, apiErr.Errors, 2)
	assert.Equal(t, easypost.FieldError{Field: "zip", Message: "must be present", Suggestion: "10001"}, apiErr.Errors[0])
	assert.Equal(t, "is required, is too short", apiErr.Errors[1].Message)

	assert.Equal(t,
		"PARAMETER.INVALID: Wrong parameter type. (status: 422); zip: must be present; street1: is required, is too short",
		apiErr.Error())
	require.ErrorIs(t, apiErr, easypost.ErrUnprocessableEntity)
}

func TestParseAPIError_CodeShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "string", body: `{"error": {"code": "ADDRESS.VERIFY.FAILURE", "message": "bad zip"}}`, want: "ADDRESS.VERIFY.FAILURE"},
		{name: "number", body: `{"error": {"code": 123, "message": "bad zip"}}`, want: "123"},
		{name: "null", body: `{"error": {"code": null, "message": "bad zip"}}`, want: ""},
		{name: "missing", body: `{"error": {"message": "bad zip"}}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			apiErr := easypost.ParseAPIError(http.StatusUnprocessableEntity, []byte(tt.body))
			assert.Equal(t, tt.want, apiErr.Code)
			assert.Equal(t, "bad zip", apiErr.Message)
		})
	}
}

func TestParseAPIError_MessageShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "string", body: `{"error": {"message": "Not found"}}`, want: "Not found"},
		{name: "list", body: `{"error": {"message": ["first", "second"]}}`, want: "first, second"},
		{name: "object", body: `{"error": {"message": {"b": "two", "a": ["one"]}}}`, want: "a: one, b: two"},
		{name: "null", body: `{"error": {"message": null}}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			apiErr := easypost.ParseAPIError(http.StatusBadRequest, []byte(tt.body))
			assert.Equal(t, tt.want, apiErr.Message)
			assert.Empty(t, apiErr.Code)
		})
	}
}

func TestParseAPIError_Unparsed(t *testing.T) {
	t.Parallel()

	bodies := map[string]string{
		"html":          `<html><body>Bad Gateway</body></html>`,
		"empty":         ``,
		"missing error": `{"message": "nope"}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			apiErr := easypost.ParseAPIError(http.StatusInternalServerError, []byte(body))
			assert.Equal(t, easypost.UnparsedErrorMessage, apiErr.Message)
			assert.Empty(t, apiErr.Code)
			assert.Empty(t, apiErr.Errors)
			require.ErrorIs(t, apiErr, easypost.ErrInternalServer)
			assert.True(t, easypost.IsServerError(apiErr))
		})
	}
}

func TestAPIError_StatusKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		kind   error
		check  func(error) bool
	}{
		{status: http.StatusUnauthorized, kind: easypost.ErrUnauthorized, check: easypost.IsUnauthorized},
		{status: http.StatusNotFound, kind: easypost.ErrNotFound, check: easypost.IsNotFound},
		{status: http.StatusTooManyRequests, kind: easypost.ErrTooManyRequests, check: easypost.IsRateLimited},
		{status: http.StatusServiceUnavailable, kind: easypost.ErrServiceUnavailable, check: easypost.IsServerError},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			t.Parallel()

			err := fmt.Errorf("retrieving shipment: %w", &easypost.APIError{StatusCode: tt.status})

			require.ErrorIs(t, err, tt.kind)
			assert.True(t, tt.check(err))

			apiErr, ok := easypost.AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}

	unknown := &easypost.APIError{StatusCode: http.StatusTeapot}
	assert.NotErrorIs(t, unknown, easypost.ErrBadRequest)
	assert.False(t, easypost.IsServerError(unknown))

	_, ok := easypost.AsAPIError(errors.New("plain"))
	assert.False(t, ok)
}

func TestTransportError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("listing shipments: %w", &easypost.TransportError{
		Method: http.MethodGet,
		URL:    "https://api.easypost.com/v2/shipments",
		Err:    context.DeadlineExceeded,
	})

	require.ErrorIs(t, err, easypost.ErrTransport)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, easypost.IsTimeout(err))
	assert.Contains(t, err.Error(), "GET https://api.easypost.com/v2/shipments")

	refused := &easypost.TransportError{Method: http.MethodPost, URL: "http://localhost", Err: errors.New("connection refused")}
	assert.False(t, refused.Timeout())
	assert.False(t, easypost.IsTimeout(refused))
	assert.False(t, easypost.IsNotFound(refused))
}

func TestParseError(t *testing.T) {
	t.Parallel()

	cause := errors.New("unexpected end of JSON input")
	err := &easypost.ParseError{StatusCode: http.StatusOK, Target: "shipment", Err: cause}

	require.ErrorIs(t, err, easypost.ErrParse)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, "decoding shipment (status: 200): unexpected end of JSON input", err.Error())
}

func TestMissingPropertyError(t *testing.T) {
	t.Parallel()

	err := &easypost.MissingPropertyError{Property: "id"}

	require.ErrorIs(t, err, easypost.ErrMissingProperty)
	assert.NotErrorIs(t, err, easypost.ErrMissingParameter)
	assert.Equal(t, "missing required property: id", err.Error())
}
