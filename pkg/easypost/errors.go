package easypost

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sort"
	"strings"
)

// UnparsedErrorMessage is the message carried by an APIError whose body was not a
// recognizable error document.
const UnparsedErrorMessage = "The EasyPost API threw an error, but the error could not be parsed."

// Error kinds. Typed errors match these with errors.Is.
var (
	ErrMissingParameter = errors.New("missing required parameter")
	ErrMissingProperty  = errors.New("missing required property")
	ErrTransport        = errors.New("transport failure")
	ErrParse            = errors.New("response could not be decoded")
	ErrNoRatesFound     = errors.New("no rates found")
	ErrPollTimeout      = errors.New("timed out waiting for resource")
	ErrReportFailed     = errors.New("report generation failed")
	ErrBatchFailed      = errors.New("batch failed")
)

// Status kinds matched by *APIError.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrPaymentRequired     = errors.New("payment required")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrMethodNotAllowed    = errors.New("method not allowed")
	ErrRequestTimeout      = errors.New("request timeout")
	ErrUnprocessableEntity = errors.New("unprocessable entity")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServer      = errors.New("internal server error")
	ErrServiceUnavailable  = errors.New("service unavailable")
	ErrGatewayTimeout      = errors.New("gateway timeout")
)

var statusKinds = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusPaymentRequired:     ErrPaymentRequired,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusMethodNotAllowed:    ErrMethodNotAllowed,
	http.StatusRequestTimeout:      ErrRequestTimeout,
	http.StatusUnprocessableEntity: ErrUnprocessableEntity,
	http.StatusTooManyRequests:     ErrTooManyRequests,
	http.StatusInternalServerError: ErrInternalServer,
	http.StatusServiceUnavailable:  ErrServiceUnavailable,
	http.StatusGatewayTimeout:      ErrGatewayTimeout,
}

// FieldError is one field-level entry of an API error.
type FieldError struct {
	Field      string `json:"field"                yaml:"field"`
	Message    string `json:"message"              yaml:"message"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// UnmarshalJSON accepts messages sent as a string, a list of strings or an object.
func (f *FieldError) UnmarshalJSON(data []byte) error {
	var raw struct {
		Field      string          `json:"field"`
		Message    json.RawMessage `json:"message"`
		Suggestion *string         `json:"suggestion"`
	}

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return fmt.Errorf("decoding field error: %w", err)
	}

	f.Field = raw.Field
	f.Message = flattenMessage(raw.Message)

	if raw.Suggestion != nil {
		f.Suggestion = *raw.Suggestion
	}

	return nil
}

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int          `json:"status_code"      yaml:"status_code"`
	Code       string       `json:"code,omitempty"   yaml:"code,omitempty"`
	Message    string       `json:"message"          yaml:"message"`
	Errors     []FieldError `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	var builder strings.Builder

	if e.Code != "" {
		builder.WriteString(e.Code)
		builder.WriteString(": ")
	}

	builder.WriteString(e.Message)
	fmt.Fprintf(&builder, " (status: %d)", e.StatusCode)

	for _, fieldErr := range e.Errors {
		fmt.Fprintf(&builder, "; %s: %s", fieldErr.Field, fieldErr.Message)
	}

	return builder.String()
}

// Is matches the status kind sentinels.
func (e *APIError) Is(target error) bool {
	kind, ok := statusKinds[e.StatusCode]

	return ok && kind == target
}

// ParseAPIError converts the status and body of a failed exchange into an APIError.
// Bodies that are not a JSON error document produce UnparsedErrorMessage with no code
// and no sub-errors.
func ParseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	var envelope struct {
		Error *struct {
			Code    json.RawMessage `json:"code"`
			Message json.RawMessage `json:"message"`
			Errors  []FieldError    `json:"errors"`
		} `json:"error"`
	}

	err := json.Unmarshal(body, &envelope)
	if err != nil || envelope.Error == nil {
		apiErr.Message = UnparsedErrorMessage

		return apiErr
	}

	apiErr.Code = flattenMessage(envelope.Error.Code)
	apiErr.Message = flattenMessage(envelope.Error.Message)
	apiErr.Errors = envelope.Error.Errors

	return apiErr
}

func flattenMessage(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var text string
	if json.Unmarshal(raw, &text) == nil {
		return text
	}

	var list []json.RawMessage
	if json.Unmarshal(raw, &list) == nil {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			parts = append(parts, flattenMessage(item))
		}

		return strings.Join(parts, ", ")
	}

	var object map[string]json.RawMessage
	if json.Unmarshal(raw, &object) == nil {
		keys := make([]string, 0, len(object))
		for key := range object {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		parts := make([]string, 0, len(keys))
		for _, key := range keys {
			parts = append(parts, key+": "+flattenMessage(object[key]))
		}

		return strings.Join(parts, ", ")
	}

	return string(raw)
}

// MissingParameterError is raised before any request when a required parameter is unset.
type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing required parameter: %s", e.Name)
}

// Is matches ErrMissingParameter.
func (e *MissingParameterError) Is(target error) bool {
	return target == ErrMissingParameter
}

// MissingPropertyError is raised when an operation needs a property the receiver lacks,
// usually its ID.
type MissingPropertyError struct {
	Property string
}

func (e *MissingPropertyError) Error() string {
	return fmt.Sprintf("missing required property: %s", e.Property)
}

// Is matches ErrMissingProperty.
func (e *MissingPropertyError) Is(target error) bool {
	return target == ErrMissingProperty
}

// TransportError is a failure where no HTTP response was obtained.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying network error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is matches ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// Timeout reports whether the failure was a timeout.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error

	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// ParseError is a 2xx response whose body did not match the expected shape.
type ParseError struct {
	StatusCode int
	Target     string
	Err        error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("decoding %s (status: %d): %v", e.Target, e.StatusCode, e.Err)
}

// Unwrap returns the decoder error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is matches ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// AsAPIError extracts an *APIError from err.
func AsAPIError(err error) (*APIError, bool) {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsRateLimited checks if the error is a rate limit error.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrTooManyRequests)
}

// IsServerError checks if the error is an API error with a 5xx status.
func IsServerError(err error) bool {
	apiErr, ok := AsAPIError(err)

	return ok && apiErr.StatusCode >= http.StatusInternalServerError
}

// IsTimeout checks if the error is a transport timeout.
func IsTimeout(err error) bool {
	transportErr := &TransportError{}

	return errors.As(err, &transportErr) && transportErr.Timeout()
}
