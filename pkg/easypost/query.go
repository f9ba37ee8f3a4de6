package easypost

import (
	"fmt"
	"net/url"
	"sort"
	"time"
)

// ListParams are the cursor filters accepted by list operations.
type ListParams struct {
	// BeforeID only returns records created before the record with this ID.
	BeforeID *string
	// AfterID only returns records created after the record with this ID.
	AfterID *string
	// StartDatetime only returns records created at or after this time.
	StartDatetime *time.Time
	// EndDatetime only returns records created before this time.
	EndDatetime *time.Time
	// PageSize is the number of records per page.
	PageSize *int

	Overrides
}

// NewListParams creates empty list parameters.
func NewListParams() *ListParams {
	return &ListParams{}
}

// WithPageSize sets the page size.
func (p *ListParams) WithPageSize(size int) *ListParams {
	p.PageSize = &size

	return p
}

// WithBeforeID sets the before_id cursor.
func (p *ListParams) WithBeforeID(id string) *ListParams {
	p.BeforeID = &id

	return p
}

// WithAfterID sets the after_id cursor.
func (p *ListParams) WithAfterID(id string) *ListParams {
	p.AfterID = &id

	return p
}

// WithDateRange limits results to records created in [start, end).
func (p *ListParams) WithDateRange(start, end time.Time) *ListParams {
	p.StartDatetime = &start
	p.EndDatetime = &end

	return p
}

// WithFilter adds a resource-specific filter such as "purchased".
func (p *ListParams) WithFilter(key string, value any) *ListParams {
	p.Set(key, value)

	return p
}

// ParamRoot implements Params. List filters are sent unwrapped.
func (p *ListParams) ParamRoot() string {
	return ""
}

// ParamFields implements Params.
func (p *ListParams) ParamFields() []Field {
	return []Field{
		Optional("before_id", p.BeforeID),
		Optional("after_id", p.AfterID),
		Optional("start_datetime", p.StartDatetime),
		Optional("end_datetime", p.EndDatetime),
		Optional("page_size", p.PageSize),
	}
}

// Clone returns a deep copy of the parameters.
func (p *ListParams) Clone() *ListParams {
	if p == nil {
		return NewListParams()
	}

	return &ListParams{
		BeforeID:      clonePtr(p.BeforeID),
		AfterID:       clonePtr(p.AfterID),
		StartDatetime: clonePtr(p.StartDatetime),
		EndDatetime:   clonePtr(p.EndDatetime),
		PageSize:      clonePtr(p.PageSize),
		Overrides:     p.Overrides.clone(),
	}
}

// ToValues encodes the parameters as a query string for version.
func (p *ListParams) ToValues(version APIVersion) (url.Values, error) {
	if p == nil {
		return url.Values{}, nil
	}

	body, err := BuildParams(p, version)
	if err != nil {
		return nil, err
	}

	return EncodeQuery(body), nil
}

// EncodeQuery flattens a built body into query parameters using bracket notation:
// nested objects become a[b]=v and lists become a[]=v.
func EncodeQuery(body map[string]any) url.Values {
	values := url.Values{}

	keys := make([]string, 0, len(body))
	for key := range body {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		encodeQueryValue(values, key, body[key])
	}

	return values
}

func encodeQueryValue(values url.Values, key string, value any) {
	switch typed := value.(type) {
	case nil:
	case map[string]any:
		for _, inner := range sortedKeys(typed) {
			encodeQueryValue(values, key+"["+inner+"]", typed[inner])
		}
	case []any:
		for _, item := range typed {
			encodeQueryValue(values, key+"[]", item)
		}
	case []string:
		for _, item := range typed {
			values.Add(key+"[]", item)
		}
	case []map[string]any:
		for _, item := range typed {
			encodeQueryValue(values, key+"[]", item)
		}
	case time.Time:
		values.Add(key, typed.UTC().Format(time.RFC3339))
	case string:
		values.Add(key, typed)
	default:
		values.Add(key, fmt.Sprint(typed))
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

func clonePtr[T any](value *T) *T {
	if value == nil {
		return nil
	}

	copied := *value

	return &copied
}
