package easypost

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrEndOfPagination      = errors.New("there are no more pages to retrieve")
	ErrMissingCollectionKey = errors.New("collection key missing from response")
	ErrInvalidAmount        = errors.New("invalid amount")
)

// Object holds the fields every API resource carries.
type Object struct {
	ID        string     `json:"id,omitempty"         yaml:"id,omitempty"`
	Object    string     `json:"object,omitempty"     yaml:"object,omitempty"`
	Mode      string     `json:"mode,omitempty"       yaml:"mode,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// GetID returns the resource ID.
func (o Object) GetID() string {
	return o.ID
}

// Identifiable is implemented by every entity.
type Identifiable interface {
	GetID() string
}

// Amount is a decimal money or weight value. The API sends these either as JSON
// numbers or as numeric strings.
type Amount float64

// UnmarshalJSON accepts numbers, numeric strings, empty strings and null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	text := string(data)
	if len(data) > 0 && data[0] == '"' {
		err := json.Unmarshal(data, &text)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidAmount, string(data))
		}

		if text == "" {
			*a = 0

			return nil
		}
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, string(data))
	}

	*a = Amount(value)

	return nil
}

// MarshalJSON encodes the amount as a numeric string, the way the API sends it,
// with every significant digit kept.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatFloat(float64(a), 'f', -1, 64))
}

// Float64 returns the amount as a float64.
func (a Amount) Float64() float64 {
	return float64(a)
}

// String formats the amount with two decimals.
func (a Amount) String() string {
	return strconv.FormatFloat(float64(a), 'f', 2, 64)
}

// Collection is one page of a list operation.
type Collection[T Identifiable] struct {
	Items   []T  `json:"items"    yaml:"items"`
	HasMore bool `json:"has_more" yaml:"has_more"`

	// Filters are the parameters that produced this page.
	Filters *ListParams `json:"-" yaml:"-"`
}

// NextPageParams returns the filters for the page after this one, with before_id set
// to the last item's ID. An empty page that still reports has_more keeps its cursor.
func (c *Collection[T]) NextPageParams() (*ListParams, error) {
	if c == nil || !c.HasMore {
		return nil, ErrEndOfPagination
	}

	params := c.Filters.Clone()

	if len(c.Items) > 0 {
		lastID := c.Items[len(c.Items)-1].GetID()
		params.BeforeID = &lastID
	}

	return params, nil
}

// DecodeCollection decodes a list response of the shape
// {"<key>": [...], "has_more": bool}.
func DecodeCollection[T Identifiable](data []byte, key string) (*Collection[T], error) {
	var raw map[string]json.RawMessage

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("decoding collection: %w", err)
	}

	items, ok := raw[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingCollectionKey, key)
	}

	collection := &Collection[T]{}

	err = json.Unmarshal(items, &collection.Items)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", key, err)
	}

	if hasMore, ok := raw["has_more"]; ok {
		err = json.Unmarshal(hasMore, &collection.HasMore)
		if err != nil {
			return nil, fmt.Errorf("decoding has_more: %w", err)
		}
	}

	return collection, nil
}

// Ptr returns a pointer to v. Handy for filling parameter sets.
func Ptr[T any](v T) *T {
	return &v
}
