package easypost

import (
	"slices"
	"strings"
)

// Params is a parameter set: a declared schema of fields for one API operation.
//
// ParamRoot names the key the top-level request body is nested under (for example
// "address"); an empty root leaves the fields at the top level. The root is ignored when
// the set is nested inside another set. ParamFields returns one metadata record per
// declared field.
type Params interface {
	ParamRoot() string
	ParamFields() []Field
}

// Necessity says whether a field must be set before a request is built.
type Necessity int

const (
	// NecessityOptional fields are omitted when unset.
	NecessityOptional Necessity = iota

	// NecessityRequired fields fail the build with a MissingParameterError when unset.
	NecessityRequired
)

// Field is the metadata record of one declared parameter.
type Field struct {
	// Name is the dotted wire path relative to the set's root, e.g. "rate.id".
	Name string
	// Path is Name split into its segments.
	Path []string
	// Necessity says whether the field is required.
	Necessity Necessity
	// Versions restricts the field to some API versions. Empty means all.
	Versions []APIVersion

	value any
	set   bool
}

// For restricts the field to the given API versions.
func (f Field) For(versions ...APIVersion) Field {
	f.Versions = versions

	return f
}

// AppliesTo reports whether the field is active for version.
func (f Field) AppliesTo(version APIVersion) bool {
	return len(f.Versions) == 0 || slices.Contains(f.Versions, version)
}

// IsSet reports whether the field carries a value.
func (f Field) IsSet() bool {
	return f.set
}

// Value returns the field value, or nil when unset.
func (f Field) Value() any {
	return f.value
}

func newField(name string, necessity Necessity, value any, set bool) Field {
	return Field{
		Name:      name,
		Path:      splitPath(name),
		Necessity: necessity,
		value:     value,
		set:       set,
	}
}

// Optional declares an optional scalar field. A nil pointer is unset.
func Optional[T any](name string, value *T) Field {
	if value == nil {
		return newField(name, NecessityOptional, nil, false)
	}

	return newField(name, NecessityOptional, *value, true)
}

// Required declares a required scalar field. A nil pointer is unset.
func Required[T any](name string, value *T) Field {
	field := Optional(name, value)
	field.Necessity = NecessityRequired

	return field
}

// OptionalList declares an optional list field. A nil slice is unset; an empty,
// non-nil slice is sent as an empty list.
func OptionalList[T any](name string, values []T) Field {
	if values == nil {
		return newField(name, NecessityOptional, nil, false)
	}

	return newField(name, NecessityOptional, values, true)
}

// RequiredList declares a required list field. Nil and empty slices are both unset.
func RequiredList[T any](name string, values []T) Field {
	if len(values) == 0 {
		return newField(name, NecessityRequired, nil, false)
	}

	return newField(name, NecessityRequired, values, true)
}

// OptionalMap declares an optional object field with free-form keys.
func OptionalMap[V any](name string, values map[string]V) Field {
	if values == nil {
		return newField(name, NecessityOptional, nil, false)
	}

	return newField(name, NecessityOptional, values, true)
}

// OptionalNested declares an optional field holding another parameter set.
func OptionalNested[T any, P interface {
	*T
	Params
}](name string, nested P) Field {
	if nested == nil {
		return newField(name, NecessityOptional, nil, false)
	}

	return newField(name, NecessityOptional, Params(nested), true)
}

// RequiredNested declares a required field holding another parameter set.
func RequiredNested[T any, P interface {
	*T
	Params
}](name string, nested P) Field {
	field := OptionalNested(name, nested)
	field.Necessity = NecessityRequired

	return field
}

// OptionalNestedList declares an optional list of parameter sets. Nil entries are skipped.
func OptionalNestedList[T any, P interface {
	*T
	Params
}](name string, nested []P) Field {
	if nested == nil {
		return newField(name, NecessityOptional, nil, false)
	}

	sets := make([]Params, 0, len(nested))

	for _, item := range nested {
		if item != nil {
			sets = append(sets, item)
		}
	}

	return newField(name, NecessityOptional, sets, true)
}

// Override is one raw value spliced into a request body at an arbitrary path.
type Override struct {
	Path  []string
	Value any
}

// Overrides is an ordered overlay of raw values applied after the declared fields.
// Parameter sets embed it so callers can send fields the set does not declare.
type Overrides struct {
	entries []Override
}

// Set queues value at the dotted path. Later entries win over earlier ones and over
// declared fields.
func (o *Overrides) Set(path string, value any) {
	o.entries = append(o.entries, Override{Path: splitPath(path), Value: value})
}

// RawOverrides returns the queued overrides in order.
func (o *Overrides) RawOverrides() []Override {
	if o == nil {
		return nil
	}

	return o.entries
}

func (o *Overrides) clone() Overrides {
	if o == nil {
		return Overrides{}
	}

	return Overrides{entries: slices.Clone(o.entries)}
}

type overrider interface {
	RawOverrides() []Override
}

// RawParams is a parameter set made only of overrides, for operations whose body is
// entirely caller-defined.
type RawParams struct {
	Root string
	Overrides
}

// NewRawParams creates raw parameters nested under root. Keys of values may be dotted
// paths; they are applied in sorted order.
func NewRawParams(root string, values map[string]any) *RawParams {
	params := &RawParams{Root: root}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	for _, key := range keys {
		params.Set(key, values[key])
	}

	return params
}

// ParamRoot implements Params.
func (p *RawParams) ParamRoot() string { return "" }

// ParamFields implements Params.
func (p *RawParams) ParamFields() []Field { return nil }

// RawOverrides returns the overrides with the root prefixed to every path.
func (p *RawParams) RawOverrides() []Override {
	entries := p.Overrides.RawOverrides()
	if p.Root == "" {
		return entries
	}

	rooted := make([]Override, 0, len(entries))
	for _, entry := range entries {
		rooted = append(rooted, Override{Path: append([]string{p.Root}, entry.Path...), Value: entry.Value})
	}

	return rooted
}

// BuildParams serializes a parameter set for version into a nested body.
//
// Fields not active for version are skipped. An unset required field fails with a
// *MissingParameterError before anything else is produced. Unset optional fields are
// omitted. Nested sets are built with the same rules. Overrides are applied last.
func BuildParams(params Params, version APIVersion) (map[string]any, error) {
	if params == nil {
		return map[string]any{}, nil
	}

	fields, err := buildFields(params, version)
	if err != nil {
		return nil, err
	}

	body := fields

	if root := params.ParamRoot(); root != "" {
		body = map[string]any{}
		if len(fields) > 0 {
			body[root] = fields
		}
	}

	applyOverrides(body, params)

	return body, nil
}

func buildFields(params Params, version APIVersion) (map[string]any, error) {
	out := make(map[string]any)

	for _, field := range params.ParamFields() {
		if !field.AppliesTo(version) {
			continue
		}

		if !field.set {
			if field.Necessity == NecessityRequired {
				return nil, &MissingParameterError{Name: field.Name}
			}

			continue
		}

		value, err := buildValue(field.value, version)
		if err != nil {
			return nil, err
		}

		setPath(out, field.Path, value)
	}

	return out, nil
}

func buildValue(value any, version APIVersion) (any, error) {
	switch typed := value.(type) {
	case Params:
		return buildNested(typed, version)
	case []Params:
		list := make([]any, 0, len(typed))

		for _, item := range typed {
			nested, err := buildNested(item, version)
			if err != nil {
				return nil, err
			}

			list = append(list, nested)
		}

		return list, nil
	default:
		return value, nil
	}
}

func buildNested(params Params, version APIVersion) (map[string]any, error) {
	nested, err := buildFields(params, version)
	if err != nil {
		return nil, err
	}

	applyOverrides(nested, params)

	return nested, nil
}

func applyOverrides(body map[string]any, params Params) {
	source, ok := params.(overrider)
	if !ok {
		return
	}

	for _, entry := range source.RawOverrides() {
		setPath(body, entry.Path, entry.Value)
	}
}

func setPath(body map[string]any, path []string, value any) {
	if len(path) == 0 {
		return
	}

	current := body

	for _, key := range path[:len(path)-1] {
		next, ok := current[key].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[key] = next
		}

		current = next
	}

	current[path[len(path)-1]] = value
}

func splitPath(path string) []string {
	parts := strings.Split(path, ".")

	return slices.DeleteFunc(parts, func(part string) bool { return part == "" })
}
