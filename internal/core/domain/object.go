package domain

import "strings"

type ObjectType string

const (
	TypeAddress      ObjectType = "address"
	TypeAddressGroup ObjectType = "address-group"
	TypeService      ObjectType = "service"
	TypeServiceGroup ObjectType = "service-group"
)

// CanonicalTypeOrder pins the report ordering for object types. Types not
// listed sort after all listed ones.
var CanonicalTypeOrder = []ObjectType{
	TypeAddress,
	TypeAddressGroup,
	TypeService,
	TypeServiceGroup,
}

func (t ObjectType) String() string {
	return string(t)
}

// TypeOrderIndex returns the canonical position of t, or len(CanonicalTypeOrder)
// for unknown types.
func TypeOrderIndex(t ObjectType) int {
	for i, known := range CanonicalTypeOrder {
		if known == t {
			return i
		}
	}
	return len(CanonicalTypeOrder)
}

// Source identifies where a record was defined: the input file and the
// administrative partition (VDOM) inside it.
type Source struct {
	File      string
	Partition string
}

func (s Source) String() string {
	return s.File + " [" + s.Partition + "]"
}

type ValueKind string

const (
	ValueScalar ValueKind = "scalar"
	ValueList   ValueKind = "list"
)

// AttributeValue is a scalar string or an ordered list of strings. Absence of
// an attribute is expressed by the key not being present in Attributes, never
// by a zero AttributeValue.
type AttributeValue struct {
	Kind   ValueKind
	Scalar string
	Items  []string
}

func ScalarValue(s string) AttributeValue {
	return AttributeValue{Kind: ValueScalar, Scalar: s}
}

func ListValue(items ...string) AttributeValue {
	return AttributeValue{Kind: ValueList, Items: items}
}

// Flatten returns the value as an ordered string slice regardless of kind.
func (v AttributeValue) Flatten() []string {
	if v.Kind == ValueList {
		return v.Items
	}
	return []string{v.Scalar}
}

func (v AttributeValue) String() string {
	if v.Kind == ValueList {
		return strings.Join(v.Items, " ")
	}
	return v.Scalar
}

// Attributes is an insertion-ordered attribute map. Keys keep the order in
// which they first appeared in the source text.
type Attributes struct {
	keys   []string
	values map[string]AttributeValue
}

func NewAttributes() *Attributes {
	return &Attributes{values: make(map[string]AttributeValue)}
}

// Add records a value for key. A repeated key accumulates into an ordered list
// instead of overwriting, so list-valued attributes built across several lines
// keep every element in source order.
func (a *Attributes) Add(key string, value AttributeValue) {
	existing, ok := a.values[key]
	if !ok {
		a.keys = append(a.keys, key)
		a.values[key] = value
		return
	}
	merged := append([]string{}, existing.Flatten()...)
	merged = append(merged, value.Flatten()...)
	a.values[key] = AttributeValue{Kind: ValueList, Items: merged}
}

func (a *Attributes) Get(key string) (AttributeValue, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Keys returns the attribute keys in first-seen order. The returned slice is
// shared; callers must not mutate it.
func (a *Attributes) Keys() []string {
	return a.keys
}

func (a *Attributes) Len() int {
	return len(a.keys)
}

// ObjectRecord is one configuration object as defined in one (file, partition)
// scope. Attribute keys are exactly those that appeared in the source text.
type ObjectRecord struct {
	Type       ObjectType
	Name       string
	Source     Source
	Attributes *Attributes
	Line       int
}

// ObjectGroup gathers every record sharing (type, name) across all files and
// partitions. Members are ordered by input file, then partition appearance,
// then record appearance, which makes diff output reproducible.
type ObjectGroup struct {
	Type    ObjectType
	Name    string
	Members []ObjectRecord
}

// ParseWarning records a structurally malformed block that was dropped. It
// never aborts the parse of the rest of the file.
type ParseWarning struct {
	File    string
	Line    int
	Message string
}

// ParseResult is the outcome of parsing one input file. SkippedSections counts
// configuration sections whose type is outside the recognized set, so coverage
// gaps stay visible.
type ParseResult struct {
	File            string
	Records         []ObjectRecord
	Warnings        []ParseWarning
	SkippedSections map[string]int
}
