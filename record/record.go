package record

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Names of the record operations. They are never valid field names.
const (
	PropagateArrayName  = "propagateArray"
	PropagateObjectName = "propagateObject"
	HasKeyName          = "hasKey"
	HasValueName        = "hasValue"
	ToArrayName         = "toArray"
)

var reservedNames = []string{
	PropagateArrayName,
	PropagateObjectName,
	HasKeyName,
	HasValueName,
	ToArrayName,
}

// ErrInvalidField is returned when a field name is empty or reserved.
var ErrInvalidField = errors.New("invalid field name")

// Pair is a single field as exported by ToArray.
type Pair struct {
	Key   string
	Value any
}

// String returns the pair as "[key value]".
func (p Pair) String() string {
	return fmt.Sprintf("[%s %v]", p.Key, p.Value)
}

// Record is an insertion-ordered mapping from field name to value.
// The zero value is an empty record ready to use.
type Record struct {
	fields *orderedmap.OrderedMap[string, any]
}

// New returns an empty record.
func New() *Record {
	return &Record{fields: orderedmap.New[string, any]()}
}

// Positional builds a record with names[i] = args[i]. Missing args leave the
// field set to nil, extra args are ignored. Names are expected to have been
// checked with ValidateName.
func Positional(names []string, args []any) *Record {
	r := New()

	for i, name := range names {
		var value any
		if i < len(args) {
			value = args[i]
		}

		r.fields.Set(name, value)
	}

	return r
}

// IsReserved reports whether name is one of the record operation names.
func IsReserved(name string) bool {
	for _, reserved := range reservedNames {
		if name == reserved {
			return true
		}
	}

	return false
}

// ReservedNames returns the record operation names.
func ReservedNames() []string {
	return append([]string(nil), reservedNames...)
}

// ValidateName checks that name can be used as a field name.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidField)
	}

	if IsReserved(name) {
		return fmt.Errorf("%w: %q is reserved", ErrInvalidField, name)
	}

	return nil
}

func (r *Record) init() {
	if r.fields == nil {
		r.fields = orderedmap.New[string, any]()
	}
}

// Get returns the value of a field and whether it exists.
func (r *Record) Get(key string) (any, bool) {
	if r.fields == nil {
		return nil, false
	}

	return r.fields.Get(key)
}

// Set creates or overwrites a field. An existing field keeps its position.
func (r *Record) Set(key string, value any) error {
	if err := ValidateName(key); err != nil {
		return err
	}

	r.init()
	r.fields.Set(key, value)

	return nil
}

// Len returns the number of fields.
func (r *Record) Len() int {
	if r.fields == nil {
		return 0
	}

	return r.fields.Len()
}

// All iterates over the fields in insertion order.
func (r *Record) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if r.fields == nil {
			return
		}

		for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Keys returns the field names in insertion order.
func (r *Record) Keys() []string {
	keys := make([]string, 0, r.Len())
	for k := range r.All() {
		keys = append(keys, k)
	}

	return keys
}

// Values returns the field values in insertion order.
func (r *Record) Values() []any {
	values := make([]any, 0, r.Len())
	for _, v := range r.All() {
		values = append(values, v)
	}

	return values
}

// ToArray returns the fields as [key, value] pairs in insertion order:
// constructor fields first, then propagated fields in the order they were added.
func (r *Record) ToArray() []Pair {
	pairs := make([]Pair, 0, r.Len())
	for k, v := range r.All() {
		pairs = append(pairs, Pair{Key: k, Value: v})
	}

	return pairs
}

// HasKey reports whether needle is a field name.
func (r *Record) HasKey(needle string) bool {
	_, ok := r.Get(needle)
	return ok
}

// HasValue reports whether needle equals the value of some field.
// Comparable values are compared with ==; slices, maps and functions
// match only the same underlying object.
func (r *Record) HasValue(needle any) bool {
	for _, v := range r.All() {
		if sameValue(v, needle) {
			return true
		}
	}

	return false
}

// Clone returns a shallow copy of the record.
func (r *Record) Clone() *Record {
	c := New()
	for k, v := range r.All() {
		c.fields.Set(k, v)
	}

	return c
}

// String formats the record as "{key: value, ...}".
func (r *Record) String() string {
	var sb strings.Builder

	sb.WriteByte('{')

	first := true
	for k, v := range r.All() {
		if !first {
			sb.WriteString(", ")
		}

		first = false

		fmt.Fprintf(&sb, "%s: %v", k, v)
	}

	sb.WriteByte('}')

	return sb.String()
}
