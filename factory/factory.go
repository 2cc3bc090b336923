package factory

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"struct-factory/internal/naming"
	"struct-factory/record"
)

// ErrInvalidSpecification is returned when a field specification is missing,
// not a string, or malformed.
var ErrInvalidSpecification = errors.New("invalid specification string")

// Constructor builds records with a fixed, ordered list of fields.
// A Constructor is immutable and safe for concurrent use.
type Constructor struct {
	fields []string
}

// MakeStruct parses a comma separated list of field names and returns a
// Constructor for it. Both "id,name" and "id, name" are accepted; multi-word
// names such as "postal code" become "postalCode".
//
// The specification is rejected when it is blank or not valid UTF-8, has an
// empty segment, repeats a field name or uses a reserved record operation name.
func MakeStruct(spec string) (*Constructor, error) {
	fields, err := ParseSpec(spec)
	if err != nil {
		return nil, err
	}

	return &Constructor{fields: fields}, nil
}

// MustMakeStruct is like MakeStruct but panics on error.
func MustMakeStruct(spec string) *Constructor {
	c, err := MakeStruct(spec)
	if err != nil {
		panic(err)
	}

	return c
}

// FromValue is MakeStruct for untyped input, e.g. values decoded from YAML or
// JSON. nil and non-string values are rejected with ErrInvalidSpecification.
func FromValue(v any) (*Constructor, error) {
	switch s := v.(type) {
	case string:
		return MakeStruct(s)
	case *string:
		if s == nil {
			return nil, fmt.Errorf("%w: got nil", ErrInvalidSpecification)
		}

		return MakeStruct(*s)
	case nil:
		return nil, fmt.Errorf("%w: got nil", ErrInvalidSpecification)
	default:
		return nil, fmt.Errorf("%w: expected a string, got %T", ErrInvalidSpecification, v)
	}
}

// ParseSpec splits a specification into field names.
func ParseSpec(spec string) ([]string, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidSpecification)
	}

	if !utf8.ValidString(spec) {
		return nil, fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidSpecification, spec)
	}

	segments := strings.Split(spec, ",")
	fields := make([]string, 0, len(segments))
	seen := make(map[string]struct{}, len(segments))

	for i, segment := range segments {
		name := naming.FieldName(segment)
		if name == "" {
			return nil, fmt.Errorf("%w: field %d of %q is empty", ErrInvalidSpecification, i+1, spec)
		}

		if record.IsReserved(name) {
			return nil, fmt.Errorf("%w: field %q is reserved", ErrInvalidSpecification, name)
		}

		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("%w: duplicate field %q", ErrInvalidSpecification, name)
		}

		seen[name] = struct{}{}
		fields = append(fields, name)
	}

	return fields, nil
}

// New returns a record with the constructor's fields set from args in order.
// Fields without a matching argument are nil; extra arguments are ignored.
func (c *Constructor) New(args ...any) *record.Record {
	return record.Positional(c.fields, args)
}

// Fields returns a copy of the field names in order.
func (c *Constructor) Fields() []string {
	return append([]string(nil), c.fields...)
}

// Len returns the number of fields.
func (c *Constructor) Len() int {
	return len(c.fields)
}

// String returns the canonical specification, e.g. "id, name, age".
func (c *Constructor) String() string {
	return strings.Join(c.fields, ", ")
}
