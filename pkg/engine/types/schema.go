package types

import (
	"fmt"
	"strings"
)

// SchemaField is a single named, typed column descriptor.
type SchemaField struct {
	Name string
	Type DataType
}

func (f SchemaField) String() string {
	return f.Name + ":" + f.Type.String()
}

// TableSchema is an ordered sequence of uniquely-named fields. Build it
// with NewTableSchema so the uniqueness invariant holds.
type TableSchema struct {
	Fields []SchemaField
}

func NewTableSchema(fields []SchemaField) (TableSchema, error) {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, ok := seen[f.Name]; ok {
			return TableSchema{}, fmt.Errorf("%w: duplicate field name %q", ErrSchema, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return TableSchema{Fields: fields}, nil
}

// IndexOf resolves a field name to its position with a linear scan.
func (s TableSchema) IndexOf(name string) (int, bool) {
	for i, f := range s.Fields {
		if f.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Select returns a new schema containing only the named fields, in the
// order of names. All requested names must exist.
func (s TableSchema) Select(names []string) (TableSchema, error) {
	if len(names) == 0 {
		return TableSchema{}, nil
	}
	var missing []string
	selected := make([]SchemaField, 0, len(names))
	for _, name := range names {
		idx, ok := s.IndexOf(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		selected = append(selected, s.Fields[idx])
	}
	if len(missing) > 0 {
		return TableSchema{}, fmt.Errorf("%w: unknown columns %v, available: [%s]", ErrSchema, missing, s)
	}
	return NewTableSchema(selected)
}

// Names returns the field names in schema order.
func (s TableSchema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

func (s TableSchema) String() string {
	parts := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		parts[i] = f.String()
	}
	return strings.Join(parts, ", ")
}
