package types

import "fmt"

// DataType identifies the storage type of a column.
type DataType int

const (
	Bool DataType = iota
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	String
)

func (t DataType) String() string {
	switch t {
	case Bool:
		return "bool"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case String:
		return "string"
	}
	return fmt.Sprintf("datatype(%d)", int(t))
}

// DataTypeFromString resolves the textual rendering back to a DataType.
func DataTypeFromString(s string) (DataType, error) {
	for t := Bool; t <= String; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown data type %q", ErrType, s)
}

// IsNumeric reports whether t is an integer or floating-point type.
func (t DataType) IsNumeric() bool {
	return t >= Int8 && t <= Float64
}

// IsInteger reports whether t is a signed or unsigned integer type.
func (t DataType) IsInteger() bool {
	return t >= Int8 && t <= Uint64
}

// IsFloat reports whether t is a floating-point type.
func (t DataType) IsFloat() bool {
	return t == Float32 || t == Float64
}
