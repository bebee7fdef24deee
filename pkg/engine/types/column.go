package types

import "fmt"

// ColumnValue is the dual column representation flowing between
// operators: array-backed (one value per row) or constant (one value
// standing in for N rows). Implementations are immutable.
type ColumnValue interface {
	Type() DataType
	// ValueAt returns the value at row i, failing with
	// ErrIndexOutOfRange outside [0, Len()).
	ValueAt(i int) (any, error)
	Len() int
}

// ArrayColumn is a homogeneous array-backed column. The payload is one
// of []bool, []int8 .. []uint64, []float32, []float64 or []string,
// matching the declared DataType.
type ArrayColumn struct {
	dtype  DataType
	values any
	length int
}

func NewArrayColumn(dtype DataType, values any) (*ArrayColumn, error) {
	n, ok := payloadLength(dtype, values)
	if !ok {
		return nil, fmt.Errorf("%w: %s array expects a matching slice, got %T", ErrType, dtype, values)
	}
	return &ArrayColumn{dtype: dtype, values: values, length: n}, nil
}

func payloadLength(dtype DataType, values any) (int, bool) {
	switch dtype {
	case Bool:
		if v, ok := values.([]bool); ok {
			return len(v), true
		}
	case Int8:
		if v, ok := values.([]int8); ok {
			return len(v), true
		}
	case Int16:
		if v, ok := values.([]int16); ok {
			return len(v), true
		}
	case Int32:
		if v, ok := values.([]int32); ok {
			return len(v), true
		}
	case Int64:
		if v, ok := values.([]int64); ok {
			return len(v), true
		}
	case Uint8:
		if v, ok := values.([]uint8); ok {
			return len(v), true
		}
	case Uint16:
		if v, ok := values.([]uint16); ok {
			return len(v), true
		}
	case Uint32:
		if v, ok := values.([]uint32); ok {
			return len(v), true
		}
	case Uint64:
		if v, ok := values.([]uint64); ok {
			return len(v), true
		}
	case Float32:
		if v, ok := values.([]float32); ok {
			return len(v), true
		}
	case Float64:
		if v, ok := values.([]float64); ok {
			return len(v), true
		}
	case String:
		if v, ok := values.([]string); ok {
			return len(v), true
		}
	}
	return 0, false
}

func (c *ArrayColumn) Type() DataType { return c.dtype }

func (c *ArrayColumn) Len() int { return c.length }

// Values exposes the underlying typed slice. Callers must not mutate it.
func (c *ArrayColumn) Values() any { return c.values }

func (c *ArrayColumn) ValueAt(i int) (any, error) {
	if i < 0 || i >= c.length {
		return nil, fmt.Errorf("%w: index %d outside [0, %d)", ErrIndexOutOfRange, i, c.length)
	}
	switch v := c.values.(type) {
	case []bool:
		return v[i], nil
	case []int8:
		return v[i], nil
	case []int16:
		return v[i], nil
	case []int32:
		return v[i], nil
	case []int64:
		return v[i], nil
	case []uint8:
		return v[i], nil
	case []uint16:
		return v[i], nil
	case []uint32:
		return v[i], nil
	case []uint64:
		return v[i], nil
	case []float32:
		return v[i], nil
	case []float64:
		return v[i], nil
	case []string:
		return v[i], nil
	}
	return nil, fmt.Errorf("%w: unsupported array payload %T", ErrType, c.values)
}

// Shorthand constructors for the common payload types. These cannot fail
// because the payload kind is fixed by the signature.

func BoolArray(values []bool) *ArrayColumn {
	return &ArrayColumn{dtype: Bool, values: values, length: len(values)}
}

func Int64Array(values []int64) *ArrayColumn {
	return &ArrayColumn{dtype: Int64, values: values, length: len(values)}
}

func Float32Array(values []float32) *ArrayColumn {
	return &ArrayColumn{dtype: Float32, values: values, length: len(values)}
}

func Float64Array(values []float64) *ArrayColumn {
	return &ArrayColumn{dtype: Float64, values: values, length: len(values)}
}

func StringArray(values []string) *ArrayColumn {
	return &ArrayColumn{dtype: String, values: values, length: len(values)}
}

// ConstantColumn is a single value standing in for length rows.
type ConstantColumn struct {
	dtype  DataType
	value  any
	length int
}

func NewConstantColumn(dtype DataType, value any, length int) (*ConstantColumn, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: negative constant column length %d", ErrSizeMismatch, length)
	}
	if !scalarMatches(dtype, value) {
		return nil, fmt.Errorf("%w: %s constant expects a matching scalar, got %T", ErrType, dtype, value)
	}
	return &ConstantColumn{dtype: dtype, value: value, length: length}, nil
}

func scalarMatches(dtype DataType, value any) bool {
	switch dtype {
	case Bool:
		_, ok := value.(bool)
		return ok
	case Int8:
		_, ok := value.(int8)
		return ok
	case Int16:
		_, ok := value.(int16)
		return ok
	case Int32:
		_, ok := value.(int32)
		return ok
	case Int64:
		_, ok := value.(int64)
		return ok
	case Uint8:
		_, ok := value.(uint8)
		return ok
	case Uint16:
		_, ok := value.(uint16)
		return ok
	case Uint32:
		_, ok := value.(uint32)
		return ok
	case Uint64:
		_, ok := value.(uint64)
		return ok
	case Float32:
		_, ok := value.(float32)
		return ok
	case Float64:
		_, ok := value.(float64)
		return ok
	case String:
		_, ok := value.(string)
		return ok
	}
	return false
}

func (c *ConstantColumn) Type() DataType { return c.dtype }

func (c *ConstantColumn) Len() int { return c.length }

// Value returns the single backing value.
func (c *ConstantColumn) Value() any { return c.value }

func (c *ConstantColumn) ValueAt(i int) (any, error) {
	if i < 0 || i >= c.length {
		return nil, fmt.Errorf("%w: index %d outside [0, %d)", ErrIndexOutOfRange, i, c.length)
	}
	return c.value, nil
}

// WithLength returns a constant of the same type and value with a new
// logical length.
func (c *ConstantColumn) WithLength(length int) *ConstantColumn {
	return &ConstantColumn{dtype: c.dtype, value: c.value, length: length}
}
