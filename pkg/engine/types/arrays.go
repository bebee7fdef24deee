package types

import "fmt"

// Array column helpers shared by the physical operators and the columnar
// file format: positional compaction, range slicing, concatenation and
// materialization of arbitrary ColumnValues.

func take[T any](s []T, indices []int) []T {
	out := make([]T, len(indices))
	for j, idx := range indices {
		out[j] = s[idx]
	}
	return out
}

// TakeArray compacts c to the given row positions, in order. Every index
// must lie inside [0, c.Len()).
func TakeArray(c *ArrayColumn, indices []int) (*ArrayColumn, error) {
	for _, idx := range indices {
		if idx < 0 || idx >= c.length {
			return nil, fmt.Errorf("%w: take index %d outside [0, %d)", ErrIndexOutOfRange, idx, c.length)
		}
	}
	switch v := c.values.(type) {
	case []bool:
		return &ArrayColumn{dtype: c.dtype, values: take(v, indices), length: len(indices)}, nil
	case []int8:
		return &ArrayColumn{dtype: c.dtype, values: take(v, indices), length: len(indices)}, nil
	case []int16:
		return &ArrayColumn{dtype: c.dtype, values: take(v, indices), length: len(indices)}, nil
	case []int32:
		return &ArrayColumn{dtype: c.dtype, values: take(v, indices), length: len(indices)}, nil
	case []int64:
		return &ArrayColumn{dtype: c.dtype, values: take(v, indices), length: len(indices)}, nil
	case []uint8:
		return &ArrayColumn{dtype: c.dtype, values: take(v, indices), length: len(indices)}, nil
	case []uint16:
		return &ArrayColumn{dtype: c.dtype, values: take(v, indices), length: len(indices)}, nil
	case []uint32:
		return &ArrayColumn{dtype: c.dtype, values: take(v, indices), length: len(indices)}, nil
	case []uint64:
		return &ArrayColumn{dtype: c.dtype, values: take(v, indices), length: len(indices)}, nil
	case []float32:
		return &ArrayColumn{dtype: c.dtype, values: take(v, indices), length: len(indices)}, nil
	case []float64:
		return &ArrayColumn{dtype: c.dtype, values: take(v, indices), length: len(indices)}, nil
	case []string:
		return &ArrayColumn{dtype: c.dtype, values: take(v, indices), length: len(indices)}, nil
	}
	return nil, fmt.Errorf("%w: unsupported array payload %T", ErrType, c.values)
}

func slicePart[T any](s []T, start, count int) []T {
	out := make([]T, count)
	copy(out, s[start:start+count])
	return out
}

// SliceArray copies the half-open row range [start, start+count) out of c.
func SliceArray(c *ArrayColumn, start, count int) (*ArrayColumn, error) {
	if start < 0 || count < 0 || start+count > c.length {
		return nil, fmt.Errorf("%w: slice [%d, %d) outside [0, %d)", ErrIndexOutOfRange, start, start+count, c.length)
	}
	switch v := c.values.(type) {
	case []bool:
		return &ArrayColumn{dtype: c.dtype, values: slicePart(v, start, count), length: count}, nil
	case []int8:
		return &ArrayColumn{dtype: c.dtype, values: slicePart(v, start, count), length: count}, nil
	case []int16:
		return &ArrayColumn{dtype: c.dtype, values: slicePart(v, start, count), length: count}, nil
	case []int32:
		return &ArrayColumn{dtype: c.dtype, values: slicePart(v, start, count), length: count}, nil
	case []int64:
		return &ArrayColumn{dtype: c.dtype, values: slicePart(v, start, count), length: count}, nil
	case []uint8:
		return &ArrayColumn{dtype: c.dtype, values: slicePart(v, start, count), length: count}, nil
	case []uint16:
		return &ArrayColumn{dtype: c.dtype, values: slicePart(v, start, count), length: count}, nil
	case []uint32:
		return &ArrayColumn{dtype: c.dtype, values: slicePart(v, start, count), length: count}, nil
	case []uint64:
		return &ArrayColumn{dtype: c.dtype, values: slicePart(v, start, count), length: count}, nil
	case []float32:
		return &ArrayColumn{dtype: c.dtype, values: slicePart(v, start, count), length: count}, nil
	case []float64:
		return &ArrayColumn{dtype: c.dtype, values: slicePart(v, start, count), length: count}, nil
	case []string:
		return &ArrayColumn{dtype: c.dtype, values: slicePart(v, start, count), length: count}, nil
	}
	return nil, fmt.Errorf("%w: unsupported array payload %T", ErrType, c.values)
}

// EmptyArray returns a zero-row array column of the given type.
func EmptyArray(dtype DataType) *ArrayColumn {
	var values any
	switch dtype {
	case Bool:
		values = []bool{}
	case Int8:
		values = []int8{}
	case Int16:
		values = []int16{}
	case Int32:
		values = []int32{}
	case Int64:
		values = []int64{}
	case Uint8:
		values = []uint8{}
	case Uint16:
		values = []uint16{}
	case Uint32:
		values = []uint32{}
	case Uint64:
		values = []uint64{}
	case Float32:
		values = []float32{}
	case Float64:
		values = []float64{}
	default:
		values = []string{}
	}
	return &ArrayColumn{dtype: dtype, values: values, length: 0}
}

func fill[T any](n int, get func(int) (any, error)) ([]T, error) {
	out := make([]T, n)
	for i := range out {
		v, err := get(i)
		if err != nil {
			return nil, err
		}
		typed, ok := v.(T)
		if !ok {
			return nil, fmt.Errorf("%w: value %v (%T) does not fit the declared array type", ErrType, v, v)
		}
		out[i] = typed
	}
	return out, nil
}

// FromValues builds an array column of n rows by pulling each value from
// get. Every value must already carry the Go type matching dtype.
func FromValues(dtype DataType, n int, get func(int) (any, error)) (*ArrayColumn, error) {
	var (
		values any
		err    error
	)
	switch dtype {
	case Bool:
		values, err = fill[bool](n, get)
	case Int8:
		values, err = fill[int8](n, get)
	case Int16:
		values, err = fill[int16](n, get)
	case Int32:
		values, err = fill[int32](n, get)
	case Int64:
		values, err = fill[int64](n, get)
	case Uint8:
		values, err = fill[uint8](n, get)
	case Uint16:
		values, err = fill[uint16](n, get)
	case Uint32:
		values, err = fill[uint32](n, get)
	case Uint64:
		values, err = fill[uint64](n, get)
	case Float32:
		values, err = fill[float32](n, get)
	case Float64:
		values, err = fill[float64](n, get)
	case String:
		values, err = fill[string](n, get)
	default:
		return nil, fmt.Errorf("%w: cannot build array of %s", ErrType, dtype)
	}
	if err != nil {
		return nil, err
	}
	return &ArrayColumn{dtype: dtype, values: values, length: n}, nil
}

// Materialize converts any ColumnValue into an array column. Array
// columns are returned as-is; constants are expanded.
func Materialize(c ColumnValue) (*ArrayColumn, error) {
	if arr, ok := c.(*ArrayColumn); ok {
		return arr, nil
	}
	return FromValues(c.Type(), c.Len(), c.ValueAt)
}

func concat[T any](parts [][]T, total int) []T {
	out := make([]T, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// ConcatArrays concatenates columns of one type into a single array.
func ConcatArrays(dtype DataType, cols []*ArrayColumn) (*ArrayColumn, error) {
	total := 0
	for _, c := range cols {
		if c.Type() != dtype {
			return nil, fmt.Errorf("%w: cannot concatenate %s column into %s", ErrType, c.Type(), dtype)
		}
		total += c.Len()
	}
	switch dtype {
	case Bool:
		return concatAs[bool](dtype, cols, total)
	case Int8:
		return concatAs[int8](dtype, cols, total)
	case Int16:
		return concatAs[int16](dtype, cols, total)
	case Int32:
		return concatAs[int32](dtype, cols, total)
	case Int64:
		return concatAs[int64](dtype, cols, total)
	case Uint8:
		return concatAs[uint8](dtype, cols, total)
	case Uint16:
		return concatAs[uint16](dtype, cols, total)
	case Uint32:
		return concatAs[uint32](dtype, cols, total)
	case Uint64:
		return concatAs[uint64](dtype, cols, total)
	case Float32:
		return concatAs[float32](dtype, cols, total)
	case Float64:
		return concatAs[float64](dtype, cols, total)
	case String:
		return concatAs[string](dtype, cols, total)
	}
	return nil, fmt.Errorf("%w: cannot concatenate arrays of %s", ErrType, dtype)
}

func concatAs[T any](dtype DataType, cols []*ArrayColumn, total int) (*ArrayColumn, error) {
	parts := make([][]T, len(cols))
	for i, c := range cols {
		p, ok := c.values.([]T)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected payload %T for %s column", ErrType, c.values, dtype)
		}
		parts[i] = p
	}
	return &ArrayColumn{dtype: dtype, values: concat(parts, total), length: total}, nil
}
