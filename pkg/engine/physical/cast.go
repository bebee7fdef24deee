package physical

import (
	"fmt"
	"strconv"

	"colq/pkg/engine/types"
)

// CastExpr converts its inner result to a target type. The supported
// matrix lets bool, the numeric types and string interconvert; anything
// else fails with a cast error.
type CastExpr struct {
	Expr Expression
	To   types.DataType
}

func (e *CastExpr) Evaluate(batch *types.DataBatch) (types.ColumnValue, error) {
	col, err := e.Expr.Evaluate(batch)
	if err != nil {
		return nil, err
	}
	if col.Type() == e.To {
		return col, nil
	}
	if c, ok := col.(*types.ConstantColumn); ok {
		v, err := castScalar(c.Value(), e.To)
		if err != nil {
			return nil, err
		}
		return types.NewConstantColumn(e.To, v, c.Len())
	}
	return types.FromValues(e.To, col.Len(), func(i int) (any, error) {
		v, err := col.ValueAt(i)
		if err != nil {
			return nil, err
		}
		return castScalar(v, e.To)
	})
}

func (e *CastExpr) String() string {
	return fmt.Sprintf("CAST(%s AS %s)", e.Expr, e.To)
}

func castScalar(v any, to types.DataType) (any, error) {
	switch to {
	case types.Bool:
		return castToBool(v)
	case types.Int8, types.Int16, types.Int32, types.Int64,
		types.Uint8, types.Uint16, types.Uint32, types.Uint64:
		return castToInteger(v, to)
	case types.Float32, types.Float64:
		return castToFloat(v, to)
	case types.String:
		return castToString(v)
	}
	return nil, fmt.Errorf("%w: no cast from %T to %s", types.ErrCast, v, to)
}

func castToBool(v any) (any, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	if s, ok := v.(string); ok {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a bool", types.ErrCast, s)
		}
		return b, nil
	}
	if f, ok := numericAsFloat64(v); ok {
		return f != 0, nil
	}
	return nil, fmt.Errorf("%w: no cast from %T to bool", types.ErrCast, v)
}

func castToInteger(v any, to types.DataType) (any, error) {
	switch x := v.(type) {
	case bool:
		var n int64
		if x {
			n = 1
		}
		return intScalarAs(to, n)
	case string:
		n, err := strconv.ParseInt(x, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", types.ErrCast, x)
		}
		return intScalarAs(to, n)
	}
	if n, ok := numericAsInt64(v); ok {
		return intScalarAs(to, n)
	}
	return nil, fmt.Errorf("%w: no cast from %T to %s", types.ErrCast, v, to)
}

func castToFloat(v any, to types.DataType) (any, error) {
	var f float64
	switch x := v.(type) {
	case bool:
		if x {
			f = 1
		}
	case string:
		parsed, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a float", types.ErrCast, x)
		}
		f = parsed
	default:
		parsed, ok := numericAsFloat64(v)
		if !ok {
			return nil, fmt.Errorf("%w: no cast from %T to %s", types.ErrCast, v, to)
		}
		f = parsed
	}
	if to == types.Float32 {
		return float32(f), nil
	}
	return f, nil
}

func castToString(v any) (any, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	}
	if n, ok := numericAsInt64(v); ok {
		return strconv.FormatInt(n, 10), nil
	}
	return nil, fmt.Errorf("%w: no cast from %T to string", types.ErrCast, v)
}
