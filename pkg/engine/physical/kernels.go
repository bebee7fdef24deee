package physical

import (
	"cmp"
	"fmt"
	"math"

	"colq/pkg/engine/logical"
	"colq/pkg/engine/types"
)

// Vectorized binary kernels. Same-type operands run a typed kernel over
// the raw payloads; mixed numeric types take the scalar fallback, which
// materializes values one row at a time and preserves the declared
// result type (the left operand's for arithmetic, bool otherwise).

type integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

type float interface {
	~float32 | ~float64
}

// getter covers both column shapes with one accessor. For constants the
// index is ignored, so the accessor is valid even at logical length 0.
func getter[T any](c types.ColumnValue) (func(int) T, bool) {
	switch col := c.(type) {
	case *types.ArrayColumn:
		if v, ok := col.Values().([]T); ok {
			return func(i int) T { return v[i] }, true
		}
	case *types.ConstantColumn:
		if v, ok := col.Value().(T); ok {
			return func(int) T { return v }, true
		}
	}
	return nil, false
}

func bothConstant(l, r types.ColumnValue) bool {
	_, lok := l.(*types.ConstantColumn)
	_, rok := r.(*types.ConstantColumn)
	return lok && rok
}

func errPayload(dtype types.DataType) error {
	return fmt.Errorf("%w: %s column carries a mismatched payload", types.ErrType, dtype)
}

// evalLogical: AND/OR over bool operands only.
func evalLogical(op logical.BinaryOp, l, r types.ColumnValue) (types.ColumnValue, error) {
	if l.Type() != types.Bool || r.Type() != types.Bool {
		return nil, fmt.Errorf("%w: %s requires bool operands, got %s and %s", types.ErrType, op, l.Type(), r.Type())
	}
	lg, lok := getter[bool](l)
	rg, rok := getter[bool](r)
	if !lok || !rok {
		return nil, errPayload(types.Bool)
	}
	f := func(a, b bool) bool {
		if op == logical.OpAnd {
			return a && b
		}
		return a || b
	}
	if bothConstant(l, r) {
		return types.NewConstantColumn(types.Bool, f(lg(0), rg(0)), l.Len())
	}
	out := make([]bool, l.Len())
	for i := range out {
		out[i] = f(lg(i), rg(i))
	}
	return types.BoolArray(out), nil
}

// evalComparison: typed kernel when the operand types agree, scalar
// fallback over a common numeric domain when they do not.
func evalComparison(op logical.BinaryOp, l, r types.ColumnValue) (types.ColumnValue, error) {
	if l.Type() == r.Type() {
		switch l.Type() {
		case types.Bool:
			return boolCompare(op, l, r)
		case types.Int8:
			return ordCompare[int8](op, l, r)
		case types.Int16:
			return ordCompare[int16](op, l, r)
		case types.Int32:
			return ordCompare[int32](op, l, r)
		case types.Int64:
			return ordCompare[int64](op, l, r)
		case types.Uint8:
			return ordCompare[uint8](op, l, r)
		case types.Uint16:
			return ordCompare[uint16](op, l, r)
		case types.Uint32:
			return ordCompare[uint32](op, l, r)
		case types.Uint64:
			return ordCompare[uint64](op, l, r)
		case types.Float32:
			return ordCompare[float32](op, l, r)
		case types.Float64:
			return ordCompare[float64](op, l, r)
		case types.String:
			return ordCompare[string](op, l, r)
		}
	}
	if l.Type().IsNumeric() && r.Type().IsNumeric() {
		return fallbackCompare(op, l, r)
	}
	return nil, fmt.Errorf("%w: cannot compare %s with %s", types.ErrType, l.Type(), r.Type())
}

func ordPredicate[T cmp.Ordered](op logical.BinaryOp) func(T, T) bool {
	switch op {
	case logical.OpEq:
		return func(a, b T) bool { return a == b }
	case logical.OpNeq:
		return func(a, b T) bool { return a != b }
	case logical.OpGt:
		return func(a, b T) bool { return a > b }
	case logical.OpGte:
		return func(a, b T) bool { return a >= b }
	case logical.OpLt:
		return func(a, b T) bool { return a < b }
	case logical.OpLte:
		return func(a, b T) bool { return a <= b }
	}
	return nil
}

func ordCompare[T cmp.Ordered](op logical.BinaryOp, l, r types.ColumnValue) (types.ColumnValue, error) {
	lg, lok := getter[T](l)
	rg, rok := getter[T](r)
	if !lok || !rok {
		return nil, errPayload(l.Type())
	}
	f := ordPredicate[T](op)
	if f == nil {
		return nil, fmt.Errorf("%w: %s is not a comparison", types.ErrUnsupportedOperation, op)
	}
	if bothConstant(l, r) {
		return types.NewConstantColumn(types.Bool, f(lg(0), rg(0)), l.Len())
	}
	out := make([]bool, l.Len())
	for i := range out {
		out[i] = f(lg(i), rg(i))
	}
	return types.BoolArray(out), nil
}

// boolCompare: equality only, bool has no ordering.
func boolCompare(op logical.BinaryOp, l, r types.ColumnValue) (types.ColumnValue, error) {
	if op != logical.OpEq && op != logical.OpNeq {
		return nil, fmt.Errorf("%w: %s is not defined for bool operands", types.ErrType, op)
	}
	lg, lok := getter[bool](l)
	rg, rok := getter[bool](r)
	if !lok || !rok {
		return nil, errPayload(types.Bool)
	}
	f := func(a, b bool) bool {
		if op == logical.OpEq {
			return a == b
		}
		return a != b
	}
	if bothConstant(l, r) {
		return types.NewConstantColumn(types.Bool, f(lg(0), rg(0)), l.Len())
	}
	out := make([]bool, l.Len())
	for i := range out {
		out[i] = f(lg(i), rg(i))
	}
	return types.BoolArray(out), nil
}

// fallbackCompare handles mixed numeric operand types by widening both
// sides to float64 per row.
func fallbackCompare(op logical.BinaryOp, l, r types.ColumnValue) (types.ColumnValue, error) {
	f := ordPredicate[float64](op)
	if f == nil {
		return nil, fmt.Errorf("%w: %s is not a comparison", types.ErrUnsupportedOperation, op)
	}
	row := func(lv, rv any) (bool, error) {
		a, aok := numericAsFloat64(lv)
		b, bok := numericAsFloat64(rv)
		if !aok || !bok {
			return false, fmt.Errorf("%w: cannot compare %T with %T", types.ErrType, lv, rv)
		}
		return f(a, b), nil
	}
	if bothConstant(l, r) {
		v, err := row(l.(*types.ConstantColumn).Value(), r.(*types.ConstantColumn).Value())
		if err != nil {
			return nil, err
		}
		return types.NewConstantColumn(types.Bool, v, l.Len())
	}
	out := make([]bool, l.Len())
	for i := range out {
		lv, err := l.ValueAt(i)
		if err != nil {
			return nil, err
		}
		rv, err := r.ValueAt(i)
		if err != nil {
			return nil, err
		}
		out[i], err = row(lv, rv)
		if err != nil {
			return nil, err
		}
	}
	return types.BoolArray(out), nil
}

// evalArithmetic: result type is the left operand's. Same-type operands
// run the typed kernel; mixed numeric types take the scalar fallback.
func evalArithmetic(op logical.BinaryOp, l, r types.ColumnValue) (types.ColumnValue, error) {
	if !l.Type().IsNumeric() || !r.Type().IsNumeric() {
		return nil, fmt.Errorf("%w: %s requires numeric operands, got %s and %s", types.ErrType, op, l.Type(), r.Type())
	}
	if l.Type() == r.Type() {
		switch l.Type() {
		case types.Int8:
			return intArith[int8](op, l, r)
		case types.Int16:
			return intArith[int16](op, l, r)
		case types.Int32:
			return intArith[int32](op, l, r)
		case types.Int64:
			return intArith[int64](op, l, r)
		case types.Uint8:
			return intArith[uint8](op, l, r)
		case types.Uint16:
			return intArith[uint16](op, l, r)
		case types.Uint32:
			return intArith[uint32](op, l, r)
		case types.Uint64:
			return intArith[uint64](op, l, r)
		case types.Float32:
			return floatArith[float32](op, l, r)
		case types.Float64:
			return floatArith[float64](op, l, r)
		}
	}
	return fallbackArith(op, l, r)
}

func intArith[T integer](op logical.BinaryOp, l, r types.ColumnValue) (types.ColumnValue, error) {
	lg, lok := getter[T](l)
	rg, rok := getter[T](r)
	if !lok || !rok {
		return nil, errPayload(l.Type())
	}
	f := func(a, b T) (T, error) {
		switch op {
		case logical.OpAdd:
			return a + b, nil
		case logical.OpSub:
			return a - b, nil
		case logical.OpMul:
			return a * b, nil
		case logical.OpDiv:
			if b == 0 {
				return 0, fmt.Errorf("%w: integer division by zero", types.ErrType)
			}
			return a / b, nil
		case logical.OpMod:
			if b == 0 {
				return 0, fmt.Errorf("%w: integer modulo by zero", types.ErrType)
			}
			return a % b, nil
		}
		return 0, fmt.Errorf("%w: %s is not arithmetic", types.ErrUnsupportedOperation, op)
	}
	if bothConstant(l, r) {
		v, err := f(lg(0), rg(0))
		if err != nil {
			return nil, err
		}
		return types.NewConstantColumn(l.Type(), v, l.Len())
	}
	out := make([]T, l.Len())
	for i := range out {
		v, err := f(lg(i), rg(i))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return types.NewArrayColumn(l.Type(), out)
}

// floatArith follows IEEE semantics, so division by zero yields an
// infinity rather than an error.
func floatArith[T float](op logical.BinaryOp, l, r types.ColumnValue) (types.ColumnValue, error) {
	lg, lok := getter[T](l)
	rg, rok := getter[T](r)
	if !lok || !rok {
		return nil, errPayload(l.Type())
	}
	f := func(a, b T) (T, error) {
		switch op {
		case logical.OpAdd:
			return a + b, nil
		case logical.OpSub:
			return a - b, nil
		case logical.OpMul:
			return a * b, nil
		case logical.OpDiv:
			return a / b, nil
		case logical.OpMod:
			return T(math.Mod(float64(a), float64(b))), nil
		}
		return 0, fmt.Errorf("%w: %s is not arithmetic", types.ErrUnsupportedOperation, op)
	}
	if bothConstant(l, r) {
		v, err := f(lg(0), rg(0))
		if err != nil {
			return nil, err
		}
		return types.NewConstantColumn(l.Type(), v, l.Len())
	}
	out := make([]T, l.Len())
	for i := range out {
		v, err := f(lg(i), rg(i))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return types.NewArrayColumn(l.Type(), out)
}

// fallbackArith computes row by row in the left type's numeric domain
// and renders results in the left type.
func fallbackArith(op logical.BinaryOp, l, r types.ColumnValue) (types.ColumnValue, error) {
	dtype := l.Type()
	if bothConstant(l, r) {
		v, err := arithScalar(op, l.(*types.ConstantColumn).Value(), r.(*types.ConstantColumn).Value(), dtype)
		if err != nil {
			return nil, err
		}
		return types.NewConstantColumn(dtype, v, l.Len())
	}
	return types.FromValues(dtype, l.Len(), func(i int) (any, error) {
		lv, err := l.ValueAt(i)
		if err != nil {
			return nil, err
		}
		rv, err := r.ValueAt(i)
		if err != nil {
			return nil, err
		}
		return arithScalar(op, lv, rv, dtype)
	})
}

func arithScalar(op logical.BinaryOp, lv, rv any, dtype types.DataType) (any, error) {
	if dtype.IsFloat() {
		a, aok := numericAsFloat64(lv)
		b, bok := numericAsFloat64(rv)
		if !aok || !bok {
			return nil, fmt.Errorf("%w: %s on %T and %T", types.ErrType, op, lv, rv)
		}
		var v float64
		switch op {
		case logical.OpAdd:
			v = a + b
		case logical.OpSub:
			v = a - b
		case logical.OpMul:
			v = a * b
		case logical.OpDiv:
			v = a / b
		case logical.OpMod:
			v = math.Mod(a, b)
		default:
			return nil, fmt.Errorf("%w: %s is not arithmetic", types.ErrUnsupportedOperation, op)
		}
		if dtype == types.Float32 {
			return float32(v), nil
		}
		return v, nil
	}

	a, aok := numericAsInt64(lv)
	b, bok := numericAsInt64(rv)
	if !aok || !bok {
		return nil, fmt.Errorf("%w: %s on %T and %T", types.ErrType, op, lv, rv)
	}
	var v int64
	switch op {
	case logical.OpAdd:
		v = a + b
	case logical.OpSub:
		v = a - b
	case logical.OpMul:
		v = a * b
	case logical.OpDiv:
		if b == 0 {
			return nil, fmt.Errorf("%w: integer division by zero", types.ErrType)
		}
		v = a / b
	case logical.OpMod:
		if b == 0 {
			return nil, fmt.Errorf("%w: integer modulo by zero", types.ErrType)
		}
		v = a % b
	default:
		return nil, fmt.Errorf("%w: %s is not arithmetic", types.ErrUnsupportedOperation, op)
	}
	return intScalarAs(dtype, v)
}

func intScalarAs(dtype types.DataType, v int64) (any, error) {
	switch dtype {
	case types.Int8:
		return int8(v), nil
	case types.Int16:
		return int16(v), nil
	case types.Int32:
		return int32(v), nil
	case types.Int64:
		return v, nil
	case types.Uint8:
		return uint8(v), nil
	case types.Uint16:
		return uint16(v), nil
	case types.Uint32:
		return uint32(v), nil
	case types.Uint64:
		return uint64(v), nil
	}
	return nil, fmt.Errorf("%w: %s is not an integer type", types.ErrType, dtype)
}

func numericAsInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float32:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}

func numericAsFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
