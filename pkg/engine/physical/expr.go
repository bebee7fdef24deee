// Package physical holds the executable side of the engine: bound,
// positional expressions evaluated vectorized over batches, and the
// pull-based plan operators that stream them. Physical nodes are built
// by the planner, never by hand from user input.
package physical

import (
	"fmt"
	"strconv"

	"colq/pkg/engine/types"
)

// Expression is a bound, executable expression. Evaluate returns a
// column whose length equals the batch's row count.
type Expression interface {
	Evaluate(batch *types.DataBatch) (types.ColumnValue, error)
	String() string
}

// ColumnExpr references an input column by position.
type ColumnExpr struct {
	Index int
}

func (e *ColumnExpr) Evaluate(batch *types.DataBatch) (types.ColumnValue, error) {
	if e.Index < 0 || e.Index >= batch.ColumnCount() {
		return nil, fmt.Errorf("%w: column index %d outside [0, %d)", types.ErrIndexOutOfRange, e.Index, batch.ColumnCount())
	}
	return batch.Column(e.Index), nil
}

func (e *ColumnExpr) String() string { return "#" + strconv.Itoa(e.Index) }

// LiteralExpr broadcasts one value to the input batch's length.
type LiteralExpr struct {
	Value any
	Type  types.DataType
}

func (e *LiteralExpr) Evaluate(batch *types.DataBatch) (types.ColumnValue, error) {
	return types.NewConstantColumn(e.Type, e.Value, batch.RowCount())
}

func (e *LiteralExpr) String() string {
	switch v := e.Value.(type) {
	case string:
		return "'" + v + "'"
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// NotExpr negates a boolean column.
type NotExpr struct {
	Expr Expression
}

func (e *NotExpr) Evaluate(batch *types.DataBatch) (types.ColumnValue, error) {
	col, err := e.Expr.Evaluate(batch)
	if err != nil {
		return nil, err
	}
	if col.Type() != types.Bool {
		return nil, fmt.Errorf("%w: NOT requires a bool operand, got %s", types.ErrType, col.Type())
	}
	switch c := col.(type) {
	case *types.ConstantColumn:
		return types.NewConstantColumn(types.Bool, !c.Value().(bool), c.Len())
	case *types.ArrayColumn:
		in := c.Values().([]bool)
		out := make([]bool, len(in))
		for i, v := range in {
			out[i] = !v
		}
		return types.BoolArray(out), nil
	}
	return nil, fmt.Errorf("%w: unsupported column shape %T for NOT", types.ErrType, col)
}

func (e *NotExpr) String() string { return fmt.Sprintf("NOT(%s)", e.Expr) }
