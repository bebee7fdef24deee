package physical

import (
	"fmt"

	"colq/pkg/engine/logical"
	"colq/pkg/engine/types"
)

// BinaryExpr evaluates both operands against the batch and dispatches to
// the kernel family matching the operator kind. Operand columns always
// share a length because both were evaluated against the same batch; the
// check guards hand-built trees and future multi-source operators.
type BinaryExpr struct {
	Op    logical.BinaryOp
	Left  Expression
	Right Expression
}

func (e *BinaryExpr) Evaluate(batch *types.DataBatch) (types.ColumnValue, error) {
	l, err := e.Left.Evaluate(batch)
	if err != nil {
		return nil, err
	}
	r, err := e.Right.Evaluate(batch)
	if err != nil {
		return nil, err
	}
	if l.Len() != r.Len() {
		return nil, fmt.Errorf("%w: operand lengths %d and %d in %s", types.ErrSizeMismatch, l.Len(), r.Len(), e)
	}
	switch {
	case e.Op.Logical():
		return evalLogical(e.Op, l, r)
	case e.Op.Comparison():
		return evalComparison(e.Op, l, r)
	case e.Op.Arithmetic():
		return evalArithmetic(e.Op, l, r)
	}
	return nil, fmt.Errorf("%w: no kernel for operator %s", types.ErrUnsupportedOperation, e.Op)
}

func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right)
}
