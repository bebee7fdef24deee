package logical

import (
	"fmt"
	"strconv"
	"strings"

	"colq/pkg/engine/types"
)

// Expr is a logical expression node: it describes a computation without
// executing it, and resolves its output field (name and type) against an
// input plan during planning. The node set is closed; the planner rejects
// anything it does not recognize.
type Expr interface {
	// ToField resolves this expression against the input plan's schema.
	ToField(input Plan) (types.SchemaField, error)
	String() string

	logicalExpr()
}

// BinaryOp enumerates the binary operator kinds.
type BinaryOp int

const (
	OpAnd BinaryOp = iota
	OpOr
	OpEq
	OpNeq
	OpGt
	OpGte
	OpLt
	OpLte
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
)

func (op BinaryOp) String() string {
	switch op {
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	case OpEq:
		return "="
	case OpNeq:
		return "!="
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	case OpLt:
		return "<"
	case OpLte:
		return "<="
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	}
	return "UNKNOWN"
}

// Logical reports whether op is AND or OR.
func (op BinaryOp) Logical() bool { return op == OpAnd || op == OpOr }

// Comparison reports whether op yields a boolean from two comparable
// operands.
func (op BinaryOp) Comparison() bool { return op >= OpEq && op <= OpLte }

// Arithmetic reports whether op is a numeric operator.
func (op BinaryOp) Arithmetic() bool { return op >= OpAdd && op <= OpMod }

// ColumnExpr references a column by name.
type ColumnExpr struct {
	Name string
}

func (e *ColumnExpr) ToField(input Plan) (types.SchemaField, error) {
	for _, f := range input.Schema().Fields {
		if f.Name == e.Name {
			return f, nil
		}
	}
	return types.SchemaField{}, fmt.Errorf("%w: no column named %q in schema [%s]", types.ErrColumnNotFound, e.Name, input.Schema())
}

func (e *ColumnExpr) String() string { return "#" + e.Name }

// ColumnIndexExpr references a column by position.
type ColumnIndexExpr struct {
	Index int
}

func (e *ColumnIndexExpr) ToField(input Plan) (types.SchemaField, error) {
	fields := input.Schema().Fields
	if e.Index < 0 || e.Index >= len(fields) {
		return types.SchemaField{}, fmt.Errorf("%w: column index %d outside [0, %d)", types.ErrColumnNotFound, e.Index, len(fields))
	}
	return fields[e.Index], nil
}

func (e *ColumnIndexExpr) String() string { return fmt.Sprintf("#%d", e.Index) }

// Literal nodes resolve to a field named by their textual rendering.

type LiteralBool struct {
	Value bool
}

func (e *LiteralBool) ToField(Plan) (types.SchemaField, error) {
	return types.SchemaField{Name: e.String(), Type: types.Bool}, nil
}

func (e *LiteralBool) String() string {
	if e.Value {
		return "TRUE"
	}
	return "FALSE"
}

type LiteralInt64 struct {
	Value int64
}

func (e *LiteralInt64) ToField(Plan) (types.SchemaField, error) {
	return types.SchemaField{Name: e.String(), Type: types.Int64}, nil
}

func (e *LiteralInt64) String() string { return strconv.FormatInt(e.Value, 10) }

type LiteralFloat32 struct {
	Value float32
}

func (e *LiteralFloat32) ToField(Plan) (types.SchemaField, error) {
	return types.SchemaField{Name: e.String(), Type: types.Float32}, nil
}

func (e *LiteralFloat32) String() string {
	return strconv.FormatFloat(float64(e.Value), 'g', -1, 32)
}

type LiteralFloat64 struct {
	Value float64
}

func (e *LiteralFloat64) ToField(Plan) (types.SchemaField, error) {
	return types.SchemaField{Name: e.String(), Type: types.Float64}, nil
}

func (e *LiteralFloat64) String() string {
	return strconv.FormatFloat(e.Value, 'g', -1, 64)
}

type LiteralString struct {
	Value string
}

func (e *LiteralString) ToField(Plan) (types.SchemaField, error) {
	return types.SchemaField{Name: e.String(), Type: types.String}, nil
}

func (e *LiteralString) String() string { return "'" + e.Value + "'" }

// CastExpr reinterprets its inner expression as another type. The field
// keeps the inner expression's name.
type CastExpr struct {
	Expr Expr
	To   types.DataType
}

func (e *CastExpr) ToField(input Plan) (types.SchemaField, error) {
	f, err := e.Expr.ToField(input)
	if err != nil {
		return types.SchemaField{}, err
	}
	return types.SchemaField{Name: f.Name, Type: e.To}, nil
}

func (e *CastExpr) String() string {
	return fmt.Sprintf("CAST(%s AS %s)", e.Expr, e.To)
}

// AliasExpr renames its inner expression's output field; the type is
// inherited unchanged.
type AliasExpr struct {
	Expr Expr
	Name string
}

func (e *AliasExpr) ToField(input Plan) (types.SchemaField, error) {
	f, err := e.Expr.ToField(input)
	if err != nil {
		return types.SchemaField{}, err
	}
	return types.SchemaField{Name: e.Name, Type: f.Type}, nil
}

func (e *AliasExpr) String() string {
	return fmt.Sprintf("%s AS %s", e.Expr, e.Name)
}

// NotExpr is a boolean negation; always typed bool.
type NotExpr struct {
	Expr Expr
}

func (e *NotExpr) ToField(Plan) (types.SchemaField, error) {
	return types.SchemaField{Name: e.String(), Type: types.Bool}, nil
}

func (e *NotExpr) String() string { return fmt.Sprintf("NOT(%s)", e.Expr) }

// BinaryExpr covers comparison, boolean and arithmetic operators.
// Boolean-producing operators are always typed bool; arithmetic result
// typing uses the left operand's resolved type, a deliberate
// simplification rather than numeric promotion.
type BinaryExpr struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (e *BinaryExpr) ToField(input Plan) (types.SchemaField, error) {
	if e.Op.Arithmetic() {
		lf, err := e.Left.ToField(input)
		if err != nil {
			return types.SchemaField{}, err
		}
		return types.SchemaField{Name: e.String(), Type: lf.Type}, nil
	}
	return types.SchemaField{Name: e.String(), Type: types.Bool}, nil
}

func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right)
}

// ScalarFunctionExpr is a named function call with a declared return
// type. The logical layer resolves it; lowering is left to future
// planner revisions.
type ScalarFunctionExpr struct {
	Name       string
	Args       []Expr
	ReturnType types.DataType
}

func (e *ScalarFunctionExpr) ToField(Plan) (types.SchemaField, error) {
	return types.SchemaField{Name: e.String(), Type: e.ReturnType}, nil
}

func (e *ScalarFunctionExpr) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Name, strings.Join(args, ", "))
}

func (*ColumnExpr) logicalExpr()         {}
func (*ColumnIndexExpr) logicalExpr()    {}
func (*LiteralBool) logicalExpr()        {}
func (*LiteralInt64) logicalExpr()       {}
func (*LiteralFloat32) logicalExpr()     {}
func (*LiteralFloat64) logicalExpr()     {}
func (*LiteralString) logicalExpr()      {}
func (*CastExpr) logicalExpr()           {}
func (*AliasExpr) logicalExpr()          {}
func (*NotExpr) logicalExpr()            {}
func (*BinaryExpr) logicalExpr()         {}
func (*ScalarFunctionExpr) logicalExpr() {}
