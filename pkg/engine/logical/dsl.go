package logical

import "colq/pkg/engine/types"

// Builder surface for constructing expression trees without touching the
// node structs directly:
//
//	Eq(Col("first_name"), Lit("Niko"))
//	Alias(Mul(Col("id"), Lit(int64(2))), "new_id")

// Col references a column by name.
func Col(name string) *ColumnExpr { return &ColumnExpr{Name: name} }

// ColAt references a column by position.
func ColAt(i int) *ColumnIndexExpr { return &ColumnIndexExpr{Index: i} }

// Lit builds the literal node matching the Go type of v.
func Lit[T bool | int64 | float32 | float64 | string](v T) Expr {
	switch v := any(v).(type) {
	case bool:
		return &LiteralBool{Value: v}
	case int64:
		return &LiteralInt64{Value: v}
	case float32:
		return &LiteralFloat32{Value: v}
	case float64:
		return &LiteralFloat64{Value: v}
	default:
		return &LiteralString{Value: v.(string)}
	}
}

// Cast reinterprets e as the target type.
func Cast(e Expr, to types.DataType) *CastExpr { return &CastExpr{Expr: e, To: to} }

// Alias renames e's output field.
func Alias(e Expr, name string) *AliasExpr { return &AliasExpr{Expr: e, Name: name} }

// Not negates a boolean expression.
func Not(e Expr) *NotExpr { return &NotExpr{Expr: e} }

// Func builds a scalar function call with a declared return type.
func Func(name string, args []Expr, returnType types.DataType) *ScalarFunctionExpr {
	return &ScalarFunctionExpr{Name: name, Args: args, ReturnType: returnType}
}

func binary(op BinaryOp, left, right Expr) *BinaryExpr {
	return &BinaryExpr{Op: op, Left: left, Right: right}
}

func And(l, r Expr) *BinaryExpr { return binary(OpAnd, l, r) }
func Or(l, r Expr) *BinaryExpr  { return binary(OpOr, l, r) }
func Eq(l, r Expr) *BinaryExpr  { return binary(OpEq, l, r) }
func Neq(l, r Expr) *BinaryExpr { return binary(OpNeq, l, r) }
func Gt(l, r Expr) *BinaryExpr  { return binary(OpGt, l, r) }
func Gte(l, r Expr) *BinaryExpr { return binary(OpGte, l, r) }
func Lt(l, r Expr) *BinaryExpr  { return binary(OpLt, l, r) }
func Lte(l, r Expr) *BinaryExpr { return binary(OpLte, l, r) }
func Add(l, r Expr) *BinaryExpr { return binary(OpAdd, l, r) }
func Sub(l, r Expr) *BinaryExpr { return binary(OpSub, l, r) }
func Mul(l, r Expr) *BinaryExpr { return binary(OpMul, l, r) }
func Div(l, r Expr) *BinaryExpr { return binary(OpDiv, l, r) }
func Mod(l, r Expr) *BinaryExpr { return binary(OpMod, l, r) }
