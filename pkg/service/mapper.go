package service

import (
	"encoding/json"
	"fmt"

	"colq/pkg/engine/logical"
	"colq/pkg/engine/types"
)

// QueryRequest is the wire form of a query against one table: an
// optional row filter and an optional projection list. An empty select
// list means all columns.
type QueryRequest struct {
	Select []ExprNode `json:"select,omitempty"`
	Where  *ExprNode  `json:"where,omitempty"`
}

// ExprNode is a tagged union; exactly one field must be set.
type ExprNode struct {
	Column  *string      `json:"column,omitempty"`
	Literal *LiteralNode `json:"literal,omitempty"`
	Binary  *BinaryNode  `json:"binary,omitempty"`
	Not     *ExprNode    `json:"not,omitempty"`
	Cast    *CastNode    `json:"cast,omitempty"`
	Alias   *AliasNode   `json:"alias,omitempty"`
}

type LiteralNode struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

type BinaryNode struct {
	Op    string   `json:"op"`
	Left  ExprNode `json:"left"`
	Right ExprNode `json:"right"`
}

type CastNode struct {
	Expr ExprNode `json:"expr"`
	To   string   `json:"to"`
}

type AliasNode struct {
	Expr ExprNode `json:"expr"`
	Name string   `json:"name"`
}

var binaryOps = map[string]logical.BinaryOp{
	"and": logical.OpAnd,
	"or":  logical.OpOr,
	"eq":  logical.OpEq,
	"neq": logical.OpNeq,
	"gt":  logical.OpGt,
	"gte": logical.OpGte,
	"lt":  logical.OpLt,
	"lte": logical.OpLte,
	"add": logical.OpAdd,
	"sub": logical.OpSub,
	"mul": logical.OpMul,
	"div": logical.OpDiv,
	"mod": logical.OpMod,
}

func mapExprs(nodes []ExprNode) ([]logical.Expr, error) {
	exprs := make([]logical.Expr, len(nodes))
	for i, node := range nodes {
		e, err := mapExpr(node)
		if err != nil {
			return nil, err
		}
		exprs[i] = e
	}
	return exprs, nil
}

// mapExpr converts a wire expression into a logical one.
func mapExpr(node ExprNode) (logical.Expr, error) {
	switch {
	case node.Column != nil:
		return logical.Col(*node.Column), nil
	case node.Literal != nil:
		return mapLiteral(*node.Literal)
	case node.Binary != nil:
		op, ok := binaryOps[node.Binary.Op]
		if !ok {
			return nil, fmt.Errorf("unknown binary operator %q", node.Binary.Op)
		}
		left, err := mapExpr(node.Binary.Left)
		if err != nil {
			return nil, err
		}
		right, err := mapExpr(node.Binary.Right)
		if err != nil {
			return nil, err
		}
		return &logical.BinaryExpr{Op: op, Left: left, Right: right}, nil
	case node.Not != nil:
		inner, err := mapExpr(*node.Not)
		if err != nil {
			return nil, err
		}
		return logical.Not(inner), nil
	case node.Cast != nil:
		inner, err := mapExpr(node.Cast.Expr)
		if err != nil {
			return nil, err
		}
		to, err := types.DataTypeFromString(node.Cast.To)
		if err != nil {
			return nil, err
		}
		return logical.Cast(inner, to), nil
	case node.Alias != nil:
		inner, err := mapExpr(node.Alias.Expr)
		if err != nil {
			return nil, err
		}
		return logical.Alias(inner, node.Alias.Name), nil
	}
	return nil, fmt.Errorf("expression node has no variant set")
}

func mapLiteral(lit LiteralNode) (logical.Expr, error) {
	dtype, err := types.DataTypeFromString(lit.Type)
	if err != nil {
		return nil, err
	}
	switch dtype {
	case types.Bool:
		var v bool
		if err := json.Unmarshal(lit.Value, &v); err != nil {
			return nil, fmt.Errorf("bool literal: %w", err)
		}
		return logical.Lit(v), nil
	case types.Int64:
		var v int64
		if err := json.Unmarshal(lit.Value, &v); err != nil {
			return nil, fmt.Errorf("int64 literal: %w", err)
		}
		return logical.Lit(v), nil
	case types.Float32:
		var v float32
		if err := json.Unmarshal(lit.Value, &v); err != nil {
			return nil, fmt.Errorf("float32 literal: %w", err)
		}
		return logical.Lit(v), nil
	case types.Float64:
		var v float64
		if err := json.Unmarshal(lit.Value, &v); err != nil {
			return nil, fmt.Errorf("float64 literal: %w", err)
		}
		return logical.Lit(v), nil
	case types.String:
		var v string
		if err := json.Unmarshal(lit.Value, &v); err != nil {
			return nil, fmt.Errorf("string literal: %w", err)
		}
		return logical.Lit(v), nil
	}
	return nil, fmt.Errorf("literal type %s is not supported on the wire", dtype)
}
