// Package planner lowers logical plans into executable physical trees,
// resolving column names to positions along the way.
package planner

import (
	"fmt"

	"colq/pkg/engine/logical"
	"colq/pkg/engine/physical"
	"colq/pkg/engine/types"
)

// Planner translates the closed set of logical plan and expression
// variants; anything outside that set fails rather than degrade.
type Planner struct{}

func New() *Planner { return &Planner{} }

// CreatePhysicalPlan lowers a logical plan node and its inputs.
func (p *Planner) CreatePhysicalPlan(plan logical.Plan) (physical.Plan, error) {
	switch node := plan.(type) {
	case *logical.Scan:
		return physical.NewScanExec(node.Source, node.Projection)
	case *logical.Filter:
		input, err := p.CreatePhysicalPlan(node.Input)
		if err != nil {
			return nil, err
		}
		predicate, err := p.CreatePhysicalExpr(node.Predicate, node.Input.Schema())
		if err != nil {
			return nil, err
		}
		return physical.NewFilterExec(input, predicate)
	case *logical.Projection:
		input, err := p.CreatePhysicalPlan(node.Input)
		if err != nil {
			return nil, err
		}
		exprs := make([]physical.Expression, len(node.Exprs))
		for i, e := range node.Exprs {
			bound, err := p.CreatePhysicalExpr(e, node.Input.Schema())
			if err != nil {
				return nil, err
			}
			exprs[i] = bound
		}
		// reuse the schema the logical node already resolved
		return physical.NewProjectionExec(input, exprs, node.Schema())
	}
	return nil, fmt.Errorf("%w: no lowering for plan node %T", types.ErrUnsupportedOperation, plan)
}

// CreatePhysicalExpr lowers a logical expression against the schema of
// the plan it will execute over.
func (p *Planner) CreatePhysicalExpr(expr logical.Expr, input types.TableSchema) (physical.Expression, error) {
	switch node := expr.(type) {
	case *logical.ColumnExpr:
		for i, f := range input.Fields {
			if f.Name == node.Name {
				return &physical.ColumnExpr{Index: i}, nil
			}
		}
		return nil, fmt.Errorf("%w: no column named %q in schema [%s]", types.ErrColumnNotFound, node.Name, input)
	case *logical.ColumnIndexExpr:
		if node.Index < 0 || node.Index >= len(input.Fields) {
			return nil, fmt.Errorf("%w: column index %d outside [0, %d)", types.ErrColumnNotFound, node.Index, len(input.Fields))
		}
		return &physical.ColumnExpr{Index: node.Index}, nil
	case *logical.LiteralBool:
		return &physical.LiteralExpr{Value: node.Value, Type: types.Bool}, nil
	case *logical.LiteralInt64:
		return &physical.LiteralExpr{Value: node.Value, Type: types.Int64}, nil
	case *logical.LiteralFloat32:
		return &physical.LiteralExpr{Value: node.Value, Type: types.Float32}, nil
	case *logical.LiteralFloat64:
		return &physical.LiteralExpr{Value: node.Value, Type: types.Float64}, nil
	case *logical.LiteralString:
		return &physical.LiteralExpr{Value: node.Value, Type: types.String}, nil
	case *logical.AliasExpr:
		// aliasing only affects plan schemas, never evaluation
		return p.CreatePhysicalExpr(node.Expr, input)
	case *logical.CastExpr:
		inner, err := p.CreatePhysicalExpr(node.Expr, input)
		if err != nil {
			return nil, err
		}
		return &physical.CastExpr{Expr: inner, To: node.To}, nil
	case *logical.NotExpr:
		inner, err := p.CreatePhysicalExpr(node.Expr, input)
		if err != nil {
			return nil, err
		}
		return &physical.NotExpr{Expr: inner}, nil
	case *logical.BinaryExpr:
		left, err := p.CreatePhysicalExpr(node.Left, input)
		if err != nil {
			return nil, err
		}
		right, err := p.CreatePhysicalExpr(node.Right, input)
		if err != nil {
			return nil, err
		}
		return &physical.BinaryExpr{Op: node.Op, Left: left, Right: right}, nil
	}
	return nil, fmt.Errorf("%w: no lowering for expression %T", types.ErrUnsupportedOperation, expr)
}
