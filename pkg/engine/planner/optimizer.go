package planner

import "colq/pkg/engine/logical"

// Rule rewrites a logical plan into an equivalent, cheaper one.
type Rule interface {
	Apply(plan logical.Plan) (logical.Plan, error)
	Name() string
}

// Optimizer runs a fixed rule list over a logical plan before lowering.
// The default optimizer carries no rules and returns the plan untouched;
// rules slot in here once projection pushdown lands.
type Optimizer struct {
	rules []Rule
}

func NewOptimizer(rules ...Rule) *Optimizer {
	return &Optimizer{rules: rules}
}

func (o *Optimizer) Optimize(plan logical.Plan) (logical.Plan, error) {
	for _, rule := range o.rules {
		rewritten, err := rule.Apply(plan)
		if err != nil {
			return nil, err
		}
		plan = rewritten
	}
	return plan, nil
}
