package engine

import (
	"colq/pkg/engine/logical"
	"colq/pkg/engine/physical"
	"colq/pkg/engine/types"
)

// Frame is a lazy, immutable query builder. Each method returns a new
// frame wrapping a larger logical plan; nothing runs until Collect. A
// construction error is carried and reported at the first call that can
// return one.
type Frame struct {
	ctx  *ExecutionContext
	plan logical.Plan
	err  error
}

// Filter keeps the rows where predicate evaluates to true.
func (f *Frame) Filter(predicate logical.Expr) *Frame {
	if f.err != nil {
		return f
	}
	return &Frame{ctx: f.ctx, plan: logical.NewFilter(f.plan, predicate)}
}

// Select projects the frame through the given expressions.
func (f *Frame) Select(exprs ...logical.Expr) *Frame {
	if f.err != nil {
		return f
	}
	plan, err := logical.NewProjection(f.plan, exprs)
	if err != nil {
		return &Frame{ctx: f.ctx, plan: f.plan, err: err}
	}
	return &Frame{ctx: f.ctx, plan: plan}
}

// SelectColumns projects by column name.
func (f *Frame) SelectColumns(names ...string) *Frame {
	exprs := make([]logical.Expr, len(names))
	for i, name := range names {
		exprs[i] = logical.Col(name)
	}
	return f.Select(exprs...)
}

// Schema returns the frame's resolved output schema.
func (f *Frame) Schema() (types.TableSchema, error) {
	if f.err != nil {
		return types.TableSchema{}, f.err
	}
	return f.plan.Schema(), nil
}

// Plan exposes the underlying logical plan.
func (f *Frame) Plan() (logical.Plan, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.plan, nil
}

// Collect runs the query and materializes every batch.
func (f *Frame) Collect() ([]*types.DataBatch, error) {
	if f.err != nil {
		return nil, f.err
	}
	it, err := f.ctx.Execute(f.plan)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var batches []*types.DataBatch
	for {
		batch, err := it.NextBatch()
		if err != nil {
			return nil, err
		}
		if batch == nil {
			return batches, nil
		}
		batches = append(batches, batch)
	}
}

// Explain renders the logical and physical plan trees.
func (f *Frame) Explain(verbose bool) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	phys, err := f.ctx.PhysicalPlan(f.plan)
	if err != nil {
		return "", err
	}
	out := "===== LOGICAL PLAN =====\n" + logical.Format(f.plan, verbose) + "\n" +
		"===== PHYSICAL PLAN =====\n" + physical.Format(phys, verbose) + "\n"
	return out, nil
}
