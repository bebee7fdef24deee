// Package engine ties the layers together: an execution context that
// optimizes, lowers and runs logical plans, a lazy frame builder on top
// of it, and a named-table catalog.
package engine

import (
	"colq/pkg/engine/datasource"
	"colq/pkg/engine/logical"
	"colq/pkg/engine/physical"
	"colq/pkg/engine/planner"
	"colq/pkg/engine/types"
)

// ExecutionContext is the session-level entry point. It is stateless
// apart from its planner and optimizer and safe to reuse across
// sequential queries.
type ExecutionContext struct {
	planner   *planner.Planner
	optimizer *planner.Optimizer
}

func NewContext() *ExecutionContext {
	return &ExecutionContext{
		planner:   planner.New(),
		optimizer: planner.NewOptimizer(),
	}
}

// FromSource starts a frame scanning the given source, labeled by uri in
// plan output.
func (ctx *ExecutionContext) FromSource(uri string, source datasource.DataSource) (*Frame, error) {
	scan, err := logical.NewScan(uri, source, nil)
	if err != nil {
		return nil, err
	}
	return &Frame{ctx: ctx, plan: scan}, nil
}

// FromBatches starts a frame over in-memory batches.
func (ctx *ExecutionContext) FromBatches(batches ...*types.DataBatch) (*Frame, error) {
	source, err := datasource.NewMemorySource(batches, nil)
	if err != nil {
		return nil, err
	}
	return ctx.FromSource("memory", source)
}

// FromColumns starts a frame over a single batch assembled from columns.
func (ctx *ExecutionContext) FromColumns(fields []types.SchemaField, columns []types.ColumnValue) (*Frame, error) {
	schema, err := types.NewTableSchema(fields)
	if err != nil {
		return nil, err
	}
	batch, err := types.NewDataBatch(schema, columns)
	if err != nil {
		return nil, err
	}
	return ctx.FromBatches(batch)
}

// PhysicalPlan optimizes and lowers a logical plan without running it.
func (ctx *ExecutionContext) PhysicalPlan(plan logical.Plan) (physical.Plan, error) {
	optimized, err := ctx.optimizer.Optimize(plan)
	if err != nil {
		return nil, err
	}
	return ctx.planner.CreatePhysicalPlan(optimized)
}

// Execute lowers the plan and opens a fresh single-pass batch stream.
func (ctx *ExecutionContext) Execute(plan logical.Plan) (types.BatchIterator, error) {
	phys, err := ctx.PhysicalPlan(plan)
	if err != nil {
		return nil, err
	}
	return phys.Execute()
}
