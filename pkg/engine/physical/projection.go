package physical

import (
	"fmt"
	"strings"

	"colq/pkg/engine/types"
)

// ProjectionExec evaluates a fixed expression list per batch and emits
// the results under a caller-supplied output schema.
type ProjectionExec struct {
	input  Plan
	exprs  []Expression
	schema types.TableSchema
}

func NewProjectionExec(input Plan, exprs []Expression, schema types.TableSchema) (*ProjectionExec, error) {
	if len(exprs) != len(schema.Fields) {
		return nil, fmt.Errorf("%w: %d expressions for %d output fields", types.ErrArityMismatch, len(exprs), len(schema.Fields))
	}
	return &ProjectionExec{input: input, exprs: exprs, schema: schema}, nil
}

func (p *ProjectionExec) Schema() types.TableSchema { return p.schema }

func (p *ProjectionExec) Children() []Plan { return []Plan{p.input} }

func (p *ProjectionExec) Execute() (types.BatchIterator, error) {
	in, err := p.input.Execute()
	if err != nil {
		return nil, err
	}
	return &projectionIterator{input: in, exec: p}, nil
}

func (p *ProjectionExec) String() string {
	parts := make([]string, len(p.exprs))
	for i, e := range p.exprs {
		parts[i] = e.String()
	}
	return "ProjectionExec: " + strings.Join(parts, ", ")
}

type projectionIterator struct {
	input types.BatchIterator
	exec  *ProjectionExec
}

func (it *projectionIterator) NextBatch() (*types.DataBatch, error) {
	batch, err := it.input.NextBatch()
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, nil
	}
	cols := make([]types.ColumnValue, len(it.exec.exprs))
	for i, expr := range it.exec.exprs {
		col, err := expr.Evaluate(batch)
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}
	// batch construction re-validates row-count alignment
	return types.NewDataBatch(it.exec.schema, cols)
}

func (it *projectionIterator) Close() {
	it.input.Close()
}
