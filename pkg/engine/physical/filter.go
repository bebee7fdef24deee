package physical

import (
	"fmt"

	"colq/pkg/engine/types"
)

// FilterExec keeps the rows where the predicate evaluates to true. The
// output schema is the input's; filtering never changes column shape.
type FilterExec struct {
	input     Plan
	predicate Expression
	schema    types.TableSchema
	empty     *types.DataBatch
}

func NewFilterExec(input Plan, predicate Expression) (*FilterExec, error) {
	schema := input.Schema()
	cols := make([]types.ColumnValue, len(schema.Fields))
	for i, f := range schema.Fields {
		cols[i] = types.EmptyArray(f.Type)
	}
	empty, err := types.NewDataBatch(schema, cols)
	if err != nil {
		return nil, err
	}
	return &FilterExec{input: input, predicate: predicate, schema: schema, empty: empty}, nil
}

func (f *FilterExec) Schema() types.TableSchema { return f.schema }

func (f *FilterExec) Children() []Plan { return []Plan{f.input} }

func (f *FilterExec) Execute() (types.BatchIterator, error) {
	in, err := f.input.Execute()
	if err != nil {
		return nil, err
	}
	return &filterIterator{input: in, exec: f}, nil
}

func (f *FilterExec) String() string {
	return fmt.Sprintf("FilterExec: %s", f.predicate)
}

type filterIterator struct {
	input types.BatchIterator
	exec  *FilterExec
}

func (it *filterIterator) NextBatch() (*types.DataBatch, error) {
	batch, err := it.input.NextBatch()
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, nil
	}

	mask, err := it.exec.predicate.Evaluate(batch)
	if err != nil {
		return nil, err
	}
	if mask.Type() != types.Bool {
		return nil, fmt.Errorf("%w: filter predicate must return bool, got %s", types.ErrType, mask.Type())
	}

	// constant predicate: keep or drop the whole batch
	if c, ok := mask.(*types.ConstantColumn); ok {
		if c.Value().(bool) {
			return batch, nil
		}
		return it.exec.empty, nil
	}

	indices := keepIndices(mask.(*types.ArrayColumn))
	if len(indices) == batch.RowCount() {
		return batch, nil
	}

	cols := make([]types.ColumnValue, len(batch.Columns))
	for i, col := range batch.Columns {
		filtered, err := filterColumn(col, indices)
		if err != nil {
			return nil, err
		}
		cols[i] = filtered
	}
	return types.NewDataBatch(it.exec.schema, cols)
}

func (it *filterIterator) Close() {
	it.input.Close()
}

func keepIndices(mask *types.ArrayColumn) []int {
	values := mask.Values().([]bool)
	indices := make([]int, 0, len(values))
	for i, keep := range values {
		if keep {
			indices = append(indices, i)
		}
	}
	return indices
}

// filterColumn compacts an array column to the kept positions; a
// constant only has its logical length reduced.
func filterColumn(col types.ColumnValue, indices []int) (types.ColumnValue, error) {
	switch c := col.(type) {
	case *types.ArrayColumn:
		return types.TakeArray(c, indices)
	case *types.ConstantColumn:
		return c.WithLength(len(indices)), nil
	}
	return nil, fmt.Errorf("%w: unsupported column shape %T in filter", types.ErrType, col)
}
