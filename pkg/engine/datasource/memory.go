package datasource

import (
	"fmt"

	"colq/pkg/engine/types"
)

// MemorySource serves a fixed slice of in-memory batches. Useful for
// tests and for frames built from already-materialized results.
type MemorySource struct {
	schema  types.TableSchema
	batches []*types.DataBatch
}

// NewMemorySource builds a source over batches. When schema is nil it is
// inferred from the first batch, which must then exist.
func NewMemorySource(batches []*types.DataBatch, schema *types.TableSchema) (*MemorySource, error) {
	if schema == nil {
		if len(batches) == 0 {
			return nil, fmt.Errorf("%w: cannot infer schema from an empty batch list", types.ErrSchema)
		}
		schema = &batches[0].Schema
	}
	return &MemorySource{schema: *schema, batches: batches}, nil
}

func (s *MemorySource) Schema() types.TableSchema { return s.schema }

func (s *MemorySource) Scan(projection []string) (types.BatchIterator, error) {
	if len(projection) == 0 {
		return types.NewSliceIterator(s.batches), nil
	}
	projected, err := s.schema.Select(projection)
	if err != nil {
		return nil, err
	}
	indices := make([]int, len(projection))
	for i, name := range projection {
		idx, _ := s.schema.IndexOf(name)
		indices[i] = idx
	}
	out := make([]*types.DataBatch, len(s.batches))
	for bi, batch := range s.batches {
		cols := make([]types.ColumnValue, len(indices))
		for i, idx := range indices {
			cols[i] = batch.Columns[idx]
		}
		projectedBatch, err := types.NewDataBatch(projected, cols)
		if err != nil {
			return nil, err
		}
		out[bi] = projectedBatch
	}
	return types.NewSliceIterator(out), nil
}
