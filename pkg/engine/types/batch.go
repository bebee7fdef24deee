package types

import "fmt"

// DataBatch is the unit passed between physical operators: a schema plus
// aligned columns. Construction validates that the column count matches
// the schema and that all columns share one length; a violated invariant
// is fatal, not recoverable.
type DataBatch struct {
	Schema  TableSchema
	Columns []ColumnValue
}

func NewDataBatch(schema TableSchema, columns []ColumnValue) (*DataBatch, error) {
	if len(columns) != len(schema.Fields) {
		return nil, fmt.Errorf("%w: schema has %d fields but batch has %d columns", ErrSchema, len(schema.Fields), len(columns))
	}
	if len(columns) > 0 {
		n := columns[0].Len()
		for i, col := range columns[1:] {
			if col.Len() != n {
				return nil, fmt.Errorf("%w: column %d has length %d, expected %d", ErrSizeMismatch, i+1, col.Len(), n)
			}
		}
	}
	return &DataBatch{Schema: schema, Columns: columns}, nil
}

// RowCount returns the shared row count of the batch.
func (b *DataBatch) RowCount() int {
	if len(b.Columns) == 0 {
		return 0
	}
	return b.Columns[0].Len()
}

// ColumnCount returns the number of columns.
func (b *DataBatch) ColumnCount() int { return len(b.Columns) }

// Column returns the i-th column without copying.
func (b *DataBatch) Column(i int) ColumnValue { return b.Columns[i] }
