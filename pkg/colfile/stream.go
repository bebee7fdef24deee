package colfile

import (
	"io"

	"colq/pkg/engine/types"
)

// BatchReader reads a file's columns and hands them out in fixed-size
// batches. The file is decoded on the first Next call; subsequent calls
// slice the in-memory table.
type BatchReader struct {
	path      string
	columns   []string
	batchSize int

	table *Table
	pos   int
}

// NewBatchReader prepares a reader over path. An empty columns list
// selects every column. batchSize must be positive.
func NewBatchReader(path string, columns []string, batchSize int) *BatchReader {
	return &BatchReader{path: path, columns: columns, batchSize: batchSize}
}

// Next returns the next batch, or io.EOF once all rows were handed out.
func (br *BatchReader) Next() (*types.DataBatch, error) {
	if br.table == nil {
		table, err := ReadColumns(br.path, br.columns)
		if err != nil {
			return nil, err
		}
		br.table = table
	}
	if br.pos >= br.table.NumRows {
		// zero-row files still produce one empty batch
		if br.table.NumRows == 0 && br.pos == 0 {
			br.pos = 1
			return br.emptyBatch()
		}
		return nil, io.EOF
	}
	count := br.batchSize
	if br.pos+count > br.table.NumRows {
		count = br.table.NumRows - br.pos
	}
	cols := make([]types.ColumnValue, len(br.table.Columns))
	for i, c := range br.table.Columns {
		part, err := types.SliceArray(c, br.pos, count)
		if err != nil {
			return nil, err
		}
		cols[i] = part
	}
	br.pos += count
	return types.NewDataBatch(br.table.Schema, cols)
}

func (br *BatchReader) emptyBatch() (*types.DataBatch, error) {
	cols := make([]types.ColumnValue, len(br.table.Schema.Fields))
	for i, f := range br.table.Schema.Fields {
		cols[i] = types.EmptyArray(f.Type)
	}
	return types.NewDataBatch(br.table.Schema, cols)
}

// Close drops the decoded table.
func (br *BatchReader) Close() {
	br.table = nil
}
