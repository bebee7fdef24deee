package datasource

import (
	"errors"
	"io"

	"colq/pkg/colfile"
	"colq/pkg/engine/types"
)

const defaultBatchSize = 1024

// FileSource reads batches out of a columnar table file.
type FileSource struct {
	path      string
	schema    types.TableSchema
	batchSize int
}

// OpenFileSource reads the file header to learn the schema. Column data
// is not touched until Scan.
func OpenFileSource(path string, batchSize int) (*FileSource, error) {
	schema, _, err := colfile.ReadSchema(path)
	if err != nil {
		return nil, err
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &FileSource{path: path, schema: schema, batchSize: batchSize}, nil
}

func (s *FileSource) Schema() types.TableSchema { return s.schema }

func (s *FileSource) Scan(projection []string) (types.BatchIterator, error) {
	if len(projection) > 0 {
		if _, err := s.schema.Select(projection); err != nil {
			return nil, err
		}
	}
	return &fileIterator{reader: colfile.NewBatchReader(s.path, projection, s.batchSize)}, nil
}

// fileIterator adapts BatchReader's io.EOF end marker to the iterator
// contract.
type fileIterator struct {
	reader *colfile.BatchReader
	done   bool
}

func (it *fileIterator) NextBatch() (*types.DataBatch, error) {
	if it.done {
		return nil, nil
	}
	batch, err := it.reader.Next()
	if errors.Is(err, io.EOF) {
		it.done = true
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return batch, nil
}

func (it *fileIterator) Close() {
	it.done = true
	it.reader.Close()
}
