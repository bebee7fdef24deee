package types

// BatchIterator is a pull-based, single-pass, single-consumer stream of
// batches. NextBatch returns (nil, nil) once the stream is exhausted.
// Abandoning the stream carries no cleanup obligation beyond Close.
type BatchIterator interface {
	NextBatch() (*DataBatch, error)
	Close()
}

// SliceIterator streams an in-memory batch slice.
type SliceIterator struct {
	batches []*DataBatch
	pos     int
}

func NewSliceIterator(batches []*DataBatch) *SliceIterator {
	return &SliceIterator{batches: batches}
}

func (it *SliceIterator) NextBatch() (*DataBatch, error) {
	if it.pos >= len(it.batches) {
		return nil, nil
	}
	b := it.batches[it.pos]
	it.pos++
	return b, nil
}

func (it *SliceIterator) Close() {
	it.batches = nil
	it.pos = 0
}
