package physical

import "colq/pkg/engine/types"

// Plan is an executable operator tree node. Execute opens a fresh
// single-pass batch stream; trees are immutable and may be executed
// repeatedly, sequentially.
type Plan interface {
	Schema() types.TableSchema
	Children() []Plan
	Execute() (types.BatchIterator, error)
	String() string
}
