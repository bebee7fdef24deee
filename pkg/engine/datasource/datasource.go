// Package datasource defines the contract between the execution engine
// and the systems that feed it batches, plus the built-in in-memory and
// columnar-file implementations.
package datasource

import "colq/pkg/engine/types"

// DataSource supplies a schema and a lazy batch stream for a Scan. An
// empty projection means "emit all columns in schema order". The engine
// never mutates a source's schema.
type DataSource interface {
	Schema() types.TableSchema
	Scan(projection []string) (types.BatchIterator, error)
}
