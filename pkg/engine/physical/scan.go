package physical

import (
	"fmt"

	"colq/pkg/engine/datasource"
	"colq/pkg/engine/types"
)

// ScanExec pulls batches straight from a data source. An empty
// projection keeps the source's full schema in source order.
type ScanExec struct {
	source     datasource.DataSource
	projection []string
	schema     types.TableSchema
}

func NewScanExec(source datasource.DataSource, projection []string) (*ScanExec, error) {
	schema := source.Schema()
	if len(projection) > 0 {
		selected, err := schema.Select(projection)
		if err != nil {
			return nil, err
		}
		schema = selected
	}
	return &ScanExec{source: source, projection: projection, schema: schema}, nil
}

func (s *ScanExec) Schema() types.TableSchema { return s.schema }

func (s *ScanExec) Children() []Plan { return nil }

func (s *ScanExec) Execute() (types.BatchIterator, error) {
	return s.source.Scan(s.projection)
}

func (s *ScanExec) String() string {
	if len(s.projection) == 0 {
		return fmt.Sprintf("ScanExec: projection=None, source=%T", s.source)
	}
	return fmt.Sprintf("ScanExec: projection=%v, source=%T", s.projection, s.source)
}
