package logical

import (
	"fmt"
	"strings"

	"colq/pkg/engine/datasource"
	"colq/pkg/engine/types"
)

// Plan is a logical query plan node: a data transformation that returns
// a relation. Every node computes its output schema once, at
// construction, and caches it; schema is never recomputed.
type Plan interface {
	Schema() types.TableSchema
	Children() []Plan
	String() string

	logicalPlan()
}

// Scan reads from a data source with an optional projection. It is the
// only leaf node.
type Scan struct {
	SourceURI  string
	Source     datasource.DataSource
	Projection []string

	schema types.TableSchema
}

// NewScan validates any explicit projection against the source's schema,
// failing fast when it names unknown columns.
func NewScan(sourceURI string, source datasource.DataSource, projection []string) (*Scan, error) {
	base := source.Schema()
	schema := base
	if len(projection) > 0 {
		var missing []string
		for _, name := range projection {
			if _, ok := base.IndexOf(name); !ok {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("%w: scan projection contains unknown columns %v, available: [%s]", types.ErrSchema, missing, base)
		}
		selected, err := base.Select(projection)
		if err != nil {
			return nil, err
		}
		schema = selected
	}
	return &Scan{SourceURI: sourceURI, Source: source, Projection: projection, schema: schema}, nil
}

func (s *Scan) Schema() types.TableSchema { return s.schema }

func (s *Scan) Children() []Plan { return nil }

func (s *Scan) String() string {
	if len(s.Projection) == 0 {
		return fmt.Sprintf("Scan: %s; projection=None", s.SourceURI)
	}
	return fmt.Sprintf("Scan: %s; projection=%v", s.SourceURI, s.Projection)
}

// Filter selects rows by a boolean predicate. The schema is the input's,
// cached at construction: filtering never changes column shape.
type Filter struct {
	Input     Plan
	Predicate Expr

	schema types.TableSchema
}

func NewFilter(input Plan, predicate Expr) *Filter {
	return &Filter{Input: input, Predicate: predicate, schema: input.Schema()}
}

func (f *Filter) Schema() types.TableSchema { return f.schema }

func (f *Filter) Children() []Plan { return []Plan{f.Input} }

func (f *Filter) String() string { return fmt.Sprintf("Filter: %s", f.Predicate) }

// Projection applies a list of expressions to its input, producing a new
// schema resolved and cached at construction.
type Projection struct {
	Input Plan
	Exprs []Expr

	schema types.TableSchema
}

func NewProjection(input Plan, exprs []Expr) (*Projection, error) {
	fields := make([]types.SchemaField, len(exprs))
	for i, e := range exprs {
		f, err := e.ToField(input)
		if err != nil {
			return nil, err
		}
		fields[i] = f
	}
	schema, err := types.NewTableSchema(fields)
	if err != nil {
		return nil, err
	}
	return &Projection{Input: input, Exprs: exprs, schema: schema}, nil
}

func (p *Projection) Schema() types.TableSchema { return p.schema }

func (p *Projection) Children() []Plan { return []Plan{p.Input} }

func (p *Projection) String() string {
	parts := make([]string, len(p.Exprs))
	for i, e := range p.Exprs {
		parts[i] = e.String()
	}
	return fmt.Sprintf("Projection: %s", strings.Join(parts, ", "))
}

func (*Scan) logicalPlan()       {}
func (*Filter) logicalPlan()     {}
func (*Projection) logicalPlan() {}
