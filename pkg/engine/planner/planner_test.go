package planner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"colq/pkg/engine/datasource"
	"colq/pkg/engine/logical"
	"colq/pkg/engine/physical"
	"colq/pkg/engine/planner"
	"colq/pkg/engine/types"
)

func employeeScan(t *testing.T) *logical.Scan {
	t.Helper()
	schema, err := types.NewTableSchema([]types.SchemaField{
		{Name: "id", Type: types.Int64},
		{Name: "first_name", Type: types.String},
		{Name: "state", Type: types.String},
	})
	require.NoError(t, err)
	source, err := datasource.NewMemorySource(nil, &schema)
	require.NoError(t, err)
	scan, err := logical.NewScan("employees", source, nil)
	require.NoError(t, err)
	return scan
}

func TestCreatePhysicalPlan(t *testing.T) {
	p := planner.New()
	scan := employeeScan(t)

	t.Run("scan", func(t *testing.T) {
		phys, err := p.CreatePhysicalPlan(scan)
		require.NoError(t, err)
		exec, ok := phys.(*physical.ScanExec)
		require.True(t, ok)
		assert.Equal(t, scan.Schema(), exec.Schema())
		assert.Empty(t, exec.Children())
	})

	t.Run("filter wraps its lowered input", func(t *testing.T) {
		filter := logical.NewFilter(scan, logical.Eq(logical.Col("state"), logical.Lit("CO")))
		phys, err := p.CreatePhysicalPlan(filter)
		require.NoError(t, err)
		exec, ok := phys.(*physical.FilterExec)
		require.True(t, ok)
		assert.Equal(t, scan.Schema(), exec.Schema())
		require.Len(t, exec.Children(), 1)
	})

	t.Run("projection reuses the logical schema", func(t *testing.T) {
		proj, err := logical.NewProjection(scan, []logical.Expr{
			logical.Alias(logical.Mul(logical.Col("id"), logical.Lit(int64(2))), "new_id"),
			logical.Col("first_name"),
		})
		require.NoError(t, err)

		phys, err := p.CreatePhysicalPlan(proj)
		require.NoError(t, err)
		exec, ok := phys.(*physical.ProjectionExec)
		require.True(t, ok)
		assert.Equal(t, proj.Schema(), exec.Schema())
		assert.Equal(t, "ProjectionExec: (#0 * 2), #1", exec.String())
	})
}

func TestCreatePhysicalExpr(t *testing.T) {
	p := planner.New()
	schema := employeeScan(t).Schema()

	t.Run("column name resolves to a position", func(t *testing.T) {
		e, err := p.CreatePhysicalExpr(logical.Col("state"), schema)
		require.NoError(t, err)
		assert.Equal(t, "#2", e.String())
	})

	t.Run("unknown column fails", func(t *testing.T) {
		_, err := p.CreatePhysicalExpr(logical.Col("bonus"), schema)
		assert.ErrorIs(t, err, types.ErrColumnNotFound)
	})

	t.Run("column index is bounds-checked", func(t *testing.T) {
		e, err := p.CreatePhysicalExpr(logical.ColAt(1), schema)
		require.NoError(t, err)
		assert.Equal(t, "#1", e.String())

		_, err = p.CreatePhysicalExpr(logical.ColAt(7), schema)
		assert.ErrorIs(t, err, types.ErrColumnNotFound)
	})

	t.Run("alias lowers transparently", func(t *testing.T) {
		e, err := p.CreatePhysicalExpr(logical.Alias(logical.Col("id"), "renamed"), schema)
		require.NoError(t, err)
		assert.Equal(t, "#0", e.String())
	})

	t.Run("binary nodes lower recursively", func(t *testing.T) {
		e, err := p.CreatePhysicalExpr(
			logical.And(
				logical.Eq(logical.Col("state"), logical.Lit("CO")),
				logical.Gt(logical.Col("id"), logical.Lit(int64(5))),
			),
			schema,
		)
		require.NoError(t, err)
		assert.Equal(t, "((#2 = 'CO') AND (#0 > 5))", e.String())
	})

	t.Run("scalar functions have no lowering yet", func(t *testing.T) {
		fn := logical.Func("upper", []logical.Expr{logical.Col("state")}, types.String)
		_, err := p.CreatePhysicalExpr(fn, schema)
		assert.ErrorIs(t, err, types.ErrUnsupportedOperation)
	})
}

func TestOptimizerIdentity(t *testing.T) {
	scan := employeeScan(t)
	plan, err := planner.NewOptimizer().Optimize(scan)
	require.NoError(t, err)
	assert.Same(t, logical.Plan(scan), plan)
}
