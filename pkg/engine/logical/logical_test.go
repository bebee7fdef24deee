package logical_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"colq/pkg/engine/datasource"
	"colq/pkg/engine/logical"
	"colq/pkg/engine/types"
)

func employeeScan(t *testing.T) *logical.Scan {
	t.Helper()
	schema, err := types.NewTableSchema([]types.SchemaField{
		{Name: "id", Type: types.Int64},
		{Name: "first_name", Type: types.String},
		{Name: "state", Type: types.String},
		{Name: "salary", Type: types.Float64},
	})
	require.NoError(t, err)
	source, err := datasource.NewMemorySource(nil, &schema)
	require.NoError(t, err)
	scan, err := logical.NewScan("employees", source, nil)
	require.NoError(t, err)
	return scan
}

func TestScanProjectionValidation(t *testing.T) {
	scan := employeeScan(t)

	t.Run("valid projection restricts the schema", func(t *testing.T) {
		projected, err := logical.NewScan("employees", scan.Source, []string{"state", "id"})
		require.NoError(t, err)
		assert.Equal(t, "state:string, id:int64", projected.Schema().String())
	})

	t.Run("unknown columns fail fast and are listed", func(t *testing.T) {
		_, err := logical.NewScan("employees", scan.Source, []string{"id", "bonus"})
		require.Error(t, err)
		assert.ErrorIs(t, err, types.ErrSchema)
		assert.Contains(t, err.Error(), "bonus")
		assert.Contains(t, err.Error(), "first_name")
	})
}

func TestExprToField(t *testing.T) {
	scan := employeeScan(t)

	t.Run("column by name", func(t *testing.T) {
		f, err := logical.Col("salary").ToField(scan)
		require.NoError(t, err)
		assert.Equal(t, types.SchemaField{Name: "salary", Type: types.Float64}, f)
	})

	t.Run("unknown column", func(t *testing.T) {
		_, err := logical.Col("bonus").ToField(scan)
		assert.ErrorIs(t, err, types.ErrColumnNotFound)
	})

	t.Run("column by index", func(t *testing.T) {
		f, err := logical.ColAt(1).ToField(scan)
		require.NoError(t, err)
		assert.Equal(t, "first_name", f.Name)

		_, err = logical.ColAt(9).ToField(scan)
		assert.ErrorIs(t, err, types.ErrColumnNotFound)
	})

	t.Run("literals resolve to their rendering", func(t *testing.T) {
		cases := []struct {
			expr  logical.Expr
			name  string
			dtype types.DataType
		}{
			{logical.Lit(int64(2)), "2", types.Int64},
			{logical.Lit("Niko"), "'Niko'", types.String},
			{logical.Lit(true), "TRUE", types.Bool},
			{logical.Lit(float32(1.5)), "1.5", types.Float32},
			{logical.Lit(2.25), "2.25", types.Float64},
		}
		for _, tc := range cases {
			f, err := tc.expr.ToField(scan)
			require.NoError(t, err)
			assert.Equal(t, tc.name, f.Name)
			assert.Equal(t, tc.dtype, f.Type)
		}
	})

	t.Run("alias renames but keeps the type", func(t *testing.T) {
		inner := logical.Mul(logical.Col("id"), logical.Lit(int64(2)))
		aliased := logical.Alias(inner, "new_id")

		f, err := aliased.ToField(scan)
		require.NoError(t, err)
		assert.Equal(t, "new_id", f.Name)

		innerField, err := inner.ToField(scan)
		require.NoError(t, err)
		assert.Equal(t, innerField.Type, f.Type)
	})

	t.Run("arithmetic takes the left operand's type", func(t *testing.T) {
		f, err := logical.Add(logical.Col("salary"), logical.Col("id")).ToField(scan)
		require.NoError(t, err)
		assert.Equal(t, types.Float64, f.Type)
	})

	t.Run("comparisons are bool", func(t *testing.T) {
		f, err := logical.Eq(logical.Col("state"), logical.Lit("CO")).ToField(scan)
		require.NoError(t, err)
		assert.Equal(t, types.Bool, f.Type)
	})

	t.Run("cast keeps the name and changes the type", func(t *testing.T) {
		f, err := logical.Cast(logical.Col("id"), types.Float64).ToField(scan)
		require.NoError(t, err)
		assert.Equal(t, "id", f.Name)
		assert.Equal(t, types.Float64, f.Type)
	})
}

func TestExprString(t *testing.T) {
	e := logical.And(
		logical.Eq(logical.Col("state"), logical.Lit("CO")),
		logical.Gte(logical.Col("salary"), logical.Lit(1000.0)),
	)
	assert.Equal(t, "((#state = 'CO') AND (#salary >= 1000))", e.String())

	assert.Equal(t, "NOT(#ok)", logical.Not(logical.Col("ok")).String())
	assert.Equal(t, "CAST(#id AS float64)", logical.Cast(logical.Col("id"), types.Float64).String())
	assert.Equal(t, "#id AS new_id", logical.Alias(logical.Col("id"), "new_id").String())
}

func TestProjectionSchema(t *testing.T) {
	scan := employeeScan(t)

	proj, err := logical.NewProjection(scan, []logical.Expr{
		logical.Alias(logical.Mul(logical.Col("id"), logical.Lit(int64(2))), "new_id"),
		logical.Col("first_name"),
	})
	require.NoError(t, err)
	assert.Equal(t, "new_id:int64, first_name:string", proj.Schema().String())
}

func TestFilterKeepsInputSchema(t *testing.T) {
	scan := employeeScan(t)
	filter := logical.NewFilter(scan, logical.Eq(logical.Col("state"), logical.Lit("CO")))
	assert.Equal(t, scan.Schema(), filter.Schema())
}

func TestExplainFormat(t *testing.T) {
	scan := employeeScan(t)
	filter := logical.NewFilter(scan, logical.Eq(logical.Col("state"), logical.Lit("CO")))
	proj, err := logical.NewProjection(filter, []logical.Expr{
		logical.Col("id"),
		logical.Col("first_name"),
	})
	require.NoError(t, err)

	t.Run("plain", func(t *testing.T) {
		want := "Projection: #id, #first_name\n" +
			"└── Filter: (#state = 'CO')\n" +
			"    └── Scan: employees; projection=None"
		assert.Equal(t, want, logical.Format(proj, false))
	})

	t.Run("verbose appends schemas", func(t *testing.T) {
		want := "Projection: #id, #first_name  [id:int64, first_name:string]\n" +
			"└── Filter: (#state = 'CO')  [id:int64, first_name:string, state:string, salary:float64]\n" +
			"    └── Scan: employees; projection=None  [id:int64, first_name:string, state:string, salary:float64]"
		assert.Equal(t, want, logical.Format(proj, true))
	})
}
