package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"colq/pkg/engine/types"
)

func TestNewArrayColumnValidatesPayload(t *testing.T) {
	_, err := types.NewArrayColumn(types.Int64, []string{"not", "ints"})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrType)

	col, err := types.NewArrayColumn(types.Int64, []int64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 3, col.Len())
	assert.Equal(t, types.Int64, col.Type())
}

func TestArrayColumnValueAt(t *testing.T) {
	col := types.Int64Array([]int64{10, 20, 30})

	v, err := col.ValueAt(1)
	require.NoError(t, err)
	assert.Equal(t, int64(20), v)

	_, err = col.ValueAt(3)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrIndexOutOfRange)

	_, err = col.ValueAt(-1)
	assert.ErrorIs(t, err, types.ErrIndexOutOfRange)
}

func TestConstantColumn(t *testing.T) {
	col, err := types.NewConstantColumn(types.String, "CO", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, col.Len())

	v, err := col.ValueAt(3)
	require.NoError(t, err)
	assert.Equal(t, "CO", v)

	_, err = col.ValueAt(4)
	assert.ErrorIs(t, err, types.ErrIndexOutOfRange)

	t.Run("scalar must match the declared type", func(t *testing.T) {
		_, err := types.NewConstantColumn(types.Int64, "oops", 1)
		assert.ErrorIs(t, err, types.ErrType)
	})

	t.Run("WithLength keeps type and value", func(t *testing.T) {
		shrunk := col.WithLength(2)
		assert.Equal(t, 2, shrunk.Len())
		assert.Equal(t, "CO", shrunk.Value())
	})
}

func testSchema(t *testing.T) types.TableSchema {
	t.Helper()
	schema, err := types.NewTableSchema([]types.SchemaField{
		{Name: "id", Type: types.Int64},
		{Name: "name", Type: types.String},
	})
	require.NoError(t, err)
	return schema
}

func TestNewDataBatchInvariants(t *testing.T) {
	schema := testSchema(t)

	t.Run("column count must match field count", func(t *testing.T) {
		_, err := types.NewDataBatch(schema, []types.ColumnValue{
			types.Int64Array([]int64{1}),
		})
		assert.ErrorIs(t, err, types.ErrSchema)
	})

	t.Run("columns must agree in length", func(t *testing.T) {
		_, err := types.NewDataBatch(schema, []types.ColumnValue{
			types.Int64Array([]int64{1, 2}),
			types.StringArray([]string{"only one"}),
		})
		assert.ErrorIs(t, err, types.ErrSizeMismatch)
	})

	t.Run("valid batch", func(t *testing.T) {
		batch, err := types.NewDataBatch(schema, []types.ColumnValue{
			types.Int64Array([]int64{1, 2}),
			types.StringArray([]string{"a", "b"}),
		})
		require.NoError(t, err)
		assert.Equal(t, 2, batch.RowCount())
		assert.Equal(t, 2, batch.ColumnCount())
	})
}

func TestTakeArray(t *testing.T) {
	col := types.Int64Array([]int64{10, 20, 30})

	taken, err := types.TakeArray(col, []int{0, 2})
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 30}, taken.Values())

	_, err = types.TakeArray(col, []int{0, 3})
	assert.ErrorIs(t, err, types.ErrIndexOutOfRange)
}

func TestSliceArray(t *testing.T) {
	col := types.StringArray([]string{"a", "b", "c", "d"})

	part, err := types.SliceArray(col, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, part.Values())

	_, err = types.SliceArray(col, 3, 2)
	assert.ErrorIs(t, err, types.ErrIndexOutOfRange)
}

func TestMaterialize(t *testing.T) {
	t.Run("array passes through", func(t *testing.T) {
		col := types.Int64Array([]int64{1, 2})
		arr, err := types.Materialize(col)
		require.NoError(t, err)
		assert.Same(t, col, arr)
	})

	t.Run("constant expands", func(t *testing.T) {
		col, err := types.NewConstantColumn(types.Int64, int64(7), 3)
		require.NoError(t, err)
		arr, err := types.Materialize(col)
		require.NoError(t, err)
		assert.Equal(t, []int64{7, 7, 7}, arr.Values())
	})
}

func TestConcatArrays(t *testing.T) {
	a := types.Int64Array([]int64{1, 2})
	b := types.Int64Array([]int64{3})

	merged, err := types.ConcatArrays(types.Int64, []*types.ArrayColumn{a, b})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, merged.Values())

	_, err = types.ConcatArrays(types.Int64, []*types.ArrayColumn{a, types.StringArray([]string{"x"})})
	assert.ErrorIs(t, err, types.ErrType)
}
