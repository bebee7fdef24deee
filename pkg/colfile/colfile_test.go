package colfile_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"colq/pkg/colfile"
	"colq/pkg/engine/types"
)

func exampleSchema(t *testing.T) types.TableSchema {
	t.Helper()
	schema, err := types.NewTableSchema([]types.SchemaField{
		{Name: "id", Type: types.Int64},
		{Name: "name", Type: types.String},
		{Name: "active", Type: types.Bool},
		{Name: "score", Type: types.Float64},
		{Name: "age", Type: types.Uint8},
	})
	require.NoError(t, err)
	return schema
}

func exampleBatch(t *testing.T, schema types.TableSchema) *types.DataBatch {
	t.Helper()
	age, err := types.NewArrayColumn(types.Uint8, []uint8{30, 41, 25, 58})
	require.NoError(t, err)
	batch, err := types.NewDataBatch(schema, []types.ColumnValue{
		types.Int64Array([]int64{100, 101, 205, -7}),
		types.StringArray([]string{"alice", "bob", "", "charlie"}),
		types.BoolArray([]bool{true, false, false, true}),
		types.Float64Array([]float64{1.5, -2.25, 0, 99.75}),
		age,
	})
	require.NoError(t, err)
	return batch
}

func TestZigZag(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 2, -2, 1 << 40, -(1 << 40), -9223372036854775808, 9223372036854775807} {
		assert.Equal(t, v, colfile.ZigZagDecode(colfile.ZigZagEncode(v)))
	}
	// small magnitudes stay small
	assert.Equal(t, uint64(1), colfile.ZigZagEncode(-1))
	assert.Equal(t, uint64(2), colfile.ZigZagEncode(1))
}

func TestWriteReadRoundtrip(t *testing.T) {
	schema := exampleSchema(t)
	batch := exampleBatch(t, schema)
	path := filepath.Join(t.TempDir(), "example.colq")
	require.NoError(t, colfile.WriteFile(path, schema, []*types.DataBatch{batch}))

	t.Run("header only", func(t *testing.T) {
		gotSchema, rows, err := colfile.ReadSchema(path)
		require.NoError(t, err)
		assert.Equal(t, schema, gotSchema)
		assert.Equal(t, 4, rows)
	})

	t.Run("all columns", func(t *testing.T) {
		table, err := colfile.ReadColumns(path, nil)
		require.NoError(t, err)
		assert.Equal(t, 4, table.NumRows)
		require.Len(t, table.Columns, 5)
		assert.Equal(t, []int64{100, 101, 205, -7}, table.Columns[0].Values())
		assert.Equal(t, []string{"alice", "bob", "", "charlie"}, table.Columns[1].Values())
		assert.Equal(t, []bool{true, false, false, true}, table.Columns[2].Values())
		assert.Equal(t, []float64{1.5, -2.25, 0, 99.75}, table.Columns[3].Values())
		assert.Equal(t, []uint8{30, 41, 25, 58}, table.Columns[4].Values())
	})

	t.Run("projection selects and reorders", func(t *testing.T) {
		table, err := colfile.ReadColumns(path, []string{"score", "id"})
		require.NoError(t, err)
		assert.Equal(t, "score:float64, id:int64", table.Schema.String())
		assert.Equal(t, []float64{1.5, -2.25, 0, 99.75}, table.Columns[0].Values())
		assert.Equal(t, []int64{100, 101, 205, -7}, table.Columns[1].Values())
	})

	t.Run("unknown projection column fails", func(t *testing.T) {
		_, err := colfile.ReadColumns(path, []string{"id", "salary"})
		require.Error(t, err)
		assert.ErrorIs(t, err, types.ErrSchema)
	})
}

func TestWriteMergesBatches(t *testing.T) {
	schema, err := types.NewTableSchema([]types.SchemaField{
		{Name: "v", Type: types.Int64},
	})
	require.NoError(t, err)

	first, err := types.NewDataBatch(schema, []types.ColumnValue{types.Int64Array([]int64{1, 2})})
	require.NoError(t, err)
	constant, err := types.NewConstantColumn(types.Int64, int64(9), 3)
	require.NoError(t, err)
	second, err := types.NewDataBatch(schema, []types.ColumnValue{constant})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "merged.colq")
	require.NoError(t, colfile.WriteFile(path, schema, []*types.DataBatch{first, second}))

	table, err := colfile.ReadColumns(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, table.NumRows)
	assert.Equal(t, []int64{1, 2, 9, 9, 9}, table.Columns[0].Values())
}

func TestBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.colq")
	require.NoError(t, os.WriteFile(path, []byte("NOPE not a table file"), 0o644))

	_, _, err := colfile.ReadSchema(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad magic")
}

func TestBatchReader(t *testing.T) {
	schema, err := types.NewTableSchema([]types.SchemaField{
		{Name: "id", Type: types.Int64},
		{Name: "name", Type: types.String},
	})
	require.NoError(t, err)

	ids := make([]int64, 10)
	names := make([]string, 10)
	for i := range ids {
		ids[i] = int64(i)
		names[i] = string(rune('a' + i))
	}
	batch, err := types.NewDataBatch(schema, []types.ColumnValue{
		types.Int64Array(ids),
		types.StringArray(names),
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "paged.colq")
	require.NoError(t, colfile.WriteFile(path, schema, []*types.DataBatch{batch}))

	t.Run("pages through in fixed sizes", func(t *testing.T) {
		reader := colfile.NewBatchReader(path, nil, 4)
		defer reader.Close()

		sizes := []int{}
		var total int64
		for {
			b, err := reader.Next()
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			sizes = append(sizes, b.RowCount())
			for i := 0; i < b.RowCount(); i++ {
				v, err := b.Column(0).ValueAt(i)
				require.NoError(t, err)
				total += v.(int64)
			}
		}
		assert.Equal(t, []int{4, 4, 2}, sizes)
		assert.Equal(t, int64(45), total)
	})

	t.Run("column subset", func(t *testing.T) {
		reader := colfile.NewBatchReader(path, []string{"name"}, 100)
		defer reader.Close()

		b, err := reader.Next()
		require.NoError(t, err)
		assert.Equal(t, "name:string", b.Schema.String())
		assert.Equal(t, 10, b.RowCount())

		_, err = reader.Next()
		assert.Equal(t, io.EOF, err)
	})
}
