package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"colq/pkg/engine/types"
)

func TestNewTableSchemaRejectsDuplicates(t *testing.T) {
	_, err := types.NewTableSchema([]types.SchemaField{
		{Name: "id", Type: types.Int64},
		{Name: "id", Type: types.String},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrSchema)
}

func TestSchemaSelect(t *testing.T) {
	schema, err := types.NewTableSchema([]types.SchemaField{
		{Name: "id", Type: types.Int64},
		{Name: "name", Type: types.String},
		{Name: "state", Type: types.String},
	})
	require.NoError(t, err)

	t.Run("returns fields in the order of names", func(t *testing.T) {
		selected, err := schema.Select([]string{"state", "id"})
		require.NoError(t, err)
		require.Len(t, selected.Fields, 2)
		assert.Equal(t, "state", selected.Fields[0].Name)
		assert.Equal(t, "id", selected.Fields[1].Name)
	})

	t.Run("fails when a name is missing", func(t *testing.T) {
		_, err := schema.Select([]string{"id", "salary"})
		require.Error(t, err)
		assert.ErrorIs(t, err, types.ErrSchema)
		assert.Contains(t, err.Error(), "salary")
	})
}

func TestSchemaString(t *testing.T) {
	schema, err := types.NewTableSchema([]types.SchemaField{
		{Name: "id", Type: types.Int64},
		{Name: "name", Type: types.String},
	})
	require.NoError(t, err)
	assert.Equal(t, "id:int64, name:string", schema.String())
}

func TestSchemaIndexOf(t *testing.T) {
	schema, err := types.NewTableSchema([]types.SchemaField{
		{Name: "id", Type: types.Int64},
		{Name: "name", Type: types.String},
	})
	require.NoError(t, err)

	idx, ok := schema.IndexOf("name")
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = schema.IndexOf("missing")
	assert.False(t, ok)
}
