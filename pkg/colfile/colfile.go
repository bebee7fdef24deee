// Package colfile implements the engine's columnar table file format.
//
// Layout:
//
//	"ColQ"                      begin magic, 4 bytes
//	uvarint                     row count
//	uvarint                     column count
//	per column:                 uvarint name length, name bytes,
//	                            1 type byte, uvarint block size
//	column blocks               back to back, in schema order
//	"QEnd"                      end magic, 4 bytes
//
// Block encodings per data type:
//   - int64: delta encoding, then zigzag, then varint
//   - string: delta+varint offsets, zstd-compressed character data
//   - bool: one byte per value, zstd-compressed
//   - remaining fixed-width types: little-endian values, zstd-compressed
package colfile

import (
	"fmt"

	"colq/pkg/engine/types"
)

const (
	beginMagic = "ColQ"
	endMagic   = "QEnd"
)

type columnBlock struct {
	field types.SchemaField
	size  uint64
}

type fileMeta struct {
	numRows uint64
	blocks  []columnBlock
}

func (m *fileMeta) schema() (types.TableSchema, error) {
	fields := make([]types.SchemaField, len(m.blocks))
	for i, b := range m.blocks {
		fields[i] = b.field
	}
	return types.NewTableSchema(fields)
}

// Table is a fully decoded, in-memory projection of a file.
type Table struct {
	NumRows int
	Schema  types.TableSchema
	Columns []*types.ArrayColumn
}

// ZigZagEncode maps an int64 onto a uint64 so small magnitudes stay
// small after varint encoding.
func ZigZagEncode(n int64) uint64 {
	return uint64((n << 1) ^ (n >> 63))
}

// ZigZagDecode inverts ZigZagEncode.
func ZigZagDecode(z uint64) int64 {
	return int64((z >> 1) ^ uint64((int64(z&1)<<63)>>63))
}

func validColumnType(b byte) (types.DataType, error) {
	t := types.DataType(b)
	if t < types.Bool || t > types.String {
		return 0, fmt.Errorf("colfile: unknown column type byte 0x%02x", b)
	}
	return t, nil
}
