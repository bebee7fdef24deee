package colfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"colq/pkg/engine/types"
)

// Write serializes a schema and its batches into the columnar file
// format. Batches are merged column-wise before encoding; constant
// columns are materialized.
func Write(w io.Writer, schema types.TableSchema, batches []*types.DataBatch) error {
	cols, numRows, err := mergeColumns(schema, batches)
	if err != nil {
		return err
	}

	blocks := make([][]byte, len(cols))
	for i, col := range cols {
		block, err := encodeColumn(col)
		if err != nil {
			return fmt.Errorf("colfile: encoding column %q: %w", schema.Fields[i].Name, err)
		}
		blocks[i] = block
	}

	if _, err := w.Write([]byte(beginMagic)); err != nil {
		return err
	}
	if err := writeUvarint(w, uint64(numRows)); err != nil {
		return err
	}
	if err := writeUvarint(w, uint64(len(cols))); err != nil {
		return err
	}
	for i, f := range schema.Fields {
		if err := writeUvarint(w, uint64(len(f.Name))); err != nil {
			return err
		}
		if _, err := w.Write([]byte(f.Name)); err != nil {
			return err
		}
		if _, err := w.Write([]byte{byte(f.Type)}); err != nil {
			return err
		}
		if err := writeUvarint(w, uint64(len(blocks[i]))); err != nil {
			return err
		}
	}
	for _, block := range blocks {
		if _, err := w.Write(block); err != nil {
			return err
		}
	}
	_, err = w.Write([]byte(endMagic))
	return err
}

// WriteFile serializes to a file on disk.
func WriteFile(path string, schema types.TableSchema, batches []*types.DataBatch) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, schema, batches); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func mergeColumns(schema types.TableSchema, batches []*types.DataBatch) ([]*types.ArrayColumn, int, error) {
	numRows := 0
	for _, b := range batches {
		if len(b.Columns) != len(schema.Fields) {
			return nil, 0, fmt.Errorf("%w: batch has %d columns, schema has %d fields", types.ErrSchema, len(b.Columns), len(schema.Fields))
		}
		numRows += b.RowCount()
	}
	merged := make([]*types.ArrayColumn, len(schema.Fields))
	for i, f := range schema.Fields {
		parts := make([]*types.ArrayColumn, len(batches))
		for bi, b := range batches {
			arr, err := types.Materialize(b.Columns[i])
			if err != nil {
				return nil, 0, err
			}
			parts[bi] = arr
		}
		col, err := types.ConcatArrays(f.Type, parts)
		if err != nil {
			return nil, 0, err
		}
		merged[i] = col
	}
	return merged, numRows, nil
}

func writeUvarint(w io.Writer, v uint64) error {
	tmp := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(tmp, v)
	_, err := w.Write(tmp[:n])
	return err
}

func encodeColumn(col *types.ArrayColumn) ([]byte, error) {
	switch col.Type() {
	case types.Int64:
		return encodeInt64Column(col.Values().([]int64))
	case types.String:
		return encodeStringColumn(col.Values().([]string))
	case types.Bool:
		return encodeBoolColumn(col.Values().([]bool))
	default:
		return encodeFixedColumn(col.Values())
	}
}

// encodeInt64Column applies delta encoding, zigzag and varint. Deltas
// between neighbouring values tend to be small, which keeps the varints
// short.
func encodeInt64Column(values []int64) ([]byte, error) {
	tmp := make([]byte, binary.MaxVarintLen64)
	var buf bytes.Buffer
	var prev int64
	for _, v := range values {
		delta := v - prev
		prev = v
		n := binary.PutUvarint(tmp, ZigZagEncode(delta))
		buf.Write(tmp[:n])
	}
	return buf.Bytes(), nil
}

// encodeStringColumn stores delta+varint offsets followed by the
// zstd-compressed character data:
// [uvarint len(compressedOffsets)][compressedOffsets][compressedData]
func encodeStringColumn(values []string) ([]byte, error) {
	tmp := make([]byte, binary.MaxVarintLen64)

	var offsetsBuf bytes.Buffer
	var data bytes.Buffer
	var prev uint64
	for _, s := range values {
		off := uint64(data.Len())
		// offsets are increasing, no zigzag needed
		n := binary.PutUvarint(tmp, off-prev)
		offsetsBuf.Write(tmp[:n])
		prev = off
		data.WriteString(s)
	}

	compressedData, err := zstdCompress(data.Bytes())
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	n := binary.PutUvarint(tmp, uint64(offsetsBuf.Len()))
	out.Write(tmp[:n])
	out.Write(offsetsBuf.Bytes())
	out.Write(compressedData)
	return out.Bytes(), nil
}

func encodeBoolColumn(values []bool) ([]byte, error) {
	raw := make([]byte, len(values))
	for i, v := range values {
		if v {
			raw[i] = 1
		}
	}
	return zstdCompress(raw)
}

func encodeFixedColumn(values any) ([]byte, error) {
	var raw bytes.Buffer
	if err := binary.Write(&raw, binary.LittleEndian, values); err != nil {
		return nil, err
	}
	return zstdCompress(raw.Bytes())
}

func zstdCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
