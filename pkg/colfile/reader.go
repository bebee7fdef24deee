package colfile

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"colq/pkg/engine/types"
)

// ReadSchema decodes only the file header: schema and row count.
func ReadSchema(path string) (types.TableSchema, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.TableSchema{}, 0, err
	}
	defer f.Close()

	meta, err := readMeta(bufio.NewReader(f))
	if err != nil {
		return types.TableSchema{}, 0, err
	}
	schema, err := meta.schema()
	if err != nil {
		return types.TableSchema{}, 0, err
	}
	return schema, int(meta.numRows), nil
}

// ReadColumns decodes the named columns, in the order of names. An empty
// names list decodes every column in file order. Unselected blocks are
// skipped without decompression.
func ReadColumns(path string, names []string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	meta, err := readMeta(r)
	if err != nil {
		return nil, err
	}
	full, err := meta.schema()
	if err != nil {
		return nil, err
	}

	schema := full
	if len(names) > 0 {
		schema, err = full.Select(names)
		if err != nil {
			return nil, err
		}
	}

	wanted := make(map[string]struct{}, len(schema.Fields))
	for _, fld := range schema.Fields {
		wanted[fld.Name] = struct{}{}
	}

	decoded := make(map[string]*types.ArrayColumn, len(wanted))
	for _, block := range meta.blocks {
		if _, ok := wanted[block.field.Name]; !ok {
			if _, err := io.CopyN(io.Discard, r, int64(block.size)); err != nil {
				return nil, fmt.Errorf("colfile: skipping column %q: %w", block.field.Name, err)
			}
			continue
		}
		raw := make([]byte, block.size)
		if _, err := io.ReadFull(r, raw); err != nil {
			return nil, fmt.Errorf("colfile: reading column %q: %w", block.field.Name, err)
		}
		col, err := decodeColumn(block.field, raw, int(meta.numRows))
		if err != nil {
			return nil, fmt.Errorf("colfile: decoding column %q: %w", block.field.Name, err)
		}
		decoded[block.field.Name] = col
	}

	trailer := make([]byte, len(endMagic))
	if _, err := io.ReadFull(r, trailer); err != nil {
		return nil, fmt.Errorf("colfile: reading end magic: %w", err)
	}
	if string(trailer) != endMagic {
		return nil, fmt.Errorf("colfile: bad end magic %q", trailer)
	}

	cols := make([]*types.ArrayColumn, len(schema.Fields))
	for i, fld := range schema.Fields {
		cols[i] = decoded[fld.Name]
	}
	return &Table{NumRows: int(meta.numRows), Schema: schema, Columns: cols}, nil
}

func readMeta(r *bufio.Reader) (*fileMeta, error) {
	magic := make([]byte, len(beginMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("colfile: reading magic: %w", err)
	}
	if string(magic) != beginMagic {
		return nil, fmt.Errorf("colfile: bad magic %q", magic)
	}

	numRows, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("colfile: reading row count: %w", err)
	}
	numCols, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("colfile: reading column count: %w", err)
	}

	meta := &fileMeta{numRows: numRows, blocks: make([]columnBlock, numCols)}
	for i := range meta.blocks {
		nameLen, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, fmt.Errorf("colfile: reading name length: %w", err)
		}
		name := make([]byte, nameLen)
		if _, err := io.ReadFull(r, name); err != nil {
			return nil, fmt.Errorf("colfile: reading column name: %w", err)
		}
		typeByte, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("colfile: reading column type: %w", err)
		}
		colType, err := validColumnType(typeByte)
		if err != nil {
			return nil, err
		}
		size, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, fmt.Errorf("colfile: reading block size: %w", err)
		}
		meta.blocks[i] = columnBlock{
			field: types.SchemaField{Name: string(name), Type: colType},
			size:  size,
		}
	}
	return meta, nil
}

func decodeColumn(field types.SchemaField, raw []byte, numRows int) (*types.ArrayColumn, error) {
	switch field.Type {
	case types.Int64:
		return decodeInt64Column(raw, numRows)
	case types.String:
		return decodeStringColumn(raw, numRows)
	case types.Bool:
		return decodeBoolColumn(raw, numRows)
	case types.Int8:
		return decodeFixedColumn[int8](raw, numRows, field.Type)
	case types.Int16:
		return decodeFixedColumn[int16](raw, numRows, field.Type)
	case types.Int32:
		return decodeFixedColumn[int32](raw, numRows, field.Type)
	case types.Uint8:
		return decodeFixedColumn[uint8](raw, numRows, field.Type)
	case types.Uint16:
		return decodeFixedColumn[uint16](raw, numRows, field.Type)
	case types.Uint32:
		return decodeFixedColumn[uint32](raw, numRows, field.Type)
	case types.Uint64:
		return decodeFixedColumn[uint64](raw, numRows, field.Type)
	case types.Float32:
		return decodeFixedColumn[float32](raw, numRows, field.Type)
	case types.Float64:
		return decodeFixedColumn[float64](raw, numRows, field.Type)
	}
	return nil, fmt.Errorf("colfile: no decoder for %s", field.Type)
}

func decodeInt64Column(raw []byte, numRows int) (*types.ArrayColumn, error) {
	r := bytes.NewReader(raw)
	values := make([]int64, numRows)
	var prev int64
	for i := range values {
		zz, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, fmt.Errorf("reading delta at row %d: %w", i, err)
		}
		prev += ZigZagDecode(zz)
		values[i] = prev
	}
	return types.Int64Array(values), nil
}

func decodeStringColumn(raw []byte, numRows int) (*types.ArrayColumn, error) {
	r := bytes.NewReader(raw)
	offsetsLen, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("reading offsets length: %w", err)
	}
	offsetsRaw := make([]byte, offsetsLen)
	if _, err := io.ReadFull(r, offsetsRaw); err != nil {
		return nil, fmt.Errorf("reading offsets: %w", err)
	}

	offsetReader := bytes.NewReader(offsetsRaw)
	offsets := make([]uint64, numRows)
	var prev uint64
	for i := range offsets {
		delta, err := binary.ReadUvarint(offsetReader)
		if err != nil {
			return nil, fmt.Errorf("decoding offset at row %d: %w", i, err)
		}
		prev += delta
		offsets[i] = prev
	}

	compressed := make([]byte, r.Len())
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, fmt.Errorf("reading character data: %w", err)
	}
	data, err := zstdDecompress(compressed)
	if err != nil {
		return nil, err
	}

	values := make([]string, numRows)
	for i := range values {
		start := offsets[i]
		end := uint64(len(data))
		if i+1 < numRows {
			end = offsets[i+1]
		}
		values[i] = string(data[start:end])
	}
	return types.StringArray(values), nil
}

func decodeBoolColumn(raw []byte, numRows int) (*types.ArrayColumn, error) {
	data, err := zstdDecompress(raw)
	if err != nil {
		return nil, err
	}
	if len(data) != numRows {
		return nil, fmt.Errorf("bool column has %d bytes for %d rows", len(data), numRows)
	}
	values := make([]bool, numRows)
	for i, b := range data {
		values[i] = b != 0
	}
	return types.BoolArray(values), nil
}

func decodeFixedColumn[T any](raw []byte, numRows int, dtype types.DataType) (*types.ArrayColumn, error) {
	data, err := zstdDecompress(raw)
	if err != nil {
		return nil, err
	}
	values := make([]T, numRows)
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, values); err != nil {
		return nil, err
	}
	return types.NewArrayColumn(dtype, values)
}

func zstdDecompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}
