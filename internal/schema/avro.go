package schema

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/linkedin/goavro"

	"github.com/rowforge/rowforge/internal/cdc"
)

// codecHolder builds a goavro codec lazily, at most once. Only publishers
// configured for Avro output ever pay the build cost.
type codecHolder struct {
	once   sync.Once
	schema func() (string, error)
	codec  *goavro.Codec
	err    error
}

func newCodecHolder(schema func() (string, error)) *codecHolder {
	return &codecHolder{schema: schema}
}

func (h *codecHolder) get() (*goavro.Codec, error) {
	h.once.Do(func() {
		var s string
		if s, h.err = h.schema(); h.err == nil {
			h.codec, h.err = goavro.NewCodec(s)
		}
	})
	return h.codec, h.err
}

// ValueCodec returns the Avro codec for the full record envelope.
func (t *TableSchemas) ValueCodec() (*goavro.Codec, error) {
	return t.valueCodec.get()
}

// KeyCodec returns the Avro codec for the key block, or nil when the table
// has no key columns.
func (t *TableSchemas) KeyCodec() (*goavro.Codec, error) {
	if t.keyCodec == nil {
		return nil, nil
	}
	return t.keyCodec.get()
}

// AvroName maps an arbitrary object name onto the Avro name grammar.
func AvroName(name string) string {
	out := []byte(name)
	for i, c := range out {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9' && i > 0:
		default:
			out[i] = '_'
		}
	}
	return string(out)
}

// AvroType maps a source type class onto its Avro primitive. It doubles as
// the union branch name for typed column values.
func AvroType(dt cdc.DataType) string {
	switch dt {
	case cdc.TypeNumeric, cdc.TypeDouble:
		return "double"
	case cdc.TypeBit, cdc.TypeTinyInt, cdc.TypeSmallInt, cdc.TypeInteger:
		return "int"
	case cdc.TypeBigInt:
		return "long"
	case cdc.TypeFloat, cdc.TypeReal:
		return "float"
	case cdc.TypeBoolean:
		return "boolean"
	}
	return "string"
}

// rowFields renders the column fields of a row record. Every field is a
// nullable union defaulting to null, so that omitted columns serialize.
func rowFields(fields []Field) []map[string]any {
	out := make([]map[string]any, 0, len(fields))
	for _, f := range fields {
		out = append(out, map[string]any{
			"name":    AvroName(f.Name),
			"type":    []any{"null", AvroType(f.Type)},
			"default": nil,
		})
	}
	return out
}

// envelopeSchema builds the Avro schema JSON for a table's record envelope:
// fixed metadata fields, the source block, and nullable before/after rows.
func envelopeSchema(table string, fields []Field) (string, error) {
	rowName := AvroName(table) + "_row"
	row := map[string]any{
		"type":   "record",
		"name":   rowName,
		"fields": rowFields(fields),
	}
	source := map[string]any{
		"type": "record",
		"name": "source_info",
		"fields": []map[string]any{
			{"name": "entity", "type": "string"},
			{"name": "is_increment", "type": "boolean"},
			{"name": "snapshot_last", "type": "boolean"},
			{"name": "offset_total_size", "type": "long"},
			{"name": "offset_index", "type": "long"},
			{"name": "binlog_ts", "type": "long"},
		},
	}
	envelope := map[string]any{
		"type": "record",
		"name": AvroName(table) + "_envelope",
		"fields": []map[string]any{
			{"name": "table", "type": "string"},
			{"name": "op_type", "type": "string"},
			{"name": "op_ts", "type": "string"},
			{"name": "current_ts", "type": "string"},
			{"name": "pos", "type": "string"},
			{"name": "primary_keys", "type": map[string]any{"type": "array", "items": "string"}, "default": []any{}},
			{"name": "tokens", "type": map[string]any{"type": "map", "values": "string"}, "default": map[string]any{}},
			{"name": "source", "type": source},
			{"name": "before", "type": []any{"null", row}, "default": nil},
			{"name": "after", "type": []any{"null", rowName}, "default": nil},
		},
	}
	return marshalSchema(envelope)
}

// keySchema builds the Avro schema JSON for a table's key block.
func keySchema(table string, fields []Field) (string, error) {
	key := map[string]any{
		"type":   "record",
		"name":   AvroName(table) + "_key",
		"fields": rowFields(fields),
	}
	return marshalSchema(key)
}

func marshalSchema(schema map[string]any) (string, error) {
	data, err := json.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("failed to marshal avro schema: %w", err)
	}
	return string(data), nil
}
