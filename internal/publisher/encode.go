package publisher

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/linkedin/goavro"

	"github.com/rowforge/rowforge/internal/formatter"
	"github.com/rowforge/rowforge/internal/schema"
)

func encodeJSON(rec *formatter.Record) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}
	return data, nil
}

func encodeKey(key formatter.Row) ([]byte, error) {
	data, err := json.Marshal(key)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal key: %w", err)
	}
	return data, nil
}

// encodeAvro renders the record as a single-datum OCF block using the
// table's derived envelope codec. OCF embeds the schema, so consumers need
// no registry.
func encodeAvro(rec *formatter.Record, schemas *schema.TableSchemas) ([]byte, error) {
	codec, err := schemas.ValueCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to build avro codec: %w", err)
	}

	var buf bytes.Buffer
	writer, err := goavro.NewOCFWriter(goavro.OCFConfig{
		W:     &buf,
		Codec: codec,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create OCF writer: %w", err)
	}
	if err := writer.Append([]interface{}{recordNative(rec, schemas)}); err != nil {
		return nil, fmt.Errorf("failed to append avro record: %w", err)
	}
	return buf.Bytes(), nil
}

// recordNative converts a record to the goavro native form for the derived
// envelope schema, wrapping nullable values into their union branches.
func recordNative(rec *formatter.Record, schemas *schema.TableSchemas) map[string]interface{} {
	native := map[string]interface{}{
		"table":        rec.Table,
		"op_type":      rec.OpType,
		"op_ts":        rec.OpTimestamp,
		"current_ts":   rec.CurrentTimestamp,
		"pos":          rec.Position,
		"primary_keys": stringsNative(rec.PrimaryKeys),
		"tokens":       tokensNative(rec.Tokens),
		"source": map[string]interface{}{
			"entity":            rec.Source.Entity,
			"is_increment":      rec.Source.IsIncrement,
			"snapshot_last":     rec.Source.SnapshotLast,
			"offset_total_size": rec.Source.OffsetTotalSize,
			"offset_index":      rec.Source.OffsetIndex,
			"binlog_ts":         rec.Source.CaptureTS,
		},
		"before": rowNative(rec.Before, schemas.RowName()),
		"after":  rowNative(rec.After, schemas.RowName()),
	}
	return native
}

// rowNative wraps a payload block into the null|row union. A nil row maps
// to the null branch.
func rowNative(row formatter.Row, rowName string) interface{} {
	if row == nil {
		return nil
	}
	fields := make(map[string]interface{}, len(row))
	for name, value := range row {
		fields[schema.AvroName(name)] = unionValue(value)
	}
	return map[string]interface{}{rowName: fields}
}

// unionValue wraps a coerced value into its null|primitive union branch.
// The branch name follows directly from the Go type the coercer produced.
func unionValue(v interface{}) interface{} {
	var branch string
	switch v.(type) {
	case float64:
		branch = "double"
	case int32:
		branch = "int"
	case int64:
		branch = "long"
	case float32:
		branch = "float"
	case bool:
		branch = "boolean"
	default:
		branch = "string"
	}
	return map[string]interface{}{branch: v}
}

func stringsNative(in []string) []interface{} {
	out := make([]interface{}, 0, len(in))
	for _, s := range in {
		out = append(out, s)
	}
	return out
}

func tokensNative(in map[string]string) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
