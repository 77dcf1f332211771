package cdc

import (
	"fmt"
	"strings"
)

// OpType classifies a captured row-level change.
type OpType int

const (
	OpUnknown OpType = iota
	OpInsert
	OpUpdate
	OpDelete
	// OpPkUpdate is an update that changed one or more key column values.
	OpPkUpdate
)

var opTypeNames = map[OpType]string{
	OpUnknown:  "unknown",
	OpInsert:   "insert",
	OpUpdate:   "update",
	OpDelete:   "delete",
	OpPkUpdate: "pk-update",
}

func (t OpType) String() string {
	if name, ok := opTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("optype(%d)", int(t))
}

func (t OpType) IsInsert() bool   { return t == OpInsert }
func (t OpType) IsUpdate() bool   { return t == OpUpdate }
func (t OpType) IsDelete() bool   { return t == OpDelete }
func (t OpType) IsPkUpdate() bool { return t == OpPkUpdate }

// MarshalText encodes the operation type as its trail name.
func (t OpType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a trail name. Unrecognized names decode to OpUnknown
// rather than failing; the formatter abends on them downstream.
func (t *OpType) UnmarshalText(text []byte) error {
	for op, name := range opTypeNames {
		if name == string(text) {
			*t = op
			return nil
		}
	}
	*t = OpUnknown
	return nil
}

// ColumnValue is one captured column value. A nil *ColumnValue means the
// side was not captured at all; Null marks a captured-but-NULL value. The
// two are distinct on input and deliberately collapse on output.
type ColumnValue struct {
	Value string `json:"value"`
	Null  bool   `json:"null,omitempty"`
}

// ColumnChange carries the before and after values for a single column.
type ColumnChange struct {
	Before *ColumnValue `json:"before,omitempty"`
	After  *ColumnValue `json:"after,omitempty"`
}

// Operation is a single captured row-level event. Columns are positionally
// aligned with the owning table's column metadata.
type Operation struct {
	Type      OpType            `json:"type"`
	Table     string            `json:"table"`
	Columns   []ColumnChange    `json:"columns"`
	Timestamp string            `json:"op_ts"`
	Position  string            `json:"pos,omitempty"`
	Tokens    map[string]string `json:"tokens,omitempty"`
}

// DDLEvent is a schema-change notification from the capture layer.
type DDLEvent struct {
	ObjectType string `json:"object_type"`
	ObjectName string `json:"object_name"`
	Text       string `json:"text,omitempty"`
}

// ShortName returns the table name with any owner/schema prefix removed.
func ShortName(table string) string {
	if i := strings.LastIndex(table, "."); i >= 0 {
		return table[i+1:]
	}
	return table
}
