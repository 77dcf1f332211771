package cdc

import (
	"fmt"
)

// DataType is the declared source type class of a column. It drives which
// coercion the formatter applies to raw captured values.
type DataType int

const (
	TypeVarchar DataType = iota
	TypeNumeric
	TypeDouble
	TypeBit
	TypeTinyInt
	TypeSmallInt
	TypeInteger
	TypeBigInt
	TypeFloat
	TypeReal
	TypeBoolean
)

var dataTypeNames = map[DataType]string{
	TypeVarchar:  "varchar",
	TypeNumeric:  "numeric",
	TypeDouble:   "double",
	TypeBit:      "bit",
	TypeTinyInt:  "tinyint",
	TypeSmallInt: "smallint",
	TypeInteger:  "integer",
	TypeBigInt:   "bigint",
	TypeFloat:    "float",
	TypeReal:     "real",
	TypeBoolean:  "boolean",
}

func (d DataType) String() string {
	if name, ok := dataTypeNames[d]; ok {
		return name
	}
	return fmt.Sprintf("datatype(%d)", int(d))
}

func (d DataType) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a trail type name. Unrecognized names decode to
// TypeVarchar, which passes values through untouched.
func (d *DataType) UnmarshalText(text []byte) error {
	for dt, name := range dataTypeNames {
		if name == string(text) {
			*d = dt
			return nil
		}
	}
	*d = TypeVarchar
	return nil
}

// ColumnMetadata describes one column of a source table.
type ColumnMetadata struct {
	Name string   `json:"name"`
	Type DataType `json:"type"`
	Key  bool     `json:"key,omitempty"`
}

// TableMetadata describes a source table. Column order matches the order of
// an Operation's column changes for that table.
type TableMetadata struct {
	Name    string           `json:"name"`
	Columns []ColumnMetadata `json:"columns"`
}

// ShortName returns the table name without its owner/schema prefix.
func (t *TableMetadata) ShortName() string {
	return ShortName(t.Name)
}

// KeyColumns returns the key-flagged columns in declaration order.
func (t *TableMetadata) KeyColumns() []ColumnMetadata {
	var keys []ColumnMetadata
	for _, col := range t.Columns {
		if col.Key {
			keys = append(keys, col)
		}
	}
	return keys
}

// ColumnTuple pairs one column's metadata with its captured before and
// after values.
type ColumnTuple struct {
	Meta   ColumnMetadata
	Before *ColumnValue
	After  *ColumnValue
}

// Zip aligns an operation's column changes with this table's column
// metadata into a single ordered sequence. The positional alignment between
// the two is load-bearing; an operation carrying more columns than the
// table declares is rejected.
func (t *TableMetadata) Zip(op *Operation) ([]ColumnTuple, error) {
	if len(op.Columns) > len(t.Columns) {
		return nil, fmt.Errorf("operation on %s has %d columns, table declares %d",
			op.Table, len(op.Columns), len(t.Columns))
	}
	tuples := make([]ColumnTuple, len(op.Columns))
	for i, change := range op.Columns {
		tuples[i] = ColumnTuple{
			Meta:   t.Columns[i],
			Before: change.Before,
			After:  change.After,
		}
	}
	return tuples, nil
}
