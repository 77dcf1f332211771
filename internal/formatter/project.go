package formatter

import (
	"github.com/rowforge/rowforge/internal/cdc"
)

// side selects which captured values populate a block.
type side int

const (
	sideBefore side = iota
	sideAfter
)

func (s side) String() string {
	if s == sideBefore {
		return "before"
	}
	return "after"
}

func sideValue(t cdc.ColumnTuple, s side) *cdc.ColumnValue {
	if s == sideBefore {
		return t.Before
	}
	return t.After
}

// projectRow builds a payload block from the selected side of the zipped
// column tuples. A column is included only when the selected-side value is
// present and not an explicit NULL; an absent value and an explicit NULL
// both collapse to omission, since the output format cannot tell the two
// apart anyway.
func projectRow(tuples []cdc.ColumnTuple, s side, asStrings bool) (Row, error) {
	row := make(Row, len(tuples))
	for _, t := range tuples {
		val := sideValue(t, s)
		if val == nil || val.Null {
			continue
		}
		v, err := coerceValue(t.Meta.Type, val.Value, asStrings)
		if err != nil {
			return nil, err
		}
		row[t.Meta.Name] = v
	}
	return row, nil
}

// projectKey is projectRow restricted to key-flagged columns.
func projectKey(tuples []cdc.ColumnTuple, s side, asStrings bool) (Row, error) {
	key := make(Row)
	for _, t := range tuples {
		if !t.Meta.Key {
			continue
		}
		val := sideValue(t, s)
		if val == nil || val.Null {
			continue
		}
		v, err := coerceValue(t.Meta.Type, val.Value, asStrings)
		if err != nil {
			return nil, err
		}
		key[t.Meta.Name] = v
	}
	return key, nil
}
