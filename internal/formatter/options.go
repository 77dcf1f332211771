package formatter

import (
	"fmt"
)

// PkHandling selects what the formatter does with a primary key update.
type PkHandling int

const (
	// PkAbend halts the pipeline. This is the default.
	PkAbend PkHandling = iota
	// PkUpdate treats the operation as a normal update.
	PkUpdate
	// PkDeleteInsert splits the operation into a delete and an insert.
	PkDeleteInsert
)

func (h PkHandling) String() string {
	switch h {
	case PkAbend:
		return "abend"
	case PkUpdate:
		return "update"
	case PkDeleteInsert:
		return "delete-insert"
	}
	return fmt.Sprintf("pkhandling(%d)", int(h))
}

// ParsePkHandling maps a configuration string to a PkHandling. The caller
// decides the fallback for unrecognized values.
func ParsePkHandling(s string) (PkHandling, error) {
	switch s {
	case "abend":
		return PkAbend, nil
	case "update":
		return PkUpdate, nil
	case "delete-insert":
		return PkDeleteInsert, nil
	}
	return PkAbend, fmt.Errorf("invalid pk update handling: %q", s)
}

// Options is the immutable formatting configuration. It is constructed once
// at startup and passed by value; nothing mutates it afterwards.
type Options struct {
	// Operation key strings written to the record op_type field.
	InsertOpKey string
	UpdateOpKey string
	DeleteOpKey string

	PkHandling PkHandling

	// TreatAllColumnsAsStrings disables type-based coercion entirely.
	TreatAllColumnsAsStrings bool

	// ISO8601Timestamps selects the generated current_ts representation:
	// ISO-8601 with microseconds, or epoch microseconds.
	ISO8601Timestamps bool

	// IncludeTokens and IncludePrimaryKeys enable the optional record
	// extensions carrying the operation token map and the key column names.
	IncludeTokens      bool
	IncludePrimaryKeys bool
}

// DefaultOptions mirrors the documented configuration defaults.
func DefaultOptions() Options {
	return Options{
		InsertOpKey:       "I",
		UpdateOpKey:       "U",
		DeleteOpKey:       "D",
		PkHandling:        PkAbend,
		ISO8601Timestamps: true,
	}
}
